package bastion

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// StateKey names an animation state. States are opaque keys; each maps to a
// fixed ordered list of pre-rendered frames registered with AddState.
type StateKey string

// stateChange records a transient state override queued by QueueState:
// play the new state for loops wraparounds, fire the callback, revert.
type stateChange struct {
	before     StateKey
	onComplete func()
	loops      int
}

// Sprite adds named-state frame animation to Living. Frames are pre-sized
// *ebiten.Image slices supplied by the caller; the sprite never loads or
// parses image data itself.
type Sprite struct {
	Living

	state         StateKey
	frames        map[StateKey][]*ebiten.Image
	frameIndex    int
	ticksPerFrame int
	tickIndex     int
	pending       *stateChange
}

// NewSprite returns a Sprite in the given default state, advancing one
// animation frame every ticksPerFrame simulation ticks.
// Panics if ticksPerFrame < 1.
func NewSprite(defaultState StateKey, ticksPerFrame int) Sprite {
	if ticksPerFrame < 1 {
		panic("bastion: sprite ticks-per-frame must be at least 1")
	}
	return Sprite{
		state:         defaultState,
		frames:        make(map[StateKey][]*ebiten.Image),
		ticksPerFrame: ticksPerFrame,
		tickIndex:     ticksPerFrame,
	}
}

// AddState registers the ordered frame sequence for a state.
// Panics if the state is already registered or frames is empty.
func (s *Sprite) AddState(key StateKey, frames []*ebiten.Image) {
	if _, ok := s.frames[key]; ok {
		panic(fmt.Sprintf("bastion: sprite state %q already registered", key))
	}
	if len(frames) == 0 {
		panic(fmt.Sprintf("bastion: sprite state %q registered with zero frames", key))
	}
	s.frames[key] = frames
}

// HasState reports whether frames are registered for key.
func (s *Sprite) HasState(key StateKey) bool {
	_, ok := s.frames[key]
	return ok
}

// State returns the current animation state.
func (s *Sprite) State() StateKey { return s.state }

// SetState switches the animation state directly. The frame index resets to
// zero and any pending reversion is cancelled.
func (s *Sprite) SetState(key StateKey) {
	s.state = key
	s.frameIndex = 0
	s.pending = nil
}

// FrameIndex returns the index of the frame currently shown.
func (s *Sprite) FrameIndex() int { return s.frameIndex }

// QueueState switches to next immediately and plays it for the given number
// of full animation loops; the callback then fires and the sprite reverts
// to the state it was in before the call. Panics if loops < 1.
func (s *Sprite) QueueState(next StateKey, onComplete func(), loops int) {
	if loops < 1 {
		panic("bastion: queued state change needs loops >= 1")
	}
	s.pending = &stateChange{before: s.state, onComplete: onComplete, loops: loops}
	s.state = next
	s.frameIndex = 0
}

// Spawn makes the sprite live. Panics if no states have been registered;
// there would be nothing to render.
func (s *Sprite) Spawn() {
	if len(s.frames) == 0 {
		panic("bastion: sprite spawned with zero registered states")
	}
	s.Core.Spawn()
}

// Tick applies Living motion, then advances the animation: the frame-delay
// counter decrements each tick and at zero the frame index advances,
// wrapping to the start of the sequence. A wraparound counts one loop
// against any pending state reversion.
func (s *Sprite) Tick(frame int64) {
	s.Living.Tick(frame)
	s.tickIndex--
	if s.tickIndex > 0 {
		return
	}
	s.tickIndex = s.ticksPerFrame
	if s.frameIndex < len(s.frames[s.state])-1 {
		s.frameIndex++
		return
	}
	s.frameIndex = 0
	if s.pending == nil {
		return
	}
	s.pending.loops--
	if s.pending.loops > 0 {
		return
	}
	done := s.pending
	if done.onComplete != nil {
		done.onComplete()
	}
	// SetState clears the reversion record, so it cannot fire twice.
	s.SetState(done.before)
}

// Draw blits the current frame at the sprite's position.
func (s *Sprite) Draw(screen *ebiten.Image) {
	frames := s.frames[s.state]
	if len(frames) == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(s.Pos.X, s.Pos.Y)
	screen.DrawImage(frames[s.frameIndex], op)
}

// Bounds derives the bounding box from the current frame's dimensions.
func (s *Sprite) Bounds() Rect {
	frames := s.frames[s.state]
	if len(frames) == 0 {
		return s.Pos.AsRect(0, 0)
	}
	b := frames[s.frameIndex].Bounds()
	return s.Pos.AsRect(float64(b.Dx()), float64(b.Dy()))
}
