package bastion

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func testFrames(n int) []*ebiten.Image {
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		frames[i] = ebiten.NewImage(16, 16)
	}
	return frames
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

const (
	stateIdle StateKey = "idle"
	stateCast StateKey = "cast"
)

// spriteStub gives Sprite a concrete body for tests.
type spriteStub struct {
	Sprite
}

func newSpriteStub(ticksPerFrame int) *spriteStub {
	s := &spriteStub{Sprite: NewSprite(stateIdle, ticksPerFrame)}
	return s
}

func TestNewSpriteRejectsBadCadence(t *testing.T) {
	mustPanic(t, "zero ticks per frame", func() { NewSprite(stateIdle, 0) })
}

func TestAddStateValidation(t *testing.T) {
	s := newSpriteStub(1)
	s.AddState(stateIdle, testFrames(2))
	mustPanic(t, "duplicate state", func() { s.AddState(stateIdle, testFrames(1)) })
	mustPanic(t, "empty frames", func() { s.AddState(stateCast, nil) })
}

func TestSpawnRejectsEmptySprite(t *testing.T) {
	s := newSpriteStub(1)
	mustPanic(t, "spawn with zero states", func() { s.Spawn() })
}

func TestFrameCadence(t *testing.T) {
	s := newSpriteStub(2)
	s.AddState(stateIdle, testFrames(3))
	s.Spawn()

	wantByTick := []int{0, 1, 1, 2, 2, 0} // advances every second tick, then wraps
	for i, want := range wantByTick {
		s.Tick(int64(i))
		if got := s.FrameIndex(); got != want {
			t.Fatalf("after tick %d: FrameIndex = %d, want %d", i+1, got, want)
		}
	}
}

func TestSetStateResetsFrame(t *testing.T) {
	s := newSpriteStub(1)
	s.AddState(stateIdle, testFrames(3))
	s.AddState(stateCast, testFrames(2))
	s.Spawn()
	s.Tick(1)
	if s.FrameIndex() != 1 {
		t.Fatal("precondition: frame should have advanced")
	}
	s.SetState(stateCast)
	if s.State() != stateCast || s.FrameIndex() != 0 {
		t.Error("SetState should switch state and reset the frame index")
	}
}

func TestQueueStateRevertsAndFiresOnce(t *testing.T) {
	s := newSpriteStub(1)
	s.AddState(stateIdle, testFrames(2))
	s.AddState(stateCast, testFrames(2))
	s.Spawn()

	fired := 0
	s.QueueState(stateCast, func() { fired++ }, 2)
	if s.State() != stateCast {
		t.Fatal("QueueState should switch immediately")
	}
	// Two frames per loop, two loops: four ticks to completion.
	for i := 0; i < 4; i++ {
		if fired != 0 {
			t.Fatalf("callback fired early, after %d ticks", i)
		}
		s.Tick(int64(i))
	}
	if fired != 1 {
		t.Fatalf("callback fired %d times, want 1", fired)
	}
	if s.State() != stateIdle {
		t.Errorf("State = %q, want reverted to %q", s.State(), stateIdle)
	}
	for i := 0; i < 10; i++ {
		s.Tick(int64(10 + i))
	}
	if fired != 1 {
		t.Error("callback must not fire again after reverting")
	}
}

func TestQueueStateRejectsZeroLoops(t *testing.T) {
	s := newSpriteStub(1)
	s.AddState(stateIdle, testFrames(1))
	mustPanic(t, "zero loops", func() { s.QueueState(stateIdle, nil, 0) })
}

func TestSetStateCancelsPendingReversion(t *testing.T) {
	s := newSpriteStub(1)
	s.AddState(stateIdle, testFrames(2))
	s.AddState(stateCast, testFrames(2))
	s.Spawn()

	fired := false
	s.QueueState(stateCast, func() { fired = true }, 1)
	s.SetState(stateIdle)
	for i := 0; i < 6; i++ {
		s.Tick(int64(i))
	}
	if fired {
		t.Error("SetState should cancel the queued reversion")
	}
}

func TestSpriteBoundsTrackFrameSize(t *testing.T) {
	s := newSpriteStub(1)
	s.AddState(stateIdle, []*ebiten.Image{ebiten.NewImage(24, 32)})
	s.Spawn()
	s.Pos = Vec2{5, 6}
	b := s.Bounds()
	if b != (Rect{5, 6, 24, 32}) {
		t.Errorf("Bounds = %v, want {5 6 24 32}", b)
	}
}
