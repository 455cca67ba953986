package bastion

import (
	"github.com/google/uuid"
)

// Scheduler runs callbacks after a tick delay. It is driven by the owning
// registry's Tick, so every callback executes on the simulation goroutine,
// never from a background timer. Cancellation is cooperative: a cancelled
// task is skipped at the point it would have fired.
type Scheduler struct {
	tasks []*scheduledTask
	byID  map[uuid.UUID]*scheduledTask
}

type scheduledTask struct {
	id        uuid.UUID
	remaining int
	fn        func()
	cancelled bool
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{byID: make(map[uuid.UUID]*scheduledTask)}
}

// ScheduleIn queues fn to run after the given number of ticks; zero means
// the next Tick. The returned id can cancel the task.
// Panics on a nil callback or a negative delay.
func (s *Scheduler) ScheduleIn(ticks int, fn func()) uuid.UUID {
	if fn == nil {
		panic("bastion: scheduled callback is nil")
	}
	if ticks < 0 {
		panic("bastion: negative tick delay")
	}
	t := &scheduledTask{id: uuid.New(), remaining: ticks, fn: fn}
	s.tasks = append(s.tasks, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel prevents the task from firing. A no-op for unknown or already
// fired ids.
func (s *Scheduler) Cancel(id uuid.UUID) {
	if t, ok := s.byID[id]; ok {
		t.cancelled = true
		delete(s.byID, id)
	}
}

// Contains reports whether a task with the given id is still pending.
func (s *Scheduler) Contains(id uuid.UUID) bool {
	_, ok := s.byID[id]
	return ok
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int { return len(s.byID) }

// Tick counts one frame off every pending task and fires the ones that are
// due, in scheduling order. The owning registry calls this once per frame.
func (s *Scheduler) Tick() {
	var due []*scheduledTask
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.cancelled {
			continue
		}
		t.remaining--
		if t.remaining <= 0 {
			due = append(due, t)
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = kept
	// The cancelled check repeats here: an earlier task firing this tick
	// may have cancelled a later one.
	for _, t := range due {
		if t.cancelled {
			continue
		}
		delete(s.byID, t.id)
		t.fn()
	}
}
