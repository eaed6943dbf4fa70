package table

import (
	"fmt"
	"time"
)

// TaskKind is the kind of deferred work a table asks for
type TaskKind int

// Constants for TaskKind
const (
	TaskNextHand TaskKind = iota
	TaskActionTimeout
)

func (t TaskKind) String() string {
	switch t {
	case TaskNextHand:
		return "next-hand"
	case TaskActionTimeout:
		return "action-timeout"
	}

	return "unknown"
}

// Task is deferred work tagged with the generation it was scheduled in
// A task whose generation is no longer current does nothing.
type Task struct {
	Kind       TaskKind
	Seat       int
	Generation uint64
	After      time.Duration
}

// Generation returns the current generation
// It changes at every prompt and at the start and end of every hand.
func (t *Table) Generation() uint64 {
	return t.generation
}

// RunTask performs a scheduled task
// Stale tasks return no effects and no error.
func (t *Table) RunTask(task Task) ([]Effect, error) {
	if task.Generation != t.generation {
		return nil, nil
	}

	switch task.Kind {
	case TaskNextHand:
		if t.phase != PhaseShowdown {
			return nil, nil
		}

		return t.apply(func() error {
			t.endRound()
			return nil
		})
	case TaskActionTimeout:
		if task.Seat != t.activeSeat || t.activeSeat == NoSeat {
			return nil, nil
		}

		return t.apply(func() error {
			t.actionTimedOut(task.Seat)
			return nil
		})
	}

	return nil, fmt.Errorf("unknown task kind: %d", task.Kind)
}

// actionTimedOut refuses the blind or folds for a player who did not act in time
func (t *Table) actionTimedOut(seat int) {
	p := t.seats[seat]
	t.logf("%s ran out of time", p.name)

	if t.phase.isBlinds() {
		t.sitOut(seat)
		return
	}

	t.fold(seat)
}

func (t *Table) schedule(kind TaskKind, seat int, after time.Duration) {
	t.emit(Schedule{Task: Task{
		Kind:       kind,
		Seat:       seat,
		Generation: t.generation,
		After:      after,
	}})
}
