package runtime

import (
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/shadotui/pkg/ui/crash"
)

// Task is a handle on one background goroutine.
type Task struct {
	id   string
	name string
	done chan struct{}
	err  error
}

func startTask(name string, fn func() error) *Task {
	t := &Task{
		id:   ulid.Make().String(),
		name: name,
		done: make(chan struct{}),
	}
	go func() {
		defer crash.Recover()
		defer close(t.done)
		t.err = fn()
	}()
	return t
}

// ID is unique per task instance.
func (t *Task) ID() string { return t.id }

func (t *Task) Name() string { return t.name }

// Done closes when the task returns.
func (t *Task) Done() <-chan struct{} { return t.done }

// Err is the task's result. It is only meaningful after Done.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the task returns.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// joinTasks waits for every task and returns the first error.
func joinTasks(tasks ...*Task) error {
	var g errgroup.Group
	for _, t := range tasks {
		if t != nil {
			g.Go(t.Wait)
		}
	}
	return g.Wait()
}
