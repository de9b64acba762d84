package fake

import (
	"context"
	"sync"

	"github.com/loggord/discord-logger/pkg/discord"
)

// Scheduler is a fake scheduler that collects tasks without running them. Tests use it to prove that scheduling a send
// does not block and to run the collected tasks at a time of their choosing.
type Scheduler struct {
	tasks []func(ctx context.Context) error
	lock  *sync.Mutex
}

// Assert that Scheduler implements the [discord.Scheduler] interface.
var _ discord.Scheduler = (*Scheduler)(nil)

// NewScheduler creates a new Scheduler. It is safe to call concurrently from multiple goroutines.
func NewScheduler() *Scheduler {
	return &Scheduler{
		lock: &sync.Mutex{},
	}
}

// Schedule collects the task without running it.
func (scheduler *Scheduler) Schedule(task func(ctx context.Context) error) {
	scheduler.lock.Lock()
	defer scheduler.lock.Unlock()

	scheduler.tasks = append(scheduler.tasks, task)
}

// Len returns the number of collected tasks.
func (scheduler *Scheduler) Len() int {
	scheduler.lock.Lock()
	defer scheduler.lock.Unlock()

	return len(scheduler.tasks)
}

// RunAll runs every collected task in the order it was scheduled and returns their errors, then clears the collected
// tasks. The returned slice has one entry per task, nil for tasks that succeeded.
func (scheduler *Scheduler) RunAll(ctx context.Context) []error {
	scheduler.lock.Lock()
	tasks := scheduler.tasks
	scheduler.tasks = nil
	scheduler.lock.Unlock()

	errs := make([]error, 0, len(tasks))
	for _, task := range tasks {
		errs = append(errs, task(ctx))
	}

	return errs
}
