package service

import "log"

// TaskRunner runs background work a request must not wait on, such as
// cache-back writes. Injected so tests can run tasks synchronously and
// assert what was enqueued.
type TaskRunner interface {
	Go(task func())
}

type goRunner struct{}

// NewTaskRunner returns the production runner, which spawns a goroutine
// per task and absorbs panics.
func NewTaskRunner() TaskRunner {
	return goRunner{}
}

func (goRunner) Go(task func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Warning: background task panicked: %v", r)
			}
		}()
		task()
	}()
}
