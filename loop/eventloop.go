package loop

import "sync"

// EventLoop is a Scheduler that runs queued tasks one at a time on the
// goroutine that called Run. It stands in for a UI toolkit's event loop
// where there isn't one.
type EventLoop struct {
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}
	once  *sync.Once
}

// NewEventLoop returns an EventLoop. Tasks queued before Run wait for it.
func NewEventLoop() *EventLoop {
	return &EventLoop{
		tasks: make(chan func()),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
		once:  &sync.Once{},
	}
}

// Queue hands task to the event loop. Once the loop is stopped, tasks are
// discarded.
func (o *EventLoop) Queue(task func()) {
	select {
	case o.tasks <- task:
	case <-o.quit:
	}
}

// Run processes tasks until Stop is called.
func (o *EventLoop) Run() {
	defer close(o.done)
	for {
		select {
		case task := <-o.tasks:
			task()
		case <-o.quit:
			return
		}
	}
}

// Stop ends Run after the task in progress, if any. It does not wait; use
// Done for that.
func (o *EventLoop) Stop() {
	o.once.Do(func() { close(o.quit) })
}

// Done is closed when Run has returned.
func (o *EventLoop) Done() <-chan struct{} {
	return o.done
}
