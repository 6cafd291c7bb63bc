// Package loop drives periodic redraws of a display. Redraw work is handed to
// a Scheduler, which runs it on the display's single event loop thread, so
// the code being scheduled never needs locks.
package loop

import (
	"sync"
	"time"
)

// Interval is the time between redraws.
const Interval = 1000 * time.Millisecond

// State of a Loop. There is no way back from Terminated.
type State int

const (
	Running State = iota
	Terminated
)

func (o State) String() string {
	switch o {
	case Running:
		return "Running"
	case Terminated:
		return "Terminated"
	}
	return "Unknown"
}

// Scheduler queues a task to run on the UI event loop thread.
type Scheduler interface {
	Queue(task func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(task func())

// Queue calls f(task).
func (f SchedulerFunc) Queue(task func()) {
	f(task)
}

// Loop asks a Scheduler to run redraw once right away and then once per
// interval. A tick is not queued until the previous redraw has finished, so
// redraws never overlap; ticks that come due while one is still pending are
// coalesced.
type Loop struct {
	interval time.Duration
	sched    Scheduler
	redraw   func()
	mu       *sync.Mutex
	state    State
	stop     chan struct{}
}

// New returns a Loop in the Running state. Nothing is drawn until Run.
func New(interval time.Duration, sched Scheduler, redraw func()) *Loop {
	return &Loop{
		interval: interval,
		sched:    sched,
		redraw:   redraw,
		mu:       &sync.Mutex{},
		state:    Running,
		stop:     make(chan struct{}),
	}
}

// State returns the current state of the loop.
func (o *Loop) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Stop moves the loop to Terminated. It is safe to call more than once and
// from any goroutine, including from inside redraw.
func (o *Loop) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == Terminated {
		return
	}
	o.state = Terminated
	close(o.stop)
}

// Run blocks, queuing redraws, until Stop is called.
func (o *Loop) Run() {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	// buffered so a redraw finishing after Stop doesn't block the UI thread
	finished := make(chan struct{}, 1)
	task := func() {
		if o.State() == Running {
			o.redraw()
		}
		finished <- struct{}{}
	}

	for {
		o.sched.Queue(task)
		select {
		case <-finished:
		case <-o.stop:
			return
		}

		select {
		case <-ticker.C:
		case <-o.stop:
			return
		}
	}
}
