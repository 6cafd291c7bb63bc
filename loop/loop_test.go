package loop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inline() Scheduler {
	return SchedulerFunc(func(task func()) { task() })
}

func runAsync(l *Loop) chan struct{} {
	done := make(chan struct{})
	go func() {
		l.Run()
		close(done)
	}()
	return done
}

func TestStateString(t *testing.T) {
	testData := []State{Running, Terminated, State(7)}
	expected := []string{"Running", "Terminated", "Unknown"}
	for i := range testData {
		if testData[i].String() != expected[i] {
			t.Fatalf("expected %s, got %s", expected[i], testData[i].String())
		}
	}
}

func TestLoopTicks(t *testing.T) {
	var count int32
	l := New(5*time.Millisecond, inline(), func() { atomic.AddInt32(&count, 1) })
	assert.Equal(t, Running, l.State())

	done := runAsync(l)
	require.Eventually(t, func() bool { return atomic.LoadInt32(&count) >= 3 },
		time.Second, time.Millisecond)

	l.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run didn't return after Stop")
	}
	assert.Equal(t, Terminated, l.State())

	// no more redraws once terminated
	stopped := atomic.LoadInt32(&count)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&count))
}

func TestLoopDrawsImmediately(t *testing.T) {
	drawn := make(chan struct{}, 1)
	l := New(time.Hour, inline(), func() {
		select {
		case drawn <- struct{}{}:
		default:
		}
	})
	done := runAsync(l)
	defer func() {
		l.Stop()
		<-done
	}()

	select {
	case <-drawn:
	case <-time.After(time.Second):
		t.Fatal("expected a redraw before the first tick")
	}
}

func TestStopTwice(t *testing.T) {
	l := New(time.Millisecond, inline(), func() {})
	l.Stop()
	l.Stop()
	assert.Equal(t, Terminated, l.State())

	// Run on a terminated loop returns without drawing
	var count int32
	l2 := New(time.Millisecond, inline(), func() { atomic.AddInt32(&count, 1) })
	l2.Stop()
	l2.Run()
	assert.Equal(t, int32(0), atomic.LoadInt32(&count))
}

func TestStopFromRedraw(t *testing.T) {
	var l *Loop
	var count int32
	l = New(time.Millisecond, inline(), func() {
		if atomic.AddInt32(&count, 1) == 2 {
			l.Stop()
		}
	})
	l.Run()
	assert.Equal(t, int32(2), atomic.LoadInt32(&count))
	assert.Equal(t, Terminated, l.State())
}

func TestRedrawsNeverOverlap(t *testing.T) {
	el := NewEventLoop()
	go el.Run()
	defer el.Stop()

	var inFlight, maxInFlight, count int32
	l := New(time.Millisecond, el, func() {
		n := atomic.AddInt32(&inFlight, 1)
		if n > atomic.LoadInt32(&maxInFlight) {
			atomic.StoreInt32(&maxInFlight, n)
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		atomic.AddInt32(&count, 1)
	})
	done := runAsync(l)

	require.Eventually(t, func() bool { return atomic.LoadInt32(&count) >= 5 },
		2*time.Second, time.Millisecond)
	l.Stop()
	<-done
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}

func TestEventLoopStop(t *testing.T) {
	el := NewEventLoop()
	go el.Run()

	ran := make(chan struct{})
	el.Queue(func() { close(ran) })
	<-ran

	el.Stop()
	el.Stop()
	select {
	case <-el.Done():
	case <-time.After(time.Second):
		t.Fatal("event loop didn't stop")
	}

	// queuing after stop must not block
	el.Queue(func() { t.Fatal("task ran after stop") })
}
