package display

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-runewidth"
	"github.com/tsignage/departureboard"
	"github.com/tsignage/departureboard/loop"
)

const (
	dumpTimeFormat = "01/02 15:04:05"
	ruleChar       = "-"
)

// DumpDisplay is an implementation of Display that prints the board to a
// writer on every tick, for terminals that can't run the full screen
// display. The output is color coded:
//  - timestamps in white
//  - departures in bold white
//  - the end of service message in yellow
// It reads no keyboard input, so Esc does nothing; the process stops it on
// SIGINT or SIGTERM through Stop.
type DumpDisplay struct {
	board     departureboard.Board
	timetable departureboard.Timetable
	now       func() time.Time
	out       io.Writer
	au        aurora.Aurora
	events    *loop.EventLoop
	loop      *loop.Loop
	errChan   chan error
	running   bool
}

// NewDumpDisplay returns a DumpDisplay writing colored output to out.
func NewDumpDisplay(tt departureboard.Timetable, out io.Writer) *DumpDisplay {
	d := &DumpDisplay{
		board:     departureboard.NewBoard(),
		timetable: tt,
		now:       time.Now,
		out:       out,
		au:        aurora.NewAurora(true),
		events:    loop.NewEventLoop(),
		errChan:   make(chan error, 1),
	}
	d.loop = loop.New(loop.Interval, d.events, d.draw)
	return d
}

// Run starts the display. It does not return until Stop is called.
func (o *DumpDisplay) Run() {
	// don't start twice
	if o.running {
		o.errChan <- errors.New("display already running")
		return
	}
	o.running = true

	go o.events.Run()
	o.loop.Run()
	o.events.Stop()
	<-o.events.Done()
	o.errChan <- nil
}

// ErrChan returns the DumpDisplay's error channel
func (o *DumpDisplay) ErrChan() chan error {
	return o.errChan
}

// Stop ends Run.
func (o *DumpDisplay) Stop() {
	o.loop.Stop()
}

// draw prints one frame. It runs on the display's event loop.
func (o *DumpDisplay) draw() {
	now := o.now()
	lines := o.board.Render(departureboard.TimeOfDayOf(now), o.timetable)

	width := len(dumpTimeFormat)
	for _, l := range lines {
		if w := l.X + runewidth.StringWidth(l.Text); w > width {
			width = w
		}
	}
	rule := strings.Repeat(ruleChar, width)

	fmt.Fprintln(o.out, o.au.White(now.Format(dumpTimeFormat)))
	fmt.Fprintln(o.out, rule)
	for _, l := range lines {
		indent := strings.Repeat(" ", l.X)
		if l.Text == departureboard.ServiceEnded {
			fmt.Fprintf(o.out, "%s%s\n", indent, o.au.Yellow(l.Text))
		} else {
			fmt.Fprintf(o.out, "%s%s\n", indent, o.au.Bold(o.au.White(l.Text)))
		}
	}
	fmt.Fprintln(o.out, rule)
}
