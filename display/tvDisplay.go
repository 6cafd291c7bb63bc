package display

import (
	"time"

	"github.com/gdamore/tcell"
	"github.com/rivo/tview"
	"github.com/tsignage/departureboard"
	"github.com/tsignage/departureboard/loop"
)

const (
	textColor       = tcell.ColorWhite
	backgroundColor = tcell.ColorBlack
	boldTag         = "[::b]"
	okButton        = "OK"
)

// ┌──────────────────────────────board(Box)──────────────────────────────┐
// │                                                                      │
// │    08:15  Tokyo行き  3番線  Express           <- Layout.Top           │
// │                                                                      │
// │                                                                      │
// │    08:30  新大阪行き  12番線  のぞみ          <- Top + Spacing        │
// │                                                                      │
// │                                                                      │
// │    08:45  Kyoto行き  1番線  Local             <- Top + 2*Spacing      │
// │    ^                                                                 │
// │    Layout.Left                                                       │
// └──────────────────────────────────────────────────────────────────────┘
// The box has no border; the frame above only marks the screen edge.

// KeyHandler returns an input capture function which calls quit and consumes
// the event when Esc is pressed. Every other key passes through untouched.
func KeyHandler(quit func()) func(event *tcell.EventKey) *tcell.EventKey {
	return func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			quit()
			return nil
		}
		return event
	}
}

// TVDisplay is an implementation of Display using the rivo/tview library.
// It fills the terminal with a black borderless board and redraws it once
// per loop.Interval.
type TVDisplay struct {
	app       *tview.Application
	box       *tview.Box
	board     departureboard.Board
	timetable departureboard.Timetable
	now       func() time.Time
	lines     []departureboard.Line
	loop      *loop.Loop
	err       chan error
}

// NewTVDisplay returns an implementation of Display using rivo/tview
func NewTVDisplay(tt departureboard.Timetable) *TVDisplay {
	d := &TVDisplay{
		board:     departureboard.NewBoard(),
		timetable: tt,
		now:       time.Now,
		err:       make(chan error, 1),
	}
	d.box = tview.NewBox()
	d.box.SetBackgroundColor(backgroundColor)
	d.box.SetDrawFunc(d.draw)

	d.app = tview.NewApplication().SetRoot(d.box, true)
	d.app.SetInputCapture(KeyHandler(d.Stop))

	d.loop = loop.New(loop.Interval, loop.SchedulerFunc(func(task func()) {
		d.app.QueueUpdateDraw(task)
	}), d.update)
	return d
}

// update recomputes the board lines. It runs on the tview event loop.
func (o *TVDisplay) update() {
	o.lines = o.board.Render(departureboard.TimeOfDayOf(o.now()), o.timetable)
}

// draw is the box's draw function. Lines are placed relative to the box.
func (o *TVDisplay) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	for _, l := range o.lines {
		if l.Y >= height || l.X >= width {
			continue
		}
		tview.Print(screen, boldTag+tview.Escape(l.Text), x+l.X, y+l.Y, width-l.X, tview.AlignLeft, textColor)
	}
	return x, y, width, height
}

// ErrChan returns the TVDisplay's error channel
func (o *TVDisplay) ErrChan() chan error {
	return o.err
}

// Stop stops the redraw loop and the tview Application
func (o *TVDisplay) Stop() {
	o.loop.Stop()
	o.app.Stop()
}

// Run starts the TVDisplay's rivo/tview application. It returns when the
// application exits, after sending the exit error on ErrChan.
func (o *TVDisplay) Run() {
	go o.loop.Run()
	err := o.app.Run()
	o.loop.Stop()
	o.err <- err
}

// ShowError displays a blocking modal dialog with a single OK button. It
// returns once the user dismisses it with OK, Enter or Esc.
func ShowError(title string, message string) error {
	return ShowErrorOn(nil, title, message)
}

// ShowErrorOn is ShowError drawing on the given screen, which the caller has
// already initialized. A nil screen means the terminal.
func ShowErrorOn(screen tcell.Screen, title string, message string) error {
	app := tview.NewApplication()
	if screen != nil {
		app.SetScreen(screen)
	}
	modal := tview.NewModal().
		SetText(title + "\n\n" + message).
		AddButtons([]string{okButton}).
		SetDoneFunc(func(int, string) { app.Stop() })
	app.SetInputCapture(KeyHandler(app.Stop))
	return app.SetRoot(modal, false).Run()
}
