package display

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsignage/departureboard"
)

func testTimetable() departureboard.Timetable {
	return departureboard.Timetable{
		{Time: departureboard.NewTimeOfDay(8, 0, 0), Destination: "Nara", Platform: "2", ServiceType: "Rapid"},
		{Time: departureboard.NewTimeOfDay(8, 15, 0), Destination: "Tokyo", Platform: "3", ServiceType: "Express"},
		{Time: departureboard.NewTimeOfDay(8, 45, 0), Destination: "Kyoto", Platform: "1", ServiceType: "Local"},
	}
}

func fixedClock(h, m int) func() time.Time {
	return func() time.Time {
		return time.Date(2020, 4, 14, h, m, 0, 0, time.Local)
	}
}

func TestKeyHandler(t *testing.T) {
	var quits int
	handler := KeyHandler(func() { quits++ })

	esc := tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	if handler(esc) != nil {
		t.Fatalf("escape should be consumed")
	}
	if quits != 1 {
		t.Fatalf("expected 1 quit, got %d", quits)
	}

	others := []*tcell.EventKey{
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone),
	}
	for _, ev := range others {
		if handler(ev) != ev {
			t.Fatalf("key %s should pass through", ev.Name())
		}
	}
	if quits != 1 {
		t.Fatalf("expected 1 quit, got %d", quits)
	}
}

// screenRow returns the text in row y of a simulation screen, trailing
// blanks removed.
func screenRow(t *testing.T, screen tcell.SimulationScreen, y int) string {
	cells, width, height := screen.GetContents()
	require.True(t, y < height)
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r := cells[y*width+x].Runes
		if len(r) == 0 {
			continue
		}
		sb.WriteString(string(r))
	}
	return strings.TrimRight(sb.String(), " ")
}

func drawTV(t *testing.T, d *TVDisplay) tcell.SimulationScreen {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 20)

	d.update()
	d.box.SetRect(0, 0, 80, 20)
	d.box.Draw(screen)
	screen.Show()
	return screen
}

func TestTVDisplayDraw(t *testing.T) {
	d := NewTVDisplay(testTimetable())
	d.now = fixedClock(8, 10)
	screen := drawTV(t, d)
	defer screen.Fini()

	layout := departureboard.DefaultLayout
	indent := strings.Repeat(" ", layout.Left)
	assert.True(t, strings.HasPrefix(screenRow(t, screen, layout.Top), indent+"08:15  Tokyo"))
	assert.True(t, strings.HasPrefix(screenRow(t, screen, layout.Top+layout.Spacing), indent+"08:45  Kyoto"))
	assert.Equal(t, "", screenRow(t, screen, layout.Top+2*layout.Spacing))
	assert.Equal(t, "", screenRow(t, screen, 0))
}

func TestTVDisplayServiceEnded(t *testing.T) {
	d := NewTVDisplay(testTimetable())
	d.now = fixedClock(23, 0)
	screen := drawTV(t, d)
	defer screen.Fini()

	require.Len(t, d.lines, 1)
	assert.Equal(t, departureboard.ServiceEnded, d.lines[0].Text)
	assert.NotEqual(t, "", screenRow(t, screen, departureboard.DefaultLayout.Top))
	assert.Equal(t, "", screenRow(t, screen, departureboard.DefaultLayout.Top+departureboard.DefaultLayout.Spacing))
}
