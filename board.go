package departureboard

import "fmt"

const (
	// MaxRows is the most departures shown at once.
	MaxRows = 3

	// ServiceEnded is shown once every departure of the day has left.
	ServiceEnded = "本日の運行は終了しました"

	departureFormat = "%s  %s行き  %s番線  %s"
)

// Layout places rendered lines on the display surface, in character cells.
type Layout struct {
	Left    int // column of every line
	Top     int // row of the first line
	Spacing int // rows from one line to the next
}

// DefaultLayout is the fixed placement used by the displays.
var DefaultLayout = Layout{Left: 4, Top: 2, Spacing: 3}

// Line is one piece of text to draw at column X, row Y.
type Line struct {
	X    int
	Y    int
	Text string
}

// Next returns the first MaxRows departures at or after now, in timetable
// order. The timetable is not sorted first, so with an unsorted file these
// are not necessarily the soonest departures.
func Next(now TimeOfDay, tt Timetable) []Departure {
	var result []Departure
	for _, d := range tt {
		if len(result) == MaxRows {
			break
		}
		if d.Time >= now {
			result = append(result, d)
		}
	}
	return result
}

// Format renders a single departure as a board line.
func Format(d Departure) string {
	return fmt.Sprintf(departureFormat, d.Time, d.Destination, d.Platform, d.ServiceType)
}

// Board computes what the display shows. It has no state beyond its layout.
type Board struct {
	Layout Layout
}

// NewBoard returns a Board using DefaultLayout.
func NewBoard() Board {
	return Board{Layout: DefaultLayout}
}

// Render returns the lines to draw for the given time of day: one per
// upcoming departure, or the single ServiceEnded line when there are none.
func (o Board) Render(now TimeOfDay, tt Timetable) []Line {
	next := Next(now, tt)
	if len(next) == 0 {
		return []Line{{X: o.Layout.Left, Y: o.Layout.Top, Text: ServiceEnded}}
	}

	lines := make([]Line, len(next))
	y := o.Layout.Top
	for i, d := range next {
		lines[i] = Line{X: o.Layout.Left, Y: y, Text: Format(d)}
		y += o.Layout.Spacing
	}
	return lines
}
