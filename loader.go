package departureboard

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	DefaultFileName = "timetable.csv"
	fieldSeparator  = ","
	minFields       = 4
)

// ErrFileMissing is returned (wrapped) by Load when the timetable file does
// not exist.
var ErrFileMissing = errors.New("timetable file not found")

type loaderConfig struct {
	enc encoding.Encoding
}

// LoaderOption adjusts how a timetable file is read.
type LoaderOption func(*loaderConfig)

// WithEncoding sets the text encoding of the timetable file. The default is
// UTF-8. A byte order mark at the start of the file overrides either way.
func WithEncoding(enc encoding.Encoding) LoaderOption {
	return func(c *loaderConfig) {
		if enc != nil {
			c.enc = enc
		}
	}
}

// EncodingByName looks up an encoding by its WHATWG name or label, e.g.
// "utf-8", "shift_jis", "euc-jp".
func EncodingByName(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding '%s': %w", name, err)
	}
	return enc, nil
}

// Exists reports whether path names a regular file (or a link to one).
// Callers check this before Load so a missing file can be reported to the
// user before anything is drawn.
func Exists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !fi.IsDir()
}

// Load opens the timetable file at path and parses it with Read.
func Load(path string, opts ...LoaderOption) (Timetable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, path)
		}
		return nil, fmt.Errorf("failed to open timetable %s: %w", path, err)
	}
	defer f.Close()

	tt, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to read timetable %s: %w", path, err)
	}
	return tt, nil
}

// Read parses timetable rows from r. The first line is a header and is
// ignored. Each remaining line must hold at least four comma separated
// fields, the first of which is a time of day; lines that don't are dropped
// without complaint. Rows keep their file order.
func Read(r io.Reader, opts ...LoaderOption) (Timetable, error) {
	cfg := loaderConfig{enc: unicode.UTF8}
	for _, opt := range opts {
		opt(&cfg)
	}

	decoded := bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(cfg.enc.NewDecoder())))

	tt := Timetable{}
	header := true
	for {
		line, err := decoded.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if len(line) > 0 {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if header {
				header = false
			} else if d, ok := parseRow(line); ok {
				tt = append(tt, d)
			}
		}
		if err == io.EOF {
			return tt, nil
		}
	}
}

// parseRow turns one data line into a Departure. Fields past the fourth are
// ignored and no field is trimmed.
func parseRow(line string) (Departure, bool) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) < minFields {
		return Departure{}, false
	}
	t, err := ParseTimeOfDay(fields[0])
	if err != nil {
		return Departure{}, false
	}
	return Departure{
		Time:        t,
		Destination: fields[1],
		Platform:    fields[2],
		ServiceType: fields[3],
	}, true
}
