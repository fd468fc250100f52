package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidWindow is returned for malformed or empty planning windows.
var ErrInvalidWindow = errors.New("invalid window")

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidWindow, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrInvalidWindow, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrInvalidWindow, s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
// Hours wrap modulo 24 for display only.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60)
}

// Window is the planning horizon in minutes since midnight, inclusive on both ends.
type Window struct {
	Start int
	End   int
}

// ParseWindow builds a Window from two "HH:MM" clock strings.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	w := Window{Start: s, End: e}
	return w, w.Validate()
}

// Validate rejects windows whose end does not follow the start.
func (w Window) Validate() error {
	if w.Start < 0 || w.End <= w.Start {
		return fmt.Errorf("%w: end %s must follow start %s", ErrInvalidWindow, FormatClock(w.End), FormatClock(w.Start))
	}
	return nil
}

// Minutes is the window length.
func (w Window) Minutes() int { return w.End - w.Start }

// Contains reports whether t lies within the window.
func (w Window) Contains(t int) bool { return t >= w.Start && t <= w.End }

func (w Window) String() string { return FormatClock(w.Start) + "-" + FormatClock(w.End) }

// TimeRange is the wire form of a Window.
type TimeRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Window parses the range.
func (r TimeRange) Window() (Window, error) { return ParseWindow(r.Start, r.End) }
