package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Prompter reads interactive answers, falling back to defaults on empty
// input. It mirrors the question sequence users of the tool know.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter builds a Prompter over the given streams.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

func (p *Prompter) read() string {
	line, err := p.r.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}

// String asks for a string value with a default.
func (p *Prompter) String(label, def string) string {
	fmt.Fprintf(p.w, "%s (default: %s): ", label, def)
	if v := p.read(); v != "" {
		return v
	}
	return def
}

// Bool asks for a true/false value with a default.
func (p *Prompter) Bool(label string, def bool) bool {
	fmt.Fprintf(p.w, "%s (true/false, default: %t): ", label, def)
	v := p.read()
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

// Int asks for an integer value with a default.
func (p *Prompter) Int(label string, def int) int {
	fmt.Fprintf(p.w, "%s (default: %d): ", label, def)
	v := p.read()
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

// PositiveFloat asks until it gets a number greater than zero.
func (p *Prompter) PositiveFloat(label string) float64 {
	for {
		fmt.Fprintf(p.w, "%s: ", label)
		v := p.read()
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fmt.Fprintln(p.w, "Please enter a valid number")
			continue
		}
		if parsed <= 0 {
			fmt.Fprintln(p.w, "Threshold must be greater than 0")
			continue
		}
		return parsed
	}
}

// DateRange asks for one of the preset ranges or a custom pair of dates.
func (p *Prompter) DateRange(now time.Time) (from, to time.Time, err error) {
	fmt.Fprintln(p.w, "\nDate range options:")
	fmt.Fprintln(p.w, "1. Today")
	fmt.Fprintln(p.w, "2. Last week")
	fmt.Fprintln(p.w, "3. Last month")
	fmt.Fprintln(p.w, "4. Custom (enter dates manually)")
	fmt.Fprint(p.w, "Choose date range (1-4, default: 1): ")

	switch p.read() {
	case "", "1":
		return startOfDay(now), now, nil
	case "2":
		return now.AddDate(0, 0, -7), now, nil
	case "3":
		return now.AddDate(0, 0, -30), now, nil
	default:
		fmt.Fprint(p.w, "Enter start date (YYYY-MM-DD): ")
		from, err = time.ParseInLocation("2006-01-02", p.read(), now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
		}
		fmt.Fprint(p.w, "Enter end date (YYYY-MM-DD): ")
		to, err = time.ParseInLocation("2006-01-02", p.read(), now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
		}
		return from, to, nil
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
