// Package yolo reads and writes YOLO-style label files: one box per line,
// all geometry normalized to the image size.
package yolo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrDegenerateImage is reported when labels are normalized against an
// image with a zero or negative dimension.
var ErrDegenerateImage = errors.New("degenerate image dimensions")

// FormatError describes a label line that could not be parsed
type FormatError struct {
	Line   int    // 1-based line number, 0 when parsing a single line
	Field  string // field that failed, empty when the line itself is malformed
	Text   string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("invalid label")
	if e.Line > 0 {
		fmt.Fprintf(&b, " on line %d", e.Line)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s)", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Text != "" {
		fmt.Fprintf(&b, " %q", e.Text)
	}
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.Err }

// Label is one parsed label line
type Label struct {
	ClassID     int
	XCenter     float64
	YCenter     float64
	Width       float64
	Height      float64
	Probability *float64 // optional sixth field
	ObjectID    *int     // optional seventh field
}

var fieldNames = [...]string{"class", "x_center", "y_center", "width", "height", "probability", "object_id"}

// ParseLine parses a single label line. Fields are separated by spaces or tabs.
func ParseLine(line string) (Label, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Label{}, &FormatError{Text: line, Reason: fmt.Sprintf("expected at least 5 fields, got %d", len(fields))}
	}
	if len(fields) > len(fieldNames) {
		return Label{}, &FormatError{Text: line, Reason: fmt.Sprintf("expected at most %d fields, got %d", len(fieldNames), len(fields))}
	}

	var l Label
	classID, err := parseInt(fields[0], fieldNames[0])
	if err != nil {
		return Label{}, err
	}
	l.ClassID = classID

	coords := [4]*float64{&l.XCenter, &l.YCenter, &l.Width, &l.Height}
	for i, dst := range coords {
		v, err := parseFloat(fields[i+1], fieldNames[i+1])
		if err != nil {
			return Label{}, err
		}
		*dst = v
	}

	if len(fields) > 5 {
		p, err := parseFloat(fields[5], fieldNames[5])
		if err != nil {
			return Label{}, err
		}
		l.Probability = &p
	}
	if len(fields) > 6 {
		id, err := parseInt(fields[6], fieldNames[6])
		if err != nil {
			return Label{}, err
		}
		l.ObjectID = &id
	}
	return l, nil
}

// Parse parses a whole label document. Empty lines are skipped; the first
// malformed line fails the document and no labels are returned.
func Parse(text string) ([]Label, error) {
	var labels []Label
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		l, err := ParseLine(line)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Line = i + 1
			}
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// Unnormalize scales the geometry to pixel units. Class, probability and
// object id are carried over unchanged.
func (l Label) Unnormalize(imageWidth, imageHeight int) Label {
	w, h := float64(imageWidth), float64(imageHeight)
	l.XCenter *= w
	l.YCenter *= h
	l.Width *= w
	l.Height *= h
	return l
}

// Normalize divides the pixel geometry by the image size
func (l Label) Normalize(imageWidth, imageHeight int) (Label, error) {
	if imageWidth <= 0 || imageHeight <= 0 {
		return Label{}, &FormatError{
			Reason: fmt.Sprintf("image size %dx%d", imageWidth, imageHeight),
			Err:    ErrDegenerateImage,
		}
	}
	w, h := float64(imageWidth), float64(imageHeight)
	l.XCenter /= w
	l.YCenter /= h
	l.Width /= w
	l.Height /= h
	return l, nil
}

// String renders the label as a single line without a trailing newline
func (l Label) String() string {
	parts := []string{
		strconv.Itoa(l.ClassID),
		formatFloat(l.XCenter),
		formatFloat(l.YCenter),
		formatFloat(l.Width),
		formatFloat(l.Height),
	}
	if l.Probability != nil {
		parts = append(parts, formatFloat(*l.Probability))
		if l.ObjectID != nil {
			parts = append(parts, strconv.Itoa(*l.ObjectID))
		}
	}
	return strings.Join(parts, " ")
}

// Format renders labels as a document, one line per label
func Format(labels []Label) string {
	var b strings.Builder
	for _, l := range labels {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func parseInt(s, field string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &FormatError{Field: field, Text: s, Reason: "not an integer", Err: err}
	}
	if v < 0 {
		return 0, &FormatError{Field: field, Text: s, Reason: "must not be negative"}
	}
	return v, nil
}

func parseFloat(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &FormatError{Field: field, Text: s, Reason: "not a number", Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &FormatError{Field: field, Text: s, Reason: "not a finite number"}
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
