package utils

import (
	"regexp"
	"strings"
	"time"
)

// DateKind tags how a legacy date string was recognised. It is decided once,
// when the value is read, and never re-sniffed afterwards.
type DateKind int

const (
	FreeText DateKind = iota
	IsoTimestamp
	DateOnly
)

func (k DateKind) String() string {
	switch k {
	case IsoTimestamp:
		return "iso-timestamp"
	case DateOnly:
		return "date-only"
	default:
		return "free-text"
	}
}

// DateShape selects the rendering expected by the target column.
type DateShape int

const (
	// ShapeTimestamp renders a full ISO-8601 timestamp.
	ShapeTimestamp DateShape = iota
	// ShapeDateKey renders DD/MM/YYYY, the key used by TasasCambio.fecha.
	ShapeDateKey
)

const (
	ISOLayout     = "2006-01-02T15:04:05.000Z07:00"
	DateKeyLayout = "02/01/2006"
)

var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Slash and dash dates are day-first, as typed in the legacy screens.
var calendarLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	time.RFC1123Z,
	time.RFC1123,
	time.UnixDate,
}

// Date.toString() output: "Tue Mar 05 2024 10:00:00 GMT-0400 (...)".
const jsDateLayout = "Mon Jan 02 2006"

// DateInput is a legacy date value tagged with its recognised kind.
type DateInput struct {
	Kind DateKind
	Raw  string
	Time time.Time
	// Parsed is false for free text and for ISO-looking text whose
	// calendar part is not a real date.
	Parsed bool
}

// ClassifyDate inspects raw legacy text and tags it.
func ClassifyDate(raw string) DateInput {
	in := DateInput{Kind: FreeText, Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "" {
		return in
	}

	if isoPrefix.MatchString(s) {
		in.Kind = IsoTimestamp
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				in.Time, in.Parsed = t, true
				return in
			}
		}
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			in.Time, in.Parsed = t, true
		}
		return in
	}

	for _, layout := range calendarLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			in.Kind, in.Time, in.Parsed = DateOnly, t, true
			return in
		}
	}
	if len(s) >= len(jsDateLayout) {
		if t, err := time.Parse(jsDateLayout, s[:len(jsDateLayout)]); err == nil {
			in.Kind, in.Time, in.Parsed = DateOnly, t, true
		}
	}
	return in
}

// Format renders the input for the given target shape. now is used only
// when a timestamp is required and the input could not be parsed.
func (in DateInput) Format(shape DateShape, now time.Time) string {
	switch shape {
	case ShapeDateKey:
		if in.Parsed {
			return in.Time.Format(DateKeyLayout)
		}
		return in.Raw
	default:
		switch {
		case in.Kind == IsoTimestamp:
			return in.Raw
		case in.Parsed:
			return in.Time.UTC().Format(ISOLayout)
		default:
			return now.UTC().Format(ISOLayout)
		}
	}
}

// NormalizeDate classifies text and renders it for shape using the
// current time as the timestamp fallback.
func NormalizeDate(text string, shape DateShape) string {
	return ClassifyDate(text).Format(shape, time.Now())
}
