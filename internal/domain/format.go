package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// NumberFormat holds the separators used when durations are displayed.
// Internal arithmetic never depends on it.
type NumberFormat struct {
	Thousands rune
	Decimal   rune
}

var (
	// GermanFormat groups thousands with '.' and uses ',' for decimals.
	GermanFormat = NumberFormat{Thousands: '.', Decimal: ','}
	// EnglishFormat groups thousands with ',' and uses '.' for decimals.
	EnglishFormat = NumberFormat{Thousands: ',', Decimal: '.'}
)

// NumberFormatFor maps a locale name ("de", "en") to its NumberFormat.
func NumberFormatFor(locale string) (NumberFormat, bool) {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "de":
		return GermanFormat, true
	case "en":
		return EnglishFormat, true
	}
	return NumberFormat{}, false
}

// FormatDuration renders hours for display: "-" when absent, whole numbers
// without a decimal part, otherwise at most two decimals with trailing zeros
// trimmed.
func (f NumberFormat) FormatDuration(d *float64) string {
	if d == nil {
		return "-"
	}
	return f.FormatHours(*d) + "h"
}

// FormatHours renders v with the format's separators and no unit.
func (f NumberFormat) FormatHours(v float64) string {
	if v == math.Trunc(v) {
		return humanize.FormatFloat(f.pattern(0), v)
	}
	s := humanize.FormatFloat(f.pattern(2), v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, string(f.Decimal))
}

// pattern builds a go-humanize format string such as "#.###,##".
func (f NumberFormat) pattern(decimals int) string {
	return "#" + string(f.Thousands) + "###" + string(f.Decimal) + strings.Repeat("#", decimals)
}

// machineScale rounds machine-form hours to micro-hours, which keeps every
// hand-written value and drops float noise from percentage arithmetic.
const machineScale = 1e6

// FormatHours renders hours in the plain form understood by the outline
// parser: dot decimal separator, no grouping, trailing zeros trimmed.
func FormatHours(v float64) string {
	return strconv.FormatFloat(math.Round(v*machineScale)/machineScale, 'f', -1, 64)
}
