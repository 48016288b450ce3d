// Package normalize converts raw spreadsheet cell values into strict numeric
// types. Every function in this package is total: malformed input coerces to
// the type's zero value and never produces an error, NaN, or panic. This keeps
// ingestion robust against the dirty exports the live-commerce platforms
// produce (stray currency symbols, thousands separators, decimal commas,
// localized duration strings).
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericJunk  = regexp.MustCompile(`[^\d.,\-]`)
	hourMarker   = regexp.MustCompile(`(?i)(\d+)\s*h`)
	minuteMarker = regexp.MustCompile(`(?i)(\d+)\s*m`)
	bareNumber   = regexp.MustCompile(`\d+`)
)

// Number coerces a raw cell to a float64. Blank cells and the "-" placeholder
// become 0. Everything that is not a digit, comma, period, or minus sign is
// stripped first, then commas are treated as decimal points (the exports use
// the decimal-comma convention). Unparsable remainders become 0.
func Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return 0
	}

	s = numericJunk.ReplaceAllString(s, "")
	if s == "" || s == "-" {
		return 0
	}

	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// DurationMinutes parses a human duration cell ("2h 15m", "45m", "1h") into
// total minutes. When no hour or minute marker is present, a single bare
// number is read as minutes and two bare numbers as hours then minutes.
// Blank cells become 0.
func DurationMinutes(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return 0
	}

	hours, minutes := 0, 0
	if m := hourMarker.FindStringSubmatch(s); m != nil {
		hours, _ = strconv.Atoi(m[1])
	}
	if m := minuteMarker.FindStringSubmatch(s); m != nil {
		minutes, _ = strconv.Atoi(m[1])
	}

	if hours == 0 && minutes == 0 {
		numbers := bareNumber.FindAllString(s, -1)
		if len(numbers) == 1 {
			minutes, _ = strconv.Atoi(numbers[0])
		} else if len(numbers) > 1 {
			hours, _ = strconv.Atoi(numbers[0])
			minutes, _ = strconv.Atoi(numbers[1])
		}
	}

	return hours*60 + minutes
}

// Percent parses a percentage cell ("3,5%", "12.4 %") into its numeric value.
// The trailing percent sign is stripped and commas are treated as decimal
// points. Unparsable input becomes 0.
func Percent(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return 0
	}

	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, ",", ".")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// timestampLayouts are tried in order when parsing session start times.
// The exports are inconsistent about the format, so parsing is permissive.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// excelEpoch is day zero of the 1900 date system used by xlsx serial dates.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Timestamp parses a session start time permissively. It accepts the common
// textual layouts plus raw Excel serial numbers. Unparsable values yield nil
// rather than an error: a missing start time only disables the date filters.
func Timestamp(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	// Excel serial date: days (with fraction) since the 1900 epoch.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 && serial < 200000 {
		t := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
		return &t
	}

	return nil
}
