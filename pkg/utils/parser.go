package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var listSeparator = regexp.MustCompile(`[\s,;]+`)

// ParseWeights parses a comma, semicolon or whitespace separated list of
// weights. A decimal comma is not accepted; use a dot.
func ParseWeights(input string) ([]float64, error) {
	fields := splitList(input)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no weights given")
	}
	weights := make([]float64, 0, len(fields))
	for _, f := range fields {
		w, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", f, err)
		}
		weights = append(weights, w)
	}
	return weights, nil
}

// ParseFlightNumbers splits input into flight numbers, dropping blanks and
// repeated entries while keeping the first-seen order
func ParseFlightNumbers(inputs ...string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, in := range inputs {
		for _, f := range splitList(in) {
			if seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// ParseDateTime accepts "dd.MM.yyyy HH:mm", "yyyy-MM-dd HH:mm", "yyyy-MM-dd"
// or RFC 3339, interpreting zone-less values in loc
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{DATE_LAYOUT, ISO_DATE_LAYOUT, DAY_LAYOUT} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q, expected %s", value, DATE_LAYOUT)
}

// ParsePeriodEnd parses the inclusive end of a period. A date without a time
// of day means the last microsecond of that day.
func ParsePeriodEnd(value string, loc *time.Location) (time.Time, error) {
	if day, err := time.ParseInLocation(DAY_LAYOUT, strings.TrimSpace(value), loc); err == nil {
		return day.AddDate(0, 0, 1).Add(-time.Microsecond), nil
	}
	return ParseDateTime(value, loc)
}

func splitList(input string) []string {
	var out []string
	for _, f := range listSeparator.Split(strings.TrimSpace(input), -1) {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
