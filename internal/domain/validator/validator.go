// Package validator holds the rules a baggage record must satisfy before it
// may be persisted. All functions are pure.
package validator

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"baggage-service/internal/domain/entity"
)

const (
	MinFlightNumberLength  = 4
	MaxFlightNumberLength  = 10
	MinPassengerNameLength = 3
	MaxPassengerNameLength = 255
	MaxItemWeight          = 100.0
	// WeightDecimals is the precision of the stored weight column
	WeightDecimals         = 2

	forbiddenChars = "<>{}[]$;'\"`\\"
	opValidate     = "validate"
)

var flightNumberPattern = regexp.MustCompile(`^[A-Z]{2}\d{3,4}$`)

// IsValidFlightNumber checks for two uppercase letters followed by 3-4 digits
func IsValidFlightNumber(s string) bool {
	return checkFlightNumber(s) == ""
}

// IsValidPassengerName checks length, forbidden characters and that at least
// one Latin or Cyrillic letter is present
func IsValidPassengerName(s string) bool {
	return checkPassengerName(s) == ""
}

// IsValidItemCount reports whether n is within 1..MaxItems
func IsValidItemCount(n int) bool {
	return n > 0 && n <= entity.MaxItems
}

// IsValidWeight reports whether w is within (0, 100] and has at most two
// decimal places
func IsValidWeight(w float64) bool {
	return w > 0 && w <= MaxItemWeight && hasWeightPrecision(w)
}

// IsValid reports whether every field rule holds for r
func IsValid(r entity.BaggageRecord) bool {
	return Validate(r) == nil
}

// Validate returns a validation error naming the first rule r breaks
func Validate(r entity.BaggageRecord) error {
	if msg := checkFlightNumber(r.FlightNumber); msg != "" {
		return entity.NewStoreError(entity.KindValidation, opValidate, msg, nil)
	}
	if msg := checkPassengerName(r.PassengerName); msg != "" {
		return entity.NewStoreError(entity.KindValidation, opValidate, msg, nil)
	}
	return ValidateWeights(r.ItemWeights)
}

// ValidateWeights checks the item count and every weight
func ValidateWeights(weights []float64) error {
	if !IsValidItemCount(len(weights)) {
		return entity.NewStoreError(entity.KindValidation, opValidate,
			fmt.Sprintf("item count must be between 1 and %d, got %d", entity.MaxItems, len(weights)), nil)
	}
	for i, w := range weights {
		if !IsValidWeight(w) {
			return entity.NewStoreError(entity.KindValidation, opValidate,
				fmt.Sprintf("item %d weight must be greater than 0 and at most %.0f kg with at most %d decimal places, got %v",
					i+1, MaxItemWeight, WeightDecimals, w), nil)
		}
	}
	return nil
}

func checkFlightNumber(s string) string {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0:
		return "flight number is empty"
	case n < MinFlightNumberLength || n > MaxFlightNumberLength:
		return fmt.Sprintf("flight number length must be between %d and %d", MinFlightNumberLength, MaxFlightNumberLength)
	case hasForbiddenChars(s):
		return "flight number contains forbidden characters"
	case !flightNumberPattern.MatchString(s):
		return "flight number must be two uppercase letters followed by 3-4 digits"
	}
	return ""
}

func checkPassengerName(s string) string {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	switch {
	case n < MinPassengerNameLength || n > MaxPassengerNameLength:
		return fmt.Sprintf("passenger name length must be between %d and %d", MinPassengerNameLength, MaxPassengerNameLength)
	case hasForbiddenChars(s):
		return "passenger name contains forbidden characters"
	case !hasLetter(s):
		return "passenger name must contain at least one letter"
	}
	return ""
}

func hasWeightPrecision(w float64) bool {
	scaled := w * math.Pow10(WeightDecimals)
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}

func hasForbiddenChars(s string) bool {
	return strings.ContainsAny(s, forbiddenChars)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && (unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Cyrillic, r)) {
			return true
		}
	}
	return false
}
