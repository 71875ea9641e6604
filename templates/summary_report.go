// Package templates renders baggage records as plain-text reports. Nothing
// here performs I/O; callers decide where the text goes.
package templates

import (
	"fmt"
	"strings"

	"baggage-service/internal/domain/entity"
)

// SummaryHeader is the first line of every summary file
const SummaryHeader = "flight number\tpassenger name\ttotal weight (kg)"

// SummaryText renders one tab-separated line per record, in input order
func SummaryText(records []entity.BaggageRecord) string {
	var b strings.Builder
	b.WriteString(SummaryHeader)
	b.WriteString("\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%s\t%s\t%.2f\n", r.FlightNumber, r.PassengerName, r.TotalWeight())
	}
	return b.String()
}
