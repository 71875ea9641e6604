package templates

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"baggage-service/internal/domain/entity"
)

// PeriodLayout formats the bounds shown in the report header
const PeriodLayout = "02.01.2006 15:04"

const (
	reportRule  = "========================================"
	sectionRule = "----------------------------------------"
	tableWidth  = 80
)

// FlightTotals aggregates the records of one flight
type FlightTotals struct {
	FlightNumber string
	Passengers   int
	Weight       float64
}

// ReportStats holds the aggregate figures of a date-range report
type ReportStats struct {
	Records         int
	TotalWeight     float64
	TotalItems      int
	DistinctFlights int
	Flights         []FlightTotals
}

// ComputeStats aggregates records; Flights is sorted by flight number
func ComputeStats(records []entity.BaggageRecord) ReportStats {
	stats := ReportStats{Records: len(records)}
	byFlight := make(map[string]*FlightTotals)
	for _, r := range records {
		w := r.TotalWeight()
		stats.TotalWeight += w
		stats.TotalItems += r.ItemCount()

		ft, ok := byFlight[r.FlightNumber]
		if !ok {
			ft = &FlightTotals{FlightNumber: r.FlightNumber}
			byFlight[r.FlightNumber] = ft
		}
		ft.Passengers++
		ft.Weight += w
	}

	stats.DistinctFlights = len(byFlight)
	stats.Flights = make([]FlightTotals, 0, len(byFlight))
	for _, ft := range byFlight {
		stats.Flights = append(stats.Flights, *ft)
	}
	sort.Slice(stats.Flights, func(i, j int) bool {
		return stats.Flights[i].FlightNumber < stats.Flights[j].FlightNumber
	})
	return stats
}

// DateRangeReportText renders the period header, aggregate statistics, the
// per-flight breakdown and the per-record table
func DateRangeReportText(records []entity.BaggageRecord, from, to time.Time) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	b.WriteString("   BAGGAGE REPORT FOR PERIOD\n")
	b.WriteString(reportRule + "\n\n")
	fmt.Fprintf(&b, "Period: %s - %s\n\n", from.Format(PeriodLayout), to.Format(PeriodLayout))

	if len(records) == 0 {
		b.WriteString("No records found for the period.\n")
		writeFooter(&b)
		return b.String()
	}

	stats := ComputeStats(records)

	writeSection(&b, "SUMMARY")
	fmt.Fprintf(&b, "Records: %d\n", stats.Records)
	fmt.Fprintf(&b, "Total baggage weight: %.2f kg\n", stats.TotalWeight)
	fmt.Fprintf(&b, "Total items: %d\n", stats.TotalItems)
	fmt.Fprintf(&b, "Distinct flights: %d\n\n", stats.DistinctFlights)

	writeSection(&b, "FLIGHTS")
	for _, ft := range stats.Flights {
		fmt.Fprintf(&b, "  %-10s - passengers: %3d, weight: %.2f kg\n", ft.FlightNumber, ft.Passengers, ft.Weight)
	}
	b.WriteString("\n")

	writeSection(&b, "RECORDS")
	fmt.Fprintf(&b, "%-5s | %-10s | %-30s | %-7s | %s\n", "#", "Flight", "Passenger", "Items", "Total weight")
	b.WriteString(strings.Repeat("-", tableWidth) + "\n")
	for i, r := range records {
		fmt.Fprintf(&b, "%-5d | %-10s | %-30s | %-7d | %.2f kg\n",
			i+1, r.FlightNumber, r.PassengerName, r.ItemCount(), r.TotalWeight())
	}

	writeFooter(&b)
	return b.String()
}

func writeSection(b *strings.Builder, title string) {
	b.WriteString(sectionRule + "\n")
	b.WriteString(title + ":\n")
	b.WriteString(sectionRule + "\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("   END OF REPORT\n")
	b.WriteString(reportRule + "\n")
}
