package entity

import (
	"strings"
	"time"
)

// MaxItems is the maximum number of baggage items a passenger may check in
const MaxItems = 5

// Item is one piece of baggage at its 1-based position in a record
type Item struct {
	Number int
	Weight float64
}

// BaggageRecord represents a passenger's baggage entry
type BaggageRecord struct {
	ID            uint
	FlightNumber  string
	PassengerName string
	ItemWeights   []float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBaggageRecord creates a candidate record that has not been persisted yet
func NewBaggageRecord(flightNumber, passengerName string, itemWeights []float64) BaggageRecord {
	weights := make([]float64, len(itemWeights))
	copy(weights, itemWeights)
	return BaggageRecord{
		FlightNumber:  flightNumber,
		PassengerName: passengerName,
		ItemWeights:   weights,
	}
}

// TotalWeight returns the summed weight of all items
func (r BaggageRecord) TotalWeight() float64 {
	total := 0.0
	for _, w := range r.ItemWeights {
		total += w
	}
	return total
}

// ItemCount returns the number of items in the record
func (r BaggageRecord) ItemCount() int {
	return len(r.ItemWeights)
}

// Items returns the weights numbered from 1 in their original order
func (r BaggageRecord) Items() []Item {
	items := make([]Item, 0, len(r.ItemWeights))
	for i, w := range r.ItemWeights {
		items = append(items, Item{Number: i + 1, Weight: w})
	}
	return items
}

// Normalized returns a copy with surrounding whitespace removed from the text fields
func (r BaggageRecord) Normalized() BaggageRecord {
	n := r
	n.FlightNumber = strings.TrimSpace(r.FlightNumber)
	n.PassengerName = strings.TrimSpace(r.PassengerName)
	n.ItemWeights = make([]float64, len(r.ItemWeights))
	copy(n.ItemWeights, r.ItemWeights)
	return n
}
