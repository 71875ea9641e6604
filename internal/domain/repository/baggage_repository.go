package repository

import (
	"context"
	"time"

	"baggage-service/internal/domain/entity"
)

// Inclusive weight bounds used by the single-item filter when none are given
const (
	DefaultFilterLow  = 20.0
	DefaultFilterHigh = 30.0
)

// BaggageRepository defines the interface for baggage record storage operations
type BaggageRepository interface {
	InitializeSchema(ctx context.Context) error
	Ping(ctx context.Context) error

	Insert(ctx context.Context, record entity.BaggageRecord) error
	DeleteByFlightNumbers(ctx context.Context, flightNumbers []string) (int, error)
	ReplaceItemsByPassengerName(ctx context.Context, passengerName string, weights []float64) error
	ClearAll(ctx context.Context) error

	ListAll(ctx context.Context) ([]entity.BaggageRecord, error)
	FindByFlightNumber(ctx context.Context, flightNumber string) ([]entity.BaggageRecord, error)
	FindByPassengerName(ctx context.Context, passengerName string) ([]entity.BaggageRecord, error)
	FilterSingleItemInRange(ctx context.Context, low, high float64) ([]entity.BaggageRecord, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]entity.BaggageRecord, error)
	Count(ctx context.Context) (int64, error)

	// LastError returns the message of the most recent failed operation
	LastError() string
}
