package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/logger"
	"baggage-service/templates"
)

// BaggageManager wraps the record store and keeps a read-only copy of the
// full record set. Every successful write reloads the copy from the store.
type BaggageManager struct {
	repo   repository.BaggageRepository
	logger logger.Logger

	mu        sync.RWMutex
	records   []entity.BaggageRecord
	lastError string
}

// NewBaggageManager creates a new baggage manager
func NewBaggageManager(repo repository.BaggageRepository, logger logger.Logger) *BaggageManager {
	return &BaggageManager{
		repo:   repo,
		logger: logger,
	}
}

// Refresh reloads the cached record set from the store
func (m *BaggageManager) Refresh(ctx context.Context) error {
	records, err := m.repo.ListAll(ctx)
	if err != nil {
		m.logger.Error("Failed to refresh baggage records", "error", err)
		return m.fail(err)
	}
	m.mu.Lock()
	m.records = records
	m.mu.Unlock()
	return nil
}

// Records returns a copy of the cached record set
func (m *BaggageManager) Records() []entity.BaggageRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entity.BaggageRecord, len(m.records))
	for i, r := range m.records {
		out[i] = r
		out[i].ItemWeights = append([]float64(nil), r.ItemWeights...)
	}
	return out
}

// LastError returns the message of the most recent failure of an operation
// run through the manager, including its own bound checks. Until the manager
// has seen a failure it reports the store's last error.
func (m *BaggageManager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.lastError != "" {
		return m.lastError
	}
	return m.repo.LastError()
}

// AddRecord stores a new record and refreshes the cache
func (m *BaggageManager) AddRecord(ctx context.Context, record entity.BaggageRecord) error {
	if err := m.repo.Insert(ctx, record); err != nil {
		return m.fail(err)
	}
	m.logger.Info("Baggage record added", "flight_number", record.FlightNumber, "passenger_name", record.PassengerName)
	m.refreshAfterWrite(ctx, "add_record")
	return nil
}

// DeleteByFlightNumbers removes all records of the given flights
func (m *BaggageManager) DeleteByFlightNumbers(ctx context.Context, flightNumbers []string) (int, error) {
	deleted, err := m.repo.DeleteByFlightNumbers(ctx, flightNumbers)
	if err != nil {
		return 0, m.fail(err)
	}
	if deleted > 0 {
		m.refreshAfterWrite(ctx, "delete_by_flight_numbers")
	}
	return deleted, nil
}

// ChangeItems replaces the item set of the passenger's record
func (m *BaggageManager) ChangeItems(ctx context.Context, passengerName string, weights []float64) error {
	if err := m.repo.ReplaceItemsByPassengerName(ctx, passengerName, weights); err != nil {
		return m.fail(err)
	}
	m.refreshAfterWrite(ctx, "change_items")
	return nil
}

// Clear deletes every record
func (m *BaggageManager) Clear(ctx context.Context) error {
	if err := m.repo.ClearAll(ctx); err != nil {
		return m.fail(err)
	}
	m.refreshAfterWrite(ctx, "clear")
	return nil
}

// FilterSingleItem returns passengers with exactly one item within [low, high]
func (m *BaggageManager) FilterSingleItem(ctx context.Context, low, high float64) ([]entity.BaggageRecord, error) {
	if low > high {
		return nil, m.fail(entity.NewStoreError(entity.KindValidation, "filter", fmt.Sprintf("low bound %.2f is above high bound %.2f", low, high), nil))
	}
	records, err := m.repo.FilterSingleItemInRange(ctx, low, high)
	if err != nil {
		return nil, m.fail(err)
	}
	return records, nil
}

// Summary renders the tab-separated summary of every stored record
func (m *BaggageManager) Summary(ctx context.Context) (string, error) {
	records, err := m.repo.ListAll(ctx)
	if err != nil {
		return "", m.fail(err)
	}
	return templates.SummaryText(records), nil
}

// DateRangeReport checks the bounds, fetches the period and renders the report
func (m *BaggageManager) DateRangeReport(ctx context.Context, from, to time.Time) (string, int, error) {
	if from.After(to) {
		return "", 0, m.fail(entity.NewStoreError(entity.KindValidation, "date_range_report", "start of period is after its end", nil))
	}
	records, err := m.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		return "", 0, m.fail(err)
	}
	m.logger.Info("Date range report generated", "from", from, "to", to, "records", len(records))
	return templates.DateRangeReportText(records, from, to), len(records), nil
}

// refreshAfterWrite reloads the cache after a committed write. A failed
// reload leaves the previous copy in place and does not fail the write.
func (m *BaggageManager) refreshAfterWrite(ctx context.Context, op string) {
	if err := m.Refresh(ctx); err != nil {
		m.logger.Warn("Write committed but cache refresh failed", "op", op, "error", err)
	}
}

func (m *BaggageManager) fail(err error) error {
	m.mu.Lock()
	m.lastError = err.Error()
	m.mu.Unlock()
	return err
}
