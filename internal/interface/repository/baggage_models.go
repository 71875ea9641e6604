package repository

import (
	"time"

	"baggage-service/internal/domain/entity"
)

// BaggageRecords GORM model for database mapping
type BaggageRecords struct {
	ID            uint           `gorm:"primaryKey"`
	FlightNumber  string         `gorm:"column:flight_number"`
	PassengerName string         `gorm:"column:passenger_name"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	Items         []BaggageItems `gorm:"foreignKey:BaggageRecordID"`
}

// TableName overrides the default table name
func (BaggageRecords) TableName() string {
	return "baggage_records"
}

// BaggageItems GORM model for one item row
type BaggageItems struct {
	ID              uint    `gorm:"primaryKey"`
	BaggageRecordID uint    `gorm:"column:baggage_record_id"`
	ItemNumber      int     `gorm:"column:item_number"`
	Weight          float64 `gorm:"column:weight"`
}

// TableName overrides the default table name
func (BaggageItems) TableName() string {
	return "baggage_items"
}

// toEntity converts the GORM model to a domain entity; Items must be
// loaded in item_number order
func (m BaggageRecords) toEntity() entity.BaggageRecord {
	weights := make([]float64, 0, len(m.Items))
	for _, item := range m.Items {
		weights = append(weights, item.Weight)
	}
	return entity.BaggageRecord{
		ID:            m.ID,
		FlightNumber:  m.FlightNumber,
		PassengerName: m.PassengerName,
		ItemWeights:   weights,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toEntities(rows []BaggageRecords) []entity.BaggageRecord {
	records := make([]entity.BaggageRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toEntity())
	}
	return records
}
