package repository

// Both dialects describe the same two relations. The item weight bound and
// item_number range are enforced by CHECK constraints, and item rows are
// removed with their parent by ON DELETE CASCADE.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS baggage_records (
		id SERIAL PRIMARY KEY,
		flight_number VARCHAR(50) NOT NULL,
		passenger_name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS baggage_items (
		id SERIAL PRIMARY KEY,
		baggage_record_id INTEGER NOT NULL REFERENCES baggage_records(id) ON DELETE CASCADE,
		item_number INTEGER NOT NULL CHECK (item_number >= 1 AND item_number <= 5),
		weight NUMERIC(5,2) NOT NULL CHECK (weight > 0 AND weight <= 100),
		UNIQUE (baggage_record_id, item_number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flight_number ON baggage_records(flight_number)`,
	`CREATE INDEX IF NOT EXISTS idx_passenger_name ON baggage_records(passenger_name)`,
	`CREATE INDEX IF NOT EXISTS idx_created_at ON baggage_records(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_baggage_items_record ON baggage_items(baggage_record_id)`,
}

// foreign_keys is a per-connection pragma; the store runs on a single session
var sqliteSchema = []string{
	`PRAGMA foreign_keys = ON`,
	`CREATE TABLE IF NOT EXISTS baggage_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		flight_number VARCHAR(50) NOT NULL,
		passenger_name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS baggage_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		baggage_record_id INTEGER NOT NULL REFERENCES baggage_records(id) ON DELETE CASCADE,
		item_number INTEGER NOT NULL CHECK (item_number >= 1 AND item_number <= 5),
		weight REAL NOT NULL CHECK (weight > 0 AND weight <= 100),
		UNIQUE (baggage_record_id, item_number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flight_number ON baggage_records(flight_number)`,
	`CREATE INDEX IF NOT EXISTS idx_passenger_name ON baggage_records(passenger_name)`,
	`CREATE INDEX IF NOT EXISTS idx_created_at ON baggage_records(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_baggage_items_record ON baggage_items(baggage_record_id)`,
}

func schemaFor(dialect string) ([]string, bool) {
	switch dialect {
	case "postgres":
		return postgresSchema, true
	case "sqlite":
		return sqliteSchema, true
	default:
		return nil, false
	}
}
