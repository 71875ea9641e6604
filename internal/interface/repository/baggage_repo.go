package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/internal/domain/validator"
	"baggage-service/pkg/logger"
	"baggage-service/pkg/metrics"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	opInitSchema = "initialize_schema"
	opPing       = "ping"
	opInsert     = "insert"
	opDelete     = "delete_by_flight_numbers"
	opReplace    = "replace_items_by_passenger_name"
	opClear      = "clear_all"
	opList       = "list_all"
	opFindFlight = "find_by_flight_number"
	opFindName   = "find_by_passenger_name"
	opFilter     = "filter_single_item_in_range"
	opDateRange  = "find_by_date_range"
	opCount      = "count"
)

var _ repository.BaggageRepository = (*GormBaggageRepository)(nil)

// Option configures a GormBaggageRepository
type Option func(*GormBaggageRepository)

// WithMetrics records per-operation counters and durations
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *GormBaggageRepository) {
		r.metrics = m
	}
}

// WithClock overrides the source of created_at/updated_at values
func WithClock(now func() time.Time) Option {
	return func(r *GormBaggageRepository) {
		r.now = now
	}
}

// GormBaggageRepository implements the BaggageRepository interface over a
// single GORM session. Multi-row writes run in their own transaction.
type GormBaggageRepository struct {
	db      *gorm.DB
	logger  logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	mu        sync.Mutex
	lastError string
	closed    bool
}

// NewGormBaggageRepository creates a new GORM baggage repository
func NewGormBaggageRepository(db *gorm.DB, log logger.Logger, opts ...Option) *GormBaggageRepository {
	r := &GormBaggageRepository{
		db:     db,
		logger: log.With("component", "baggage_store"),
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LastError returns the message of the most recent failed operation.
// It is not cleared by later successful operations.
func (r *GormBaggageRepository) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}

// Close releases the underlying session; later calls fail with a connection error
func (r *GormBaggageRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// InitializeSchema creates both tables and their indexes if they are absent
func (r *GormBaggageRepository) InitializeSchema(ctx context.Context) (err error) {
	defer r.finish(opInitSchema, time.Now(), &err)

	db, err := r.session(ctx, opInitSchema)
	if err != nil {
		return err
	}
	dialect := db.Dialector.Name()
	statements, ok := schemaFor(dialect)
	if !ok {
		return entity.NewStoreError(entity.KindConnection, opInitSchema, "unsupported dialect "+dialect, nil)
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return statementError(opInitSchema, "execute ddl", err)
		}
	}
	r.logger.Info("Baggage schema ready", "dialect", dialect)
	return nil
}

// Ping checks that the session is usable
func (r *GormBaggageRepository) Ping(ctx context.Context) (err error) {
	defer r.finish(opPing, time.Now(), &err)

	db, err := r.session(ctx, opPing)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return entity.NewStoreError(entity.KindConnection, opPing, "get sql db", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return entity.NewStoreError(entity.KindConnection, opPing, "ping database", err)
	}
	return nil
}

// Insert validates the record and stores it with its items in one transaction
func (r *GormBaggageRepository) Insert(ctx context.Context, record entity.BaggageRecord) (err error) {
	defer r.finish(opInsert, time.Now(), &err)

	record = record.Normalized()
	if err := validator.Validate(record); err != nil {
		return withOp(err, opInsert)
	}

	now := r.now()
	return r.withTx(ctx, opInsert, func(tx *gorm.DB) error {
		row := BaggageRecords{
			FlightNumber:  record.FlightNumber,
			PassengerName: record.PassengerName,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Omit(clause.Associations).Create(&row).Error; err != nil {
			return statementError(opInsert, "insert baggage record", err)
		}
		if row.ID == 0 {
			return entity.NewStoreError(entity.KindStatement, opInsert, "no id returned for baggage record", nil)
		}
		return insertItems(tx, opInsert, row.ID, record.ItemWeights)
	})
}

// DeleteByFlightNumbers removes every record whose flight number is in the
// given set. Items go with them through the cascade constraint.
func (r *GormBaggageRepository) DeleteByFlightNumbers(ctx context.Context, flightNumbers []string) (deleted int, err error) {
	names := make([]string, 0, len(flightNumbers))
	for _, n := range flightNumbers {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return 0, nil
	}

	defer r.finish(opDelete, time.Now(), &err)

	err = r.withTx(ctx, opDelete, func(tx *gorm.DB) error {
		result := tx.Where("flight_number IN ?", names).Delete(&BaggageRecords{})
		if result.Error != nil {
			return statementError(opDelete, "delete baggage records", result.Error)
		}
		deleted = int(result.RowsAffected)
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.logger.Info("Deleted baggage records", "flight_numbers", names, "deleted", deleted)
	return deleted, nil
}

// ReplaceItemsByPassengerName swaps the whole item set of the first record
// (lowest id) whose passenger name matches exactly. Either the old or the
// new item set is visible afterwards, never a mix.
func (r *GormBaggageRepository) ReplaceItemsByPassengerName(ctx context.Context, passengerName string, weights []float64) (err error) {
	defer r.finish(opReplace, time.Now(), &err)

	name := strings.TrimSpace(passengerName)
	if name == "" {
		return entity.NewStoreError(entity.KindValidation, opReplace, "passenger name is empty", nil)
	}
	if err := validator.ValidateWeights(weights); err != nil {
		return withOp(err, opReplace)
	}
	newWeights := make([]float64, len(weights))
	copy(newWeights, weights)

	now := r.now()
	return r.withTx(ctx, opReplace, func(tx *gorm.DB) error {
		var row BaggageRecords
		if err := tx.Where("passenger_name = ?", name).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.NewStoreError(entity.KindNotFound, opReplace, "passenger "+name+" not found", nil)
			}
			return statementError(opReplace, "look up baggage record", err)
		}

		if err := tx.Where("baggage_record_id = ?", row.ID).Delete(&BaggageItems{}).Error; err != nil {
			return statementError(opReplace, "delete old items", err)
		}
		if err := insertItems(tx, opReplace, row.ID, newWeights); err != nil {
			return err
		}
		if err := tx.Model(&BaggageRecords{}).Where("id = ?", row.ID).UpdateColumn("updated_at", now).Error; err != nil {
			return statementError(opReplace, "touch updated_at", err)
		}
		return nil
	})
}

// ClearAll deletes every record in one transaction
func (r *GormBaggageRepository) ClearAll(ctx context.Context) (err error) {
	defer r.finish(opClear, time.Now(), &err)

	return r.withTx(ctx, opClear, func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM baggage_records").Error; err != nil {
			return statementError(opClear, "delete all baggage records", err)
		}
		return nil
	})
}

// ListAll returns every record in insertion order
func (r *GormBaggageRepository) ListAll(ctx context.Context) (records []entity.BaggageRecord, err error) {
	defer r.finish(opList, time.Now(), &err)

	records, err = r.find(ctx, opList, func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
	if err != nil {
		return nil, err
	}
	r.metrics.SetStoredRecords(len(records))
	return records, nil
}

// FindByFlightNumber returns records with exactly this flight number
func (r *GormBaggageRepository) FindByFlightNumber(ctx context.Context, flightNumber string) (records []entity.BaggageRecord, err error) {
	defer r.finish(opFindFlight, time.Now(), &err)

	return r.find(ctx, opFindFlight, func(db *gorm.DB) *gorm.DB {
		return db.Where("flight_number = ?", flightNumber).Order("id ASC")
	})
}

// FindByPassengerName returns records with exactly this passenger name
func (r *GormBaggageRepository) FindByPassengerName(ctx context.Context, passengerName string) (records []entity.BaggageRecord, err error) {
	defer r.finish(opFindName, time.Now(), &err)

	return r.find(ctx, opFindName, func(db *gorm.DB) *gorm.DB {
		return db.Where("passenger_name = ?", passengerName).Order("id ASC")
	})
}

// FilterSingleItemInRange returns records holding exactly one item whose
// weight lies within [low, high]
func (r *GormBaggageRepository) FilterSingleItemInRange(ctx context.Context, low, high float64) (records []entity.BaggageRecord, err error) {
	defer r.finish(opFilter, time.Now(), &err)

	all, err := r.find(ctx, opFilter, func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
	if err != nil {
		return nil, err
	}

	records = make([]entity.BaggageRecord, 0)
	for _, rec := range all {
		if rec.ItemCount() != 1 {
			continue
		}
		if w := rec.ItemWeights[0]; w >= low && w <= high {
			records = append(records, rec)
		}
	}
	return records, nil
}

// FindByDateRange returns records created within [from, to] ordered by
// creation time. The caller is expected to check that from <= to.
func (r *GormBaggageRepository) FindByDateRange(ctx context.Context, from, to time.Time) (records []entity.BaggageRecord, err error) {
	defer r.finish(opDateRange, time.Now(), &err)

	return r.find(ctx, opDateRange, func(db *gorm.DB) *gorm.DB {
		return db.Where("created_at BETWEEN ? AND ?", from.UTC(), to.UTC()).Order("created_at ASC").Order("id ASC")
	})
}

// Count returns the number of stored records
func (r *GormBaggageRepository) Count(ctx context.Context) (n int64, err error) {
	defer r.finish(opCount, time.Now(), &err)

	db, err := r.session(ctx, opCount)
	if err != nil {
		return 0, err
	}
	if err := db.Model(&BaggageRecords{}).Count(&n).Error; err != nil {
		return 0, statementError(opCount, "count baggage records", err)
	}
	r.metrics.SetStoredRecords(int(n))
	return n, nil
}

func (r *GormBaggageRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]entity.BaggageRecord, error) {
	db, err := r.session(ctx, op)
	if err != nil {
		return nil, err
	}

	var rows []BaggageRecords
	query := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_number ASC")
	})
	if err := scope(query).Find(&rows).Error; err != nil {
		return nil, statementError(op, "query baggage records", err)
	}
	return toEntities(rows), nil
}

func insertItems(tx *gorm.DB, op string, recordID uint, weights []float64) error {
	for i, w := range weights {
		item := BaggageItems{
			BaggageRecordID: recordID,
			ItemNumber:      i + 1,
			Weight:          w,
		}
		if err := tx.Create(&item).Error; err != nil {
			return statementError(op, "insert item", err)
		}
	}
	return nil
}

func (r *GormBaggageRepository) session(ctx context.Context, op string) (*gorm.DB, error) {
	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if r.db == nil || closed {
		return nil, entity.NewStoreError(entity.KindConnection, op, "database is not connected", nil)
	}
	return r.db.WithContext(ctx), nil
}

// withTx runs fn in a transaction that is rolled back on every path except a
// successful commit
func (r *GormBaggageRepository) withTx(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	db, err := r.session(ctx, op)
	if err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return entity.NewStoreError(entity.KindTransaction, op, "begin transaction", tx.Error)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.logger.Error("Rollback failed", "op", op, "error", rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return entity.NewStoreError(entity.KindTransaction, op, "commit transaction", err)
	}
	committed = true
	return nil
}

// finish records the outcome of op; untyped errors are classified as
// statement errors so callers always see a *entity.StoreError
func (r *GormBaggageRepository) finish(op string, start time.Time, errp *error) {
	outcome := metrics.OutcomeSuccess
	if err := *errp; err != nil {
		kind, ok := entity.KindOf(err)
		if !ok {
			kind = entity.KindStatement
			err = statementError(op, "unexpected failure", err)
			*errp = err
		}
		outcome = kind.String()

		r.mu.Lock()
		r.lastError = err.Error()
		r.mu.Unlock()

		if kind == entity.KindValidation || kind == entity.KindNotFound {
			r.logger.Warn("Baggage store operation rejected", "op", op, "error", err)
		} else {
			r.logger.Error("Baggage store operation failed", "op", op, "error", err)
		}
	} else {
		r.logger.Debug("Baggage store operation done", "op", op, "duration", time.Since(start))
	}
	r.metrics.Observe(op, outcome, time.Since(start).Seconds())
}

func statementError(op, msg string, err error) error {
	return entity.NewStoreError(entity.KindStatement, op, msg, err)
}

func withOp(err error, op string) error {
	var se *entity.StoreError
	if errors.As(err, &se) {
		c := *se
		c.Op = op
		return &c
	}
	return err
}
