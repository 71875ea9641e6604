package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/infrastructure/persistence"
	baggageRepo "baggage-service/internal/interface/repository"
	"baggage-service/pkg/logger"
	"baggage-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var createdAt = time.Date(2026, 10, 5, 9, 30, 0, 0, time.UTC)

func newTestFactory(t *testing.T) AppFactory {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, persistence.ConfigureSingleSession(db))

	log := logger.NewNopLogger()
	reg := prometheus.NewRegistry()
	store := baggageRepo.NewGormBaggageRepository(db, log,
		baggageRepo.WithMetrics(metrics.NewMetrics("baggage", reg)),
		baggageRepo.WithClock(func() time.Time { return createdAt }),
	)
	require.NoError(t, store.InitializeSchema(context.Background()))
	t.Cleanup(func() { store.Close() })

	app := NewApp(store, log, reg, nil)
	return func(context.Context) (*App, error) { return app, nil }
}

func execute(factory AppFactory, args ...string) (string, error) {
	cmd := NewRootCommand(factory)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func mustExecute(t *testing.T, factory AppFactory, args ...string) string {
	t.Helper()
	out, err := execute(factory, args...)
	require.NoError(t, err, "baggage %s", strings.Join(args, " "))
	return out
}

func TestAddAndList(t *testing.T) {
	factory := newTestFactory(t)

	out := mustExecute(t, factory, "add", "--flight", "SU1234", "--name", "Ivanov I.I.", "--weights", "12.5,8")
	assert.Equal(t, "added SU1234 / Ivanov I.I.: 2 item(s), 20.50 kg\n", out)

	out = mustExecute(t, factory, "list")
	assert.Contains(t, out, "SU1234")
	assert.Contains(t, out, "12.5,8")
	assert.Contains(t, out, "20.50")
}

func TestAddInvalidRecordFails(t *testing.T) {
	factory := newTestFactory(t)

	_, err := execute(factory, "add", "--flight", "su1", "--name", "Ivanov I.I.", "--weights", "10")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrValidation)

	out := mustExecute(t, factory, "count")
	assert.Equal(t, "0\n", out)
}

func TestAddRequiresNumericWeights(t *testing.T) {
	factory := newTestFactory(t)

	_, err := execute(factory, "add", "--flight", "SU1234", "--name", "Ivanov I.I.", "--weights", "ten")
	assert.ErrorContains(t, err, "invalid weight")
}

func TestDeleteByFlight(t *testing.T) {
	factory := newTestFactory(t)
	mustExecute(t, factory, "add", "--flight", "SU1234", "--name", "First Passenger", "--weights", "10")
	mustExecute(t, factory, "add", "--flight", "SU1234", "--name", "Second Passenger", "--weights", "11")
	mustExecute(t, factory, "add", "--flight", "AB123", "--name", "Third Passenger", "--weights", "12")

	out := mustExecute(t, factory, "delete", "SU1234")
	assert.Equal(t, "deleted 2 record(s)\n", out)

	out = mustExecute(t, factory, "list", "--flight", "AB123")
	assert.Contains(t, out, "Third Passenger")
	assert.Equal(t, "1\n", mustExecute(t, factory, "count"))
}

func TestChangeItems(t *testing.T) {
	factory := newTestFactory(t)
	mustExecute(t, factory, "add", "--flight", "SU1234", "--name", "Ivanov I.I.", "--weights", "30")

	out := mustExecute(t, factory, "change-items", "--name", "Ivanov I.I.", "--weights", "12.5 8")
	assert.Equal(t, "items of Ivanov I.I. replaced: 2 item(s)\n", out)

	out = mustExecute(t, factory, "list", "--name", "Ivanov I.I.")
	assert.Contains(t, out, "12.5,8")

	_, err := execute(factory, "change-items", "--name", "NoSuchName", "--weights", "5")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestFilter(t *testing.T) {
	factory := newTestFactory(t)
	mustExecute(t, factory, "add", "--flight", "SU1001", "--name", "Below Range", "--weights", "19.99")
	mustExecute(t, factory, "add", "--flight", "SU1002", "--name", "In Range", "--weights", "25")
	mustExecute(t, factory, "add", "--flight", "SU1003", "--name", "Two Items", "--weights", "25,25")

	out := mustExecute(t, factory, "filter")
	assert.Contains(t, out, "In Range")
	assert.NotContains(t, out, "Below Range")
	assert.NotContains(t, out, "Two Items")

	out = mustExecute(t, factory, "filter", "--low", "10", "--high", "20")
	assert.Contains(t, out, "Below Range")
}

func TestClearRequiresConfirmation(t *testing.T) {
	factory := newTestFactory(t)
	mustExecute(t, factory, "add", "--flight", "SU1234", "--name", "Ivanov I.I.", "--weights", "10")

	_, err := execute(factory, "clear")
	assert.ErrorContains(t, err, "--yes")
	assert.Equal(t, "1\n", mustExecute(t, factory, "count"))

	mustExecute(t, factory, "clear", "--yes")
	assert.Equal(t, "0\n", mustExecute(t, factory, "count"))
}

func TestSummaryToFile(t *testing.T) {
	factory := newTestFactory(t)
	mustExecute(t, factory, "add", "--flight", "SU1234", "--name", "A Passenger", "--weights", "10,15")
	mustExecute(t, factory, "add", "--flight", "BA200", "--name", "B Passenger", "--weights", "25")

	path := filepath.Join(t.TempDir(), "summary.txt")
	mustExecute(t, factory, "summary", "--out", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"flight number\tpassenger name\ttotal weight (kg)\nSU1234\tA Passenger\t25.00\nBA200\tB Passenger\t25.00\n",
		string(data))
}

func TestReport(t *testing.T) {
	factory := newTestFactory(t)
	mustExecute(t, factory, "add", "--flight", "SU1234", "--name", "Ivanov I.I.", "--weights", "10,15")

	out := mustExecute(t, factory, "report", "--from", "01.10.2026 00:00", "--to", "2026-10-18")
	assert.Contains(t, out, "Period: 01.10.2026 00:00 - 18.10.2026 23:59")
	assert.Contains(t, out, "Records: 1")
	assert.Contains(t, out, "Total baggage weight: 25.00 kg")

	out = mustExecute(t, factory, "report", "--from", "2026-10-06", "--to", "2026-10-18")
	assert.Contains(t, out, "No records found for the period.")

	_, err := execute(factory, "report", "--from", "2026-10-18", "--to", "2026-10-01")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestReportDayOnlyEndCoversWholeDay(t *testing.T) {
	factory := newTestFactory(t)
	mustExecute(t, factory, "add", "--flight", "SU1234", "--name", "Ivanov I.I.", "--weights", "10")

	// records are created at 09:30 on 05.10.2026
	out := mustExecute(t, factory, "report", "--from", "2026-10-05", "--to", "2026-10-05")
	assert.Contains(t, out, "Records: 1")

	out = mustExecute(t, factory, "report", "--from", "2026-10-05", "--to", "05.10.2026 09:00")
	assert.Contains(t, out, "No records found for the period.")
}

func TestAddRejectsThreeDecimalWeight(t *testing.T) {
	factory := newTestFactory(t)

	_, err := execute(factory, "add", "--flight", "SU1234", "--name", "Ivanov I.I.", "--weights", "12.345")
	assert.ErrorIs(t, err, entity.ErrValidation)
	assert.Equal(t, "0\n", mustExecute(t, factory, "count"))
}

func TestMetricsFileIsWritten(t *testing.T) {
	factory := newTestFactory(t)
	path := filepath.Join(t.TempDir(), "baggage.prom")

	mustExecute(t, factory, "--metrics-file", path, "add", "--flight", "SU1234", "--name", "Ivanov I.I.", "--weights", "10")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `baggage_store_operations_total{operation="insert",outcome="success"} 1`)
}

func TestFactoryErrorIsReturned(t *testing.T) {
	factory := func(context.Context) (*App, error) {
		return nil, assert.AnError
	}

	_, err := execute(factory, "count")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestInitIsIdempotent(t *testing.T) {
	factory := newTestFactory(t)

	assert.Equal(t, "schema ready\n", mustExecute(t, factory, "init"))
	assert.Equal(t, "schema ready\n", mustExecute(t, factory, "init"))
}
