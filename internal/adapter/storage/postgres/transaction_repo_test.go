package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-sync-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTx() *domain.Transaction {
	return &domain.Transaction{
		ID:           uuid.New(),
		Code:         "8901234567890",
		Operation:    domain.OperationStockIn,
		RackLocation: "RACK-A1",
		Timestamp:    time.Now().UTC().Truncate(time.Microsecond),
		DeviceID:     "device-7",
		Synced:       false,
	}
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	tx := sampleTx()

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(tx.ID, tx.Code, string(tx.Operation), tx.RackLocation, tx.Timestamp, tx.DeviceID, tx.Synced).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), tx)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_Create_StorageError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	tx := sampleTx()

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(tx.ID, tx.Code, string(tx.Operation), tx.RackLocation, tx.Timestamp, tx.DeviceID, tx.Synced).
		WillReturnError(errors.New("connection refused"))

	err = repo.Create(context.Background(), tx)
	assert.Error(t, err)
}

func TestTransactionRepo_ListUnsynced(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	id1, id2 := uuid.New(), uuid.New()
	ts1 := time.Now().UTC().Add(-time.Minute)
	ts2 := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "code", "operation", "rack_location", "ts", "device_id", "synced"}).
		AddRow(id1, "CODE-1", "STOCK_IN", "RACK-A1", ts1, "device-7", false).
		AddRow(id2, "CODE-2", "STOCK_OUT", "RACK-B2", ts2, "device-7", false)

	mock.ExpectQuery("SELECT id, code, operation, rack_location, ts, device_id, synced").
		WillReturnRows(rows)

	txns, err := repo.ListUnsynced(context.Background())
	require.NoError(t, err)
	require.Len(t, txns, 2)

	// Creation order preserved.
	assert.Equal(t, id1, txns[0].ID)
	assert.Equal(t, domain.OperationStockIn, txns[0].Operation)
	assert.Equal(t, id2, txns[1].ID)
	assert.Equal(t, domain.OperationStockOut, txns[1].Operation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListUnsynced_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT id, code, operation, rack_location, ts, device_id, synced").
		WillReturnRows(pgxmock.NewRows([]string{"id", "code", "operation", "rack_location", "ts", "device_id", "synced"}))

	txns, err := repo.ListUnsynced(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestTransactionRepo_MarkSynced(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE transactions SET synced = TRUE").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.MarkSynced(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_MarkSynced_AlreadySynced(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()

	// The update matches the row whether or not it is already synced, so a
	// repeat call is a no-op, not an error.
	mock.ExpectExec("UPDATE transactions SET synced = TRUE").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE transactions SET synced = TRUE").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.MarkSynced(context.Background(), id))
	require.NoError(t, repo.MarkSynced(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_MarkSynced_UnknownID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()

	mock.ExpectExec("UPDATE transactions SET synced = TRUE").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.MarkSynced(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestTransactionRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, code, operation, rack_location, ts, device_id, synced").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	tx, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, tx)
}
