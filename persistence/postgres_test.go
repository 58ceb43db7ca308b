package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records what PostgresPersistence sends. Methods it does not
// override panic through the nil embedded interface.
type fakeTx struct {
	pgx.Tx
	houseID   int64
	houseArgs []any
	batch     *pgx.Batch
	execErr   error
	committed bool
	rolled    bool
}

type fakeRow struct {
	id  int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	return nil
}

type fakeBatchResults struct {
	pgx.BatchResults
	err    error
	closed bool
}

func (b *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("INSERT 0 1"), b.err
}

func (b *fakeBatchResults) Close() error {
	b.closed = true
	return nil
}

func (tx *fakeTx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	tx.houseArgs = args
	return fakeRow{id: tx.houseID}
}

func (tx *fakeTx) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	tx.batch = b
	return &fakeBatchResults{err: tx.execErr}
}

func (tx *fakeTx) Commit(context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	tx.rolled = true
	return nil
}

type fakeDB struct {
	tx  *fakeTx
	err error
}

func (db fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if db.err != nil {
		return nil, db.err
	}
	return db.tx, nil
}

func TestPostgresPersistence_WriteSeatplan(t *testing.T) {
	// Arrange
	tx := &fakeTx{houseID: 7}
	pp := NewPostgresPersistence(fakeDB{tx: tx})
	record := sampleRecord("S1")

	// Act
	err := pp.WriteSeatplan(context.Background(), record)

	// Assert
	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.Equal(t, []any{"House 1", "<svg/>", 120, record.ProcessedAt}, tx.houseArgs)

	require.NotNil(t, tx.batch)
	require.Equal(t, 4, tx.batch.Len())
	seat := tx.batch.QueuedQueries[0]
	assert.Equal(t, insertSeatSQL, seat.SQL)
	assert.Equal(t, int64(7), seat.Arguments[0])
	assert.Equal(t, 20, seat.Arguments[1])
	assert.Equal(t, 22, seat.Arguments[2])
	sale := tx.batch.QueuedQueries[1]
	assert.Equal(t, insertSaleSQL, sale.SQL)
	assert.Equal(t, record.ID, sale.Arguments[0])
	assert.Equal(t, "S1", sale.Arguments[1])
}

func TestPostgresPersistence_NoOccupiedSeats(t *testing.T) {
	// Arrange
	tx := &fakeTx{houseID: 1}
	record := sampleRecord("S1")
	record.OccupiedSeats = nil

	// Act
	err := NewPostgresPersistence(fakeDB{tx: tx}).WriteSeatplan(context.Background(), record)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, tx.batch)
	assert.True(t, tx.committed)
}

func TestPostgresPersistence_Failures(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		db   fakeDB
	}{
		{name: "begin fails", db: fakeDB{err: boom}},
		{name: "batch fails", db: fakeDB{tx: &fakeTx{execErr: boom}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPostgresPersistence(tt.db).WriteSeatplan(context.Background(), sampleRecord("S1"))

			assert.ErrorIs(t, err, boom)
			if tt.db.tx != nil {
				assert.False(t, tt.db.tx.committed)
				assert.True(t, tt.db.tx.rolled)
			}
		})
	}
}
