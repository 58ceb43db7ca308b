package persistence

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/paologalligit/go-seatplan/entities"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

const (
	upsertHouseSQL = `
		INSERT INTO houses (name, svg, capacity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET svg = EXCLUDED.svg, capacity = EXCLUDED.capacity, updated_at = EXCLUDED.updated_at
		RETURNING id`

	insertSeatSQL = `
		INSERT INTO seats (house_id, x, y, seat_number)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (house_id, x, y) DO NOTHING`

	insertSaleSQL = `
		INSERT INTO sales_history (record_id, showtime_code, seat_id, recorded_at)
		SELECT $1, $2, id, $6 FROM seats WHERE house_id = $3 AND x = $4 AND y = $5
		ON CONFLICT (showtime_code, seat_id) DO NOTHING`
)

// TxStarter is satisfied by *pgxpool.Pool and *pgx.Conn
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresPersistence implements Persistence on the houses, seats and
// sales_history tables
type PostgresPersistence struct {
	DB TxStarter
}

func NewPostgresPersistence(db TxStarter) *PostgresPersistence {
	return &PostgresPersistence{DB: db}
}

// WriteSeatplan stores the house, any seat not seen before at the same
// (house, x, y), and one sale per occupied seat, all in one transaction.
func (p *PostgresPersistence) WriteSeatplan(ctx context.Context, record entities.SeatplanRecord) error {
	tx, err := p.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var houseID int64
	err = tx.QueryRow(ctx, upsertHouseSQL,
		record.House,
		record.SanitizedSVG,
		record.HouseCapacity,
		record.ProcessedAt,
	).Scan(&houseID)
	if err != nil {
		return fmt.Errorf("error upserting house %s: %w", record.House, err)
	}

	batch := &pgx.Batch{}
	for _, seat := range record.OccupiedSeats {
		batch.Queue(insertSeatSQL, houseID, seat.X, seat.Y, seat.SeatNumber)
		batch.Queue(insertSaleSQL, record.ID, record.ShowtimeCode, houseID, seat.X, seat.Y, record.ProcessedAt)
	}
	if batch.Len() > 0 {
		results := tx.SendBatch(ctx, batch)
		for range batch.Len() {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("error inserting sales for showtime %s: %w", record.ShowtimeCode, err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("error closing batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing seatplan %s: %w", record.ShowtimeCode, err)
	}
	return nil
}

// NewPostgresPool creates a new pgx connection pool. An empty dsn falls
// back to DATABASE_URL.
func NewPostgresPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	if dsn == "" {
		_ = godotenv.Load() // Load .env if present, ignore error
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return nil, ErrMissingDatabaseURL
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = maxConns
	}
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// InitPostgresSchema reads the schema file and executes its statements
func InitPostgresSchema(ctx context.Context, pool *pgxpool.Pool, schemaFile string) error {
	sqlBytes, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	for stmt := range SchemaStatements(string(sqlBytes)) {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %q: %w", stmt, err)
		}
	}
	return nil
}

// SchemaStatements splits a schema on semicolons, dropping blanks and
// comment lines.
func SchemaStatements(sql string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for stmt := range strings.SplitSeq(sql, ";") {
			var lines []string
			for line := range strings.SplitSeq(stmt, "\n") {
				if strings.HasPrefix(strings.TrimSpace(line), "--") {
					continue
				}
				lines = append(lines, line)
			}
			stmt = strings.TrimSpace(strings.Join(lines, "\n"))
			if stmt == "" {
				continue
			}
			if !yield(stmt) {
				return
			}
		}
	}
}
