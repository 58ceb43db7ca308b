package persistence

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paologalligit/go-seatplan/entities"
)

func sampleRecord(showtime string) entities.SeatplanRecord {
	number := "A1"
	return entities.SeatplanRecord{
		ID:            uuid.New(),
		ShowtimeCode:  showtime,
		House:         "House 1",
		HouseCapacity: 120,
		OccupiedSeats: []entities.OccupiedSeat{
			{SeatNumber: &number, X: 20, Y: 22},
			{X: 35, Y: 22},
		},
		SanitizedSVG: "<svg/>",
		ProcessedAt:  time.Date(2025, 9, 15, 20, 30, 0, 0, time.UTC),
	}
}

func TestFilePersistence_WriteSeatplan(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "nested", "seatplans.jsonl")
	fp := NewFilePersistence(path)

	// Act
	var wg sync.WaitGroup
	for _, code := range []string{"S1", "S2", "S3"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, fp.WriteSeatplan(context.Background(), sampleRecord(code)))
		}()
	}
	wg.Wait()

	// Assert
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	seen := map[string]bool{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var record entities.SeatplanRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		assert.Equal(t, 120, record.HouseCapacity)
		assert.Len(t, record.OccupiedSeats, 2)
		seen[record.ShowtimeCode] = true
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, map[string]bool{"S1": true, "S2": true, "S3": true}, seen)
}

func TestFilePersistence_CancelledContext(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "seatplans.jsonl")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	err := NewFilePersistence(path).WriteSeatplan(ctx, sampleRecord("S1"))

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestSchemaStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{
			name: "splits on semicolons",
			sql:  "CREATE TABLE a (id INT);\nCREATE TABLE b (id INT);",
			want: []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"},
		},
		{
			name: "drops comment lines",
			sql:  "-- houses\nCREATE TABLE a (id INT);\n-- trailing\n",
			want: []string{"CREATE TABLE a (id INT)"},
		},
		{
			name: "blank input",
			sql:  "  \n ; ;",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for stmt := range SchemaStatements(tt.sql) {
				got = append(got, stmt)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchemaStatements_ShippedSchema(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "db", "schema.sql"))
	require.NoError(t, err)

	var got []string
	for stmt := range SchemaStatements(string(data)) {
		got = append(got, stmt)
	}

	require.Len(t, got, 4)
	assert.Contains(t, got[0], "CREATE TABLE IF NOT EXISTS houses")
	assert.Contains(t, got[1], "UNIQUE (house_id, x, y)")
}
