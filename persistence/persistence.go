package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/paologalligit/go-seatplan/entities"
)

// Persistence defines where processed seatplans end up
// Implementations: FilePersistence, PostgresPersistence
type Persistence interface {
	WriteSeatplan(ctx context.Context, record entities.SeatplanRecord) error
}

// FilePersistence implements Persistence by appending JSON lines to a file
type FilePersistence struct {
	FilePath string
	mu       sync.Mutex
}

func NewFilePersistence(filePath string) *FilePersistence {
	return &FilePersistence{FilePath: filePath}
}

func (f *FilePersistence) WriteSeatplan(ctx context.Context, record entities.SeatplanRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if dir := filepath.Dir(f.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating records directory: %w", err)
		}
	}
	file, err := os.OpenFile(f.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error opening records file: %w", err)
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("error writing seatplan %s: %w", record.ShowtimeCode, err)
	}
	return nil
}
