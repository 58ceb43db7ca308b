package entities

import (
	"time"

	"github.com/google/uuid"
)

// SeatplanJob is one seatplan waiting to be processed.
type SeatplanJob struct {
	ShowtimeCode string
	House        string
	Source       string
	Markup       []byte
}

// SeatplanRecord is what a processed seatplan leaves for persistence.
type SeatplanRecord struct {
	ID            uuid.UUID      `json:"id"`
	ShowtimeCode  string         `json:"showtimeCode"`
	House         string         `json:"house"`
	HouseCapacity int            `json:"houseCapacity"`
	OccupiedSeats []OccupiedSeat `json:"occupiedSeats"`
	SanitizedSVG  string         `json:"sanitizedSvg"`
	ProcessedAt   time.Time      `json:"processedAt"`
}

// SeatplanOutcome is the per-file line of a run report.
type SeatplanOutcome struct {
	RecordID      uuid.UUID `json:"recordId"`
	ShowtimeCode  string    `json:"showtimeCode"`
	Source        string    `json:"source"`
	House         string    `json:"house"`
	HouseCapacity int       `json:"houseCapacity"`
	Occupied      int       `json:"occupied"`
	SkippedRows   []string  `json:"skippedRows,omitempty"`
	SeatIssues    []string  `json:"seatIssues,omitempty"`
	Unrepaired    []string  `json:"unrepairedRows,omitempty"`
	Error         string    `json:"error,omitempty"`
}

type RunReport struct {
	RunID     uuid.UUID         `json:"runId"`
	StartedAt time.Time         `json:"startedAt"`
	Duration  string            `json:"duration"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	Outcomes  []SeatplanOutcome `json:"outcomes"`
}
