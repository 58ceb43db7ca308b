package seatplan

import (
	"fmt"
)

// RowSkip records a top-level group that did not become a row.
type RowSkip struct {
	Index  int
	Label  string
	Reason error
}

func (s RowSkip) String() string {
	if s.Label == "" {
		return fmt.Sprintf("group %d: %v", s.Index, s.Reason)
	}
	return fmt.Sprintf("group %d (row %s): %v", s.Index, s.Label, s.Reason)
}

// SeatIssue records a seat anchor that could not be classified and was
// left out of its row.
type SeatIssue struct {
	Row   string
	Index int
	Err   error
}

func (i SeatIssue) Error() string {
	return fmt.Sprintf("row %s, seat %d: %v", i.Row, i.Index, i.Err)
}

func (i SeatIssue) Unwrap() error {
	return i.Err
}

// Report is the completeness manifest of one parse.
type Report struct {
	SkippedRows    []RowSkip
	SeatIssues     []SeatIssue
	UnrepairedRows []string
}

// Complete is true when every seat anchor made it into the grid and no
// column repair was left unfinished. Skipped decorative groups do not count.
func (r Report) Complete() bool {
	return len(r.SeatIssues) == 0 && len(r.UnrepairedRows) == 0
}

func (r Report) clone() Report {
	return Report{
		SkippedRows:    append([]RowSkip(nil), r.SkippedRows...),
		SeatIssues:     append([]SeatIssue(nil), r.SeatIssues...),
		UnrepairedRows: append([]string(nil), r.UnrepairedRows...),
	}
}
