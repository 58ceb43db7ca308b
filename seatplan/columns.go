package seatplan

import (
	"github.com/paologalligit/go-seatplan/entities"
)

// Column inference repairs missing column numbers. It proved unreliable on
// real charts, so Parse never runs it; callers opt in.

type inferOptions struct {
	descending bool
}

type InferOption func(*inferOptions)

// WithDescendingColumns is for charts whose labels count down from left
// to right.
func WithDescendingColumns() InferOption {
	return func(o *inferOptions) {
		o.descending = true
	}
}

type InferenceReport struct {
	Repaired   []string
	Unrepaired []string
}

// FillIncremental assumes columns move by exactly one per seat. It anchors
// on the first known column and rebuilds the whole row from it; the fill is
// rejected when any known column disagrees (an aisle break, usually) or
// when the rebuilt row would run below column 1.
func FillIncremental(cols []*int, descending bool) ([]*int, bool) {
	anchor := -1
	for i, c := range cols {
		if c != nil {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return nil, false
	}

	step := 1
	if descending {
		step = -1
	}
	start := *cols[anchor] - step*anchor

	filled := make([]*int, len(cols))
	for i := range cols {
		v := start + step*i
		if v < 1 {
			return nil, false
		}
		if cols[i] != nil && *cols[i] != v {
			return nil, false
		}
		filled[i] = entities.IntPtr(v)
	}
	return filled, true
}

// InferColumns returns a copy of the platea with missing columns filled
// where a row can be repaired completely. Rows that cannot be repaired keep
// their missing columns. Rows are visited top to bottom, so a repaired row
// can serve as reference for the rows after it.
func InferColumns(platea entities.Platea, opts ...InferOption) (entities.Platea, InferenceReport) {
	o := &inferOptions{}
	for _, opt := range opts {
		opt(o)
	}

	out := platea.Clone()
	var report InferenceReport
	for i := range out {
		if !missingColumn(out[i]) {
			continue
		}
		if fillRow(out, i, o.descending) || fillByGeometry(out, i, o.descending) {
			report.Repaired = append(report.Repaired, out[i].Label)
			continue
		}
		report.Unrepaired = append(report.Unrepaired, out[i].Label)
	}
	return out, report
}

// WithInferredColumns runs InferColumns on the chart's grid. The returned
// Seatplan lists the rows left unrepaired in its report.
func (s *Seatplan) WithInferredColumns(opts ...InferOption) (*Seatplan, InferenceReport) {
	platea, inference := InferColumns(s.platea, opts...)
	report := s.report.clone()
	report.UnrepairedRows = append([]string(nil), inference.Unrepaired...)
	return &Seatplan{doc: s.doc, platea: platea, report: report}, inference
}

func fillRow(platea entities.Platea, index int, descending bool) bool {
	filled, ok := FillIncremental(platea[index].Columns(), descending)
	if !ok {
		return false
	}
	commitColumns(platea[index], filled)
	return true
}

// fillByGeometry borrows the column of a seat in the nearest row that sits
// at the same x with the same rotation, then retries the incremental fill.
// Borrowed columns are only kept if the row ends up fully repaired.
func fillByGeometry(platea entities.Platea, index int, descending bool) bool {
	row := platea[index]
	tentative := row.Columns()
	for i, target := range row.Seats {
		if tentative[i] != nil {
			continue
		}
		col, ok := nearestColumn(platea, index, target)
		if !ok {
			continue
		}
		tentative[i] = entities.IntPtr(col)
		if filled, ok := FillIncremental(tentative, descending); ok {
			commitColumns(row, filled)
			return true
		}
	}
	return false
}

// nearestColumn searches outwards from the row, the row above first at
// every distance.
func nearestColumn(platea entities.Platea, index int, target entities.Seat) (int, bool) {
	for d := 1; index-d >= 0 || index+d < len(platea); d++ {
		for _, j := range [2]int{index - d, index + d} {
			if j < 0 || j >= len(platea) {
				continue
			}
			for _, ref := range platea[j].Seats {
				if ref.Column != nil && sameColumnGeometry(ref, target) {
					return *ref.Column, true
				}
			}
		}
	}
	return 0, false
}

// sameColumnGeometry ignores the rotation centre's y, which follows the row.
func sameColumnGeometry(a, b entities.Seat) bool {
	return a.X == b.X && a.Rotation.Degree == b.Rotation.Degree && a.Rotation.X == b.Rotation.X
}

func missingColumn(row entities.Row) bool {
	for _, seat := range row.Seats {
		if seat.Column == nil {
			return true
		}
	}
	return false
}

func commitColumns(row entities.Row, cols []*int) {
	for i := range row.Seats {
		row.Seats[i].Column = cols[i]
	}
}
