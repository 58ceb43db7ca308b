// Package seatplan reads a cinema seatplan svg into rows of seats,
// works out which seats are taken and how big the house is, and produces
// a version of the chart with the occupancy colours reset.
//
// Seats are identified by their coordinates. Column numbers come from
// the labels drawn on the chart, which are often missing, so they are
// kept as advisory data only.
package seatplan

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/paologalligit/go-seatplan/entities"
	"github.com/paologalligit/go-seatplan/svgdoc"
)

// Seatplan is one parsed chart. It is immutable: column inference returns
// a new Seatplan.
type Seatplan struct {
	doc    *svgdoc.Document
	platea entities.Platea
	report Report
}

type options struct {
	strict bool
	logger *zap.Logger
}

type Option func(*options)

// WithStrict makes the first malformed seat fail the whole parse instead
// of being recorded in the report.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Parse walks the rows of a seatplan in document order.
func Parse(markup []byte, opts ...Option) (*Seatplan, error) {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}

	doc, err := svgdoc.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	groups := doc.RowGroups()
	var (
		platea entities.Platea
		report Report
	)
	for i, group := range groups {
		row, issues, skip := walkRow(i, group)
		if skip != nil {
			o.logger.Debug("skipping group",
				zap.Int("index", i),
				zap.String("label", skip.Label),
				zap.Error(skip.Reason),
			)
			report.SkippedRows = append(report.SkippedRows, *skip)
			continue
		}
		for _, issue := range issues {
			if o.strict {
				return nil, issue
			}
			o.logger.Debug("dropping seat", zap.Error(issue))
		}
		report.SeatIssues = append(report.SeatIssues, issues...)
		platea = append(platea, row)
	}

	if len(platea) == 0 {
		return nil, fmt.Errorf("%w: %d groups inspected", ErrNoRows, len(groups))
	}

	return &Seatplan{doc: doc, platea: platea, report: report}, nil
}

// walkRow turns one top-level group into a row. A group without a label,
// or a labelled group without seat anchors, is not a row.
func walkRow(index int, group *svgdoc.Node) (entities.Row, []SeatIssue, *RowSkip) {
	label, ok := group.FirstLabel()
	if !ok {
		return entities.Row{}, nil, &RowSkip{Index: index, Reason: ErrRowLabelMissing}
	}
	anchors := group.SeatAnchors()
	if len(anchors) == 0 {
		return entities.Row{}, nil, &RowSkip{Index: index, Label: label.Text(), Reason: ErrRowHasNoSeats}
	}

	row := entities.Row{Label: label.Text(), Seats: make([]entities.Seat, 0, len(anchors))}
	var issues []SeatIssue
	for i, anchor := range anchors {
		seats, err := classifySeat(anchor)
		if err != nil {
			issues = append(issues, SeatIssue{Row: row.Label, Index: i, Err: err})
			continue
		}
		row.Seats = append(row.Seats, seats...)
	}
	return row, issues, nil
}

// Platea returns a copy of the seat grid.
func (s *Seatplan) Platea() entities.Platea {
	return s.platea.Clone()
}

func (s *Seatplan) Report() Report {
	return s.report.clone()
}
