package team

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paologalligit/go-seatplan/entities"
	"github.com/paologalligit/go-seatplan/seatplan"
)

type ParseTeamWorkingMaterial struct {
	Strict            bool
	InferColumns      bool
	DescendingColumns bool
	Completed         *int64
	Logger            *zap.Logger
	Now               func() time.Time // Injected clock for ProcessedAt
}

// ParsedSeatplan pairs the run report line of a job with its record.
// Record is nil when the seatplan could not be parsed.
type ParsedSeatplan struct {
	Record  *entities.SeatplanRecord
	Outcome entities.SeatplanOutcome
}

type ParseTeam struct {
	WorkerCount     int
	WorkingMaterial *ParseTeamWorkingMaterial
}

func NewParseTeam(workerCount int, wm *ParseTeamWorkingMaterial) *ParseTeam {
	if wm.Logger == nil {
		wm.Logger = zap.NewNop()
	}
	if wm.Now == nil {
		wm.Now = time.Now
	}
	return &ParseTeam{
		WorkerCount:     workerCount,
		WorkingMaterial: wm,
	}
}

// Run parses every job. A job that fails to parse still yields a
// ParsedSeatplan carrying the error; only cancellation drops jobs.
func (pt *ParseTeam) Run(ctx context.Context, jobs []entities.SeatplanJob) []ParsedSeatplan {
	parseTeam := Team[entities.SeatplanJob, ParsedSeatplan]{
		WorkerCount: pt.WorkerCount,
		Completed:   pt.WorkingMaterial.Completed,
		Worker: func(ctx context.Context, job entities.SeatplanJob) (ParsedSeatplan, error) {
			if err := ctx.Err(); err != nil {
				return ParsedSeatplan{}, err
			}
			return pt.parse(job), nil
		},
	}
	return parseTeam.Run(ctx, jobs)
}

func (pt *ParseTeam) parse(job entities.SeatplanJob) ParsedSeatplan {
	wm := pt.WorkingMaterial
	logger := wm.Logger.With(zap.String("showtime", job.ShowtimeCode), zap.String("source", job.Source))
	outcome := entities.SeatplanOutcome{
		ShowtimeCode: job.ShowtimeCode,
		Source:       job.Source,
		House:        job.House,
	}

	opts := []seatplan.Option{seatplan.WithLogger(logger)}
	if wm.Strict {
		opts = append(opts, seatplan.WithStrict())
	}
	sp, err := seatplan.Parse(job.Markup, opts...)
	if err != nil {
		logger.Warn("seatplan rejected", zap.Error(err))
		outcome.Error = err.Error()
		return ParsedSeatplan{Outcome: outcome}
	}

	if wm.InferColumns {
		var inferOpts []seatplan.InferOption
		if wm.DescendingColumns {
			inferOpts = append(inferOpts, seatplan.WithDescendingColumns())
		}
		var inference seatplan.InferenceReport
		sp, inference = sp.WithInferredColumns(inferOpts...)
		logger.Debug("columns inferred",
			zap.Strings("repaired", inference.Repaired),
			zap.Strings("unrepaired", inference.Unrepaired),
		)
	}

	svg, err := sp.SanitizedSVG()
	if err != nil {
		logger.Warn("seatplan could not be serialized", zap.Error(err))
		outcome.Error = err.Error()
		return ParsedSeatplan{Outcome: outcome}
	}

	record := &entities.SeatplanRecord{
		ID:            uuid.New(),
		ShowtimeCode:  job.ShowtimeCode,
		House:         job.House,
		HouseCapacity: sp.HouseCapacity(),
		OccupiedSeats: slices.Collect(sp.OccupiedSeats()),
		SanitizedSVG:  svg,
		ProcessedAt:   wm.Now().UTC(),
	}

	report := sp.Report()
	outcome.RecordID = record.ID
	outcome.HouseCapacity = record.HouseCapacity
	outcome.Occupied = len(record.OccupiedSeats)
	outcome.SkippedRows = stringsOf(report.SkippedRows, seatplan.RowSkip.String)
	outcome.SeatIssues = stringsOf(report.SeatIssues, seatplan.SeatIssue.Error)
	outcome.Unrepaired = report.UnrepairedRows

	logger.Debug("seatplan parsed",
		zap.Int("capacity", outcome.HouseCapacity),
		zap.Int("occupied", outcome.Occupied),
		zap.Bool("complete", report.Complete()),
	)
	return ParsedSeatplan{Record: record, Outcome: outcome}
}

func stringsOf[T any](items []T, format func(T) string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, format(item))
	}
	return out
}
