package processseatplans

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/paologalligit/go-seatplan/constant"
	"github.com/paologalligit/go-seatplan/entities"
	"github.com/paologalligit/go-seatplan/persistence"
	"github.com/paologalligit/go-seatplan/svgdoc"
	"github.com/paologalligit/go-seatplan/team"
	"github.com/paologalligit/go-seatplan/utils"
)

var ErrNoSeatplans = errors.New("no seatplan files found")

type ProcessSeatplansOptions struct {
	InputDir          string
	OutputFile        string
	MaxGoroutines     int
	Strict            bool
	InferColumns      bool
	DescendingColumns bool
	Sink              persistence.Persistence
	Logger            *zap.Logger
	ProgressInterval  time.Duration
}

// RunProcessSeatplans parses every seatplan under InputDir, hands the
// records to the sink and writes the run report to OutputFile. A file
// that fails to load, parse or persist is counted in the report and
// does not stop the run.
func RunProcessSeatplans(ctx context.Context, options *ProcessSeatplansOptions) (*entities.RunReport, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	started := time.Now()
	report := &entities.RunReport{RunID: uuid.New(), StartedAt: started.UTC()}
	logger = logger.With(zap.String("run", report.RunID.String()))

	jobs, failed, err := LoadJobs(options.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load seatplans: %w", err)
	}
	if len(jobs) == 0 && len(failed) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSeatplans, options.InputDir)
	}
	for _, outcome := range failed {
		logger.Warn("seatplan not loaded", zap.String("source", outcome.Source), zap.String("error", outcome.Error))
	}
	logger.Info("seatplans loaded", zap.Int("jobs", len(jobs)), zap.Int("unreadable", len(failed)))

	// Progress reporting
	var completed int64
	interval := options.ProgressInterval
	if interval <= 0 {
		interval = constant.PROGRESS_INTERVAL
	}
	stopProgress := make(chan struct{})
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		utils.ReportProgress(logger, &completed, int64(len(jobs)), interval, stopProgress)
	}()

	parseTeam := team.NewParseTeam(options.MaxGoroutines, &team.ParseTeamWorkingMaterial{
		Strict:            options.Strict,
		InferColumns:      options.InferColumns,
		DescendingColumns: options.DescendingColumns,
		Completed:         &completed,
		Logger:            logger,
	})
	parsed := parseTeam.Run(ctx, jobs)
	close(stopProgress)
	<-progressDone

	outcomes := append([]entities.SeatplanOutcome(nil), failed...)
	seen := make(map[string]bool, len(parsed))
	for _, p := range parsed {
		seen[p.Outcome.Source] = true
		outcome := p.Outcome
		if p.Record != nil && options.Sink != nil {
			if err := options.Sink.WriteSeatplan(ctx, *p.Record); err != nil {
				logger.Error("seatplan not persisted", zap.String("showtime", outcome.ShowtimeCode), zap.Error(err))
				outcome.Error = err.Error()
			}
		}
		outcomes = append(outcomes, outcome)
	}
	for _, job := range jobs {
		if seen[job.Source] {
			continue
		}
		outcomes = append(outcomes, entities.SeatplanOutcome{
			ShowtimeCode: job.ShowtimeCode,
			Source:       job.Source,
			House:        job.House,
			Error:        fmt.Sprintf("not processed: %v", context.Cause(ctx)),
		})
	}
	slices.SortFunc(outcomes, func(a, b entities.SeatplanOutcome) int {
		return strings.Compare(a.Source, b.Source)
	})

	for _, outcome := range outcomes {
		if outcome.Error != "" {
			report.Failed++
			continue
		}
		report.Processed++
	}
	report.Outcomes = outcomes
	report.Duration = time.Since(started).Round(time.Millisecond).String()

	if options.OutputFile != "" {
		if err := utils.WriteJSONFile(report, options.OutputFile); err != nil {
			return report, fmt.Errorf("failed to write run report: %w", err)
		}
	}
	logger.Info("run finished",
		zap.Int("processed", report.Processed),
		zap.Int("failed", report.Failed),
		zap.String("duration", report.Duration),
	)
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// LoadJobs reads every .svg and .html file of dir. The file name without
// extension is the showtime code. Html pages are saved booking pages: the
// seatplan and the house name are taken from them. A bare svg has no house
// name, so the showtime code stands in for it.
func LoadJobs(dir string) ([]entities.SeatplanJob, []entities.SeatplanOutcome, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	var jobs []entities.SeatplanJob
	var failed []entities.SeatplanOutcome
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != constant.SVG_EXTENSION && ext != constant.HTML_EXTENSION {
			continue
		}
		code := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		job, err := loadJob(filepath.Join(dir, entry.Name()), code, ext)
		if err != nil {
			failed = append(failed, entities.SeatplanOutcome{
				ShowtimeCode: code,
				Source:       entry.Name(),
				Error:        err.Error(),
			})
			continue
		}
		job.Source = entry.Name()
		jobs = append(jobs, job)
	}
	return jobs, failed, nil
}

func loadJob(path, code, ext string) (entities.SeatplanJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.SeatplanJob{}, err
	}
	if ext == constant.SVG_EXTENSION {
		return entities.SeatplanJob{ShowtimeCode: code, House: code, Markup: data}, nil
	}

	page, err := svgdoc.FromPage(data)
	if err != nil {
		return entities.SeatplanJob{}, err
	}
	house := page.House
	if house == "" {
		house = code
	}
	return entities.SeatplanJob{ShowtimeCode: code, House: house, Markup: page.SVG}, nil
}
