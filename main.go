package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/paologalligit/go-seatplan/config"
	"github.com/paologalligit/go-seatplan/constant"
	"github.com/paologalligit/go-seatplan/persistence"
	"github.com/paologalligit/go-seatplan/processseatplans"
	"github.com/paologalligit/go-seatplan/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags, defaulting to the environment
	input := flag.String("input", cfg.Seatplan.InputDir, "Directory of .svg and .html seatplans")
	output := flag.String("output", cfg.Seatplan.OutputFile, "Run report file")
	records := flag.String("records", cfg.Seatplan.RecordsFile, "JSON lines file for the file sink")
	workers := flag.Int("workers", cfg.Seatplan.Workers, "Number of concurrent workers")
	strict := flag.Bool("strict", cfg.Seatplan.Strict, "Reject a seatplan on its first malformed seat")
	infer := flag.Bool("infer", cfg.Seatplan.InferColumns, "Repair missing column numbers")
	descending := flag.Bool("descending", cfg.Seatplan.Descending, "Column numbers count down from left to right")
	sink := flag.String("sink", cfg.Seatplan.Sink, "Where records go: file or postgres")
	flag.Parse()

	cfg.Seatplan.InputDir = *input
	cfg.Seatplan.OutputFile = *output
	cfg.Seatplan.RecordsFile = *records
	cfg.Seatplan.Workers = *workers
	cfg.Seatplan.Strict = *strict
	cfg.Seatplan.InferColumns = *infer
	cfg.Seatplan.Descending = *descending
	cfg.Seatplan.Sink = *sink
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := utils.InitLogger(cfg.App.LogPath, cfg.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sink persistence.Persistence
	switch cfg.Seatplan.Sink {
	case config.SinkPostgres:
		pool, err := persistence.NewPostgresPool(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := persistence.InitPostgresSchema(ctx, pool, constant.SCHEMA_FILE); err != nil {
			return err
		}
		sink = persistence.NewPostgresPersistence(pool)
		logger.Info("writing records to postgres")
	default:
		sink = persistence.NewFilePersistence(cfg.Seatplan.RecordsFile)
		logger.Info("writing records to file", zap.String("file", cfg.Seatplan.RecordsFile))
	}

	logger.Info("starting run",
		zap.String("input", cfg.Seatplan.InputDir),
		zap.Int("workers", cfg.Seatplan.Workers),
		zap.Bool("strict", cfg.Seatplan.Strict),
		zap.Bool("infer", cfg.Seatplan.InferColumns),
	)
	report, err := processseatplans.RunProcessSeatplans(ctx, &processseatplans.ProcessSeatplansOptions{
		InputDir:          cfg.Seatplan.InputDir,
		OutputFile:        cfg.Seatplan.OutputFile,
		MaxGoroutines:     cfg.Seatplan.Workers,
		Strict:            cfg.Seatplan.Strict,
		InferColumns:      cfg.Seatplan.InferColumns,
		DescendingColumns: cfg.Seatplan.Descending,
		Sink:              sink,
		Logger:            logger,
	})
	if err != nil {
		return err
	}
	logger.Info("report written",
		zap.String("file", cfg.Seatplan.OutputFile),
		zap.Int("processed", report.Processed),
		zap.Int("failed", report.Failed),
	)
	return nil
}
