package utils

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ReportProgress logs completed/total every interval until stop is closed,
// then logs a final line.
func ReportProgress(logger *zap.Logger, completed *int64, total int64, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logProgress(logger, atomic.LoadInt64(completed), total)
		case <-stop:
			logProgress(logger, atomic.LoadInt64(completed), total)
			return
		}
	}
}

func logProgress(logger *zap.Logger, current, total int64) {
	percent := 0.0
	if total > 0 {
		percent = float64(current) / float64(total) * 100
	}
	logger.Info("progress",
		zap.Int64("completed", current),
		zap.Int64("total", total),
		zap.String("percent", fmt.Sprintf("%.1f%%", percent)),
	)
}
