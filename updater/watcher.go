package updater

import (
	"context"
	"errors"
	"sync"
	"time"

	psuutils "github.com/NotrixInc/nx-psu-utils"
)

// WatchStatus is a snapshot of a Watcher.
type WatchStatus struct {
	Running             bool
	Scans               int64
	LastScanTime        time.Time
	LastReport          ScanReport
	LastError           error
	ConsecutiveFailures int
}

// Watcher rescans an ItemUpdater's inventory at a fixed interval, so PSUs
// that gain an owner or become present later still get a software object.
type Watcher struct {
	updater  *ItemUpdater
	interval time.Duration
	logger   psuutils.Logger

	mu     sync.RWMutex
	status WatchStatus
}

// NewWatcher creates a watcher; a non-positive interval means 30s.
func NewWatcher(u *ItemUpdater, interval time.Duration, logger psuutils.Logger) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = psuutils.NopLogger()
	}
	return &Watcher{updater: u, interval: interval, logger: logger}
}

// Run scans immediately and then once per interval until ctx is done, and
// returns ctx.Err(). Only one Run may be active at a time.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.status.Running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.status.Running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.status.Running = false
		w.mu.Unlock()
	}()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		w.scan(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Watcher) Status() WatchStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

func (w *Watcher) scan(ctx context.Context) {
	start := time.Now()
	report, err := w.updater.Scan(ctx)
	if ctx.Err() != nil {
		// Interrupted scans say nothing about PSU health.
		return
	}

	w.mu.Lock()
	w.status.Scans++
	w.status.LastScanTime = start
	w.status.LastReport = report
	w.status.LastError = err
	if err != nil {
		w.status.ConsecutiveFailures++
	} else {
		w.status.ConsecutiveFailures = 0
	}
	failures := w.status.ConsecutiveFailures
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("inventory scan had failures", "failed", report.Failed, "paths", report.Paths, "consecutive_failures", failures)
		return
	}
	w.logger.Debug("inventory scan complete",
		"paths", report.Paths,
		"published", report.Published,
		"not_present", report.NotPresent,
		"no_owner", report.NoOwner,
		"took", time.Since(start))
}
