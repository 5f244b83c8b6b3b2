package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingWriter appends to one log file per ISO week and rolls over to a
// numbered file when the current one reaches maxFileSize. Files older than
// the retention window are removed by the cleanup loop.
type RotatingWriter struct {
	logDir      string
	retention   time.Duration
	maxFileSize int64

	mu          sync.Mutex
	file        *os.File
	week        string
	size        int64
	sequence    int
	stopCleanup chan struct{}
	cleanupOnce sync.Once
}

// NewRotatingWriter creates a rotating writer. retentionWeeks bounds how
// long old files are kept; maxFileSize of 0 disables size rollover.
func NewRotatingWriter(logDir string, retentionWeeks int, maxFileSize int64) *RotatingWriter {
	return &RotatingWriter{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		stopCleanup: make(chan struct{}),
	}
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (rw *RotatingWriter) fileName() string {
	if rw.sequence == 0 {
		return fmt.Sprintf("app-%s.log", rw.week)
	}
	return fmt.Sprintf("app-%s_%02d.log", rw.week, rw.sequence)
}

// Write implements io.Writer for slog handlers.
func (rw *RotatingWriter) Write(p []byte) (int, error) {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	week := weekKey(time.Now())
	switch {
	case rw.file == nil || week != rw.week:
		rw.week = week
		rw.sequence = 0
		if err := rw.open(); err != nil {
			return 0, err
		}
	case rw.maxFileSize > 0 && rw.size+int64(len(p)) > rw.maxFileSize:
		rw.sequence++
		if err := rw.open(); err != nil {
			return 0, err
		}
	}

	n, err := rw.file.Write(p)
	rw.size += int64(n)
	return n, err
}

// open closes the current file and opens the one named by week/sequence.
// Caller must hold mu.
func (rw *RotatingWriter) open() error {
	if rw.file != nil {
		if err := rw.file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}

	path := filepath.Join(rw.logDir, rw.fileName())
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	rw.file = file
	rw.size = 0
	if info, err := file.Stat(); err == nil {
		rw.size = info.Size()
	}
	return nil
}

// startCleanup removes expired files once a day until Close is called.
func (rw *RotatingWriter) startCleanup() {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-rw.stopCleanup:
				return
			case <-ticker.C:
				if err := rw.removeExpired(); err != nil {
					slog.Warn("Log cleanup failed", "error", err)
				}
			}
		}
	}()
}

func (rw *RotatingWriter) removeExpired() error {
	entries, err := os.ReadDir(rw.logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().Add(-rw.retention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "app-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(rw.logDir, entry.Name()))
		}
	}
	return nil
}

// Close stops the cleanup loop and closes the current file.
func (rw *RotatingWriter) Close() error {
	rw.cleanupOnce.Do(func() { close(rw.stopCleanup) })

	rw.mu.Lock()
	defer rw.mu.Unlock()
	if rw.file != nil {
		return rw.file.Close()
	}
	return nil
}
