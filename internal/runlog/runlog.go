// Package runlog keeps the append-only history of execution attempts.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/samber/lo"

	"github.com/finbooks/reportctl/internal/fileutil"
)

// Status is the terminal status of one execution attempt.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// Record is the immutable outcome entry for one run attempt.
type Record struct {
	RunID          string            `json:"runId"`
	ReportID       string            `json:"reportId"`
	Status         Status            `json:"status"`
	StartedAt      time.Time         `json:"startedAt"`
	Duration       time.Duration     `json:"duration"`
	OutputPath     string            `json:"outputPath,omitempty"`
	ErrorDetail    string            `json:"errorDetail,omitempty"`
	ParametersUsed map[string]string `json:"parametersUsed,omitempty"`
}

// Stats is the aggregate view over the full log, recomputed on demand.
type Stats struct {
	TotalExecutions int                        `json:"totalExecutions"`
	Successful      int                        `json:"successful"`
	Failed          int                        `json:"failed"`
	Cancelled       int                        `json:"cancelled"`
	SuccessRate     float64                    `json:"successRate"`
	AverageDuration time.Duration              `json:"averageDuration"`
	ByReport        map[string]ReportBreakdown `json:"byReport"`
}

// ReportBreakdown is the per-report slice of the statistics.
type ReportBreakdown struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Cancelled  int `json:"cancelled"`
}

// Log is the append-only ordered sequence of execution records. Appends
// and reads are guarded so concurrent callers are safe.
type Log struct {
	mu      sync.Mutex
	records []Record
}

// New creates an empty execution log.
func New() *Log {
	return &Log{}
}

// Append adds a record to the log. Records are never mutated or removed
// afterwards.
func (l *Log) Append(record Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
}

// History returns the records for the given report ID, or all records
// when the ID is empty. The returned slice is a copy.
func (l *Log) History(reportID string) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	if reportID == "" {
		return append([]Record(nil), l.records...)
	}
	return lo.Filter(l.records, func(r Record, _ int) bool {
		return r.ReportID == reportID
	})
}

// Stats computes aggregate statistics over the full log. The log lives
// for the process lifetime only, so recomputing per call is cheap.
func (l *Log) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := Stats{
		TotalExecutions: len(l.records),
		ByReport:        make(map[string]ReportBreakdown),
	}

	var totalDuration time.Duration
	for _, r := range l.records {
		breakdown := stats.ByReport[r.ReportID]
		switch r.Status {
		case StatusSuccess:
			stats.Successful++
			breakdown.Successful++
		case StatusFailed:
			stats.Failed++
			breakdown.Failed++
		case StatusCancelled:
			stats.Cancelled++
			breakdown.Cancelled++
		}
		stats.ByReport[r.ReportID] = breakdown
		totalDuration += r.Duration
	}

	if stats.TotalExecutions > 0 {
		stats.SuccessRate = float64(stats.Successful) / float64(stats.TotalExecutions)
		stats.AverageDuration = totalDuration / time.Duration(stats.TotalExecutions)
	}
	return stats
}

// Load reads a previously exported log from the given path. A missing
// file yields an empty log.
func Load(path string) (*Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read execution log: %w", err)
	}
	var doc export
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse execution log: %w", err)
	}
	return &Log{records: doc.ExecutionLog}, nil
}

// export is the document shape written by Export.
type export struct {
	ExecutionLog []Record `json:"executionLog"`
	Stats        Stats    `json:"stats"`
}

// Export writes the full log plus computed statistics as JSON to the
// given path. A file lock guards against two processes exporting to the
// same path at once.
func (l *Log) Export(path string) error {
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock export file: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	doc := export{
		ExecutionLog: l.History(""),
		Stats:        l.Stats(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal execution log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write execution log: %w", err)
	}
	return nil
}
