package logging

import (
	"context"
	"slices"
	"time"

	"github.com/inakineitor/algo-comp-2023/core/matching"
)

// RunRecord captures one matching run and its outcome.
type RunRecord struct {
	RunID          string          `json:"run_id"`
	Timestamp      time.Time       `json:"timestamp"`
	Participants   int             `json:"participants"`
	Names          []string        `json:"names,omitempty"`
	Status         matching.Status `json:"status"`
	PartitionIndex int             `json:"partition_index"`
	Attempts       int             `json:"attempts"`
	Total          int             `json:"total"`
	Pairs          []matching.Pair `json:"pairs"`
	Unmatched      []int           `json:"unmatched"`
	Duration       time.Duration   `json:"duration"`
}

// NewRunRecord builds a record from an engine result. names may be nil.
func NewRunRecord(res matching.Result, participants int, names []string, ts time.Time) RunRecord {
	return RunRecord{
		RunID:          res.RunID,
		Timestamp:      ts,
		Participants:   participants,
		Names:          names,
		Status:         res.Status,
		PartitionIndex: res.PartitionIndex,
		Attempts:       res.Attempts,
		Total:          res.Total,
		Pairs:          res.Pairs,
		Unmatched:      res.Unmatched,
		Duration:       res.Duration,
	}
}

// Involves reports whether participant id was paired or left unmatched in the run.
func (r RunRecord) Involves(id int) bool {
	for _, p := range r.Pairs {
		if p.Proposer == id || p.Receiver == id {
			return true
		}
	}
	return slices.Contains(r.Unmatched, id)
}

// RunQuery defines filters for retrieving records. Zero fields match everything.
type RunQuery struct {
	Start  time.Time
	End    time.Time
	Status string
	// Participant restricts results to runs involving that id.
	Participant *int
}

// Matches reports whether r satisfies q.
func (q RunQuery) Matches(r RunRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Status != "" && r.Status.String() != q.Status {
		return false
	}
	if q.Participant != nil && !r.Involves(*q.Participant) {
		return false
	}
	return true
}

// RunStore persists RunRecords and supports querying.
type RunStore interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q RunQuery) ([]RunRecord, error)
	Close() error
}
