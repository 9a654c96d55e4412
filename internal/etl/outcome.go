package etl

import (
	"time"

	"github.com/BartekS5/barberia/pkg/models"
)

type OutcomeKind int

const (
	Migrated OutcomeKind = iota
	Skipped
	Errored
)

type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipDuplicate
	SkipMissingField
)

func (r SkipReason) String() string {
	switch r {
	case SkipDuplicate:
		return "duplicate"
	case SkipMissingField:
		return "missing-field"
	default:
		return "none"
	}
}

// Outcome is the result of migrating one legacy row.
type Outcome struct {
	Kind   OutcomeKind
	Reason SkipReason
	Err    error
	RowID  int64
}

func migratedRow(id int64) Outcome { return Outcome{Kind: Migrated, RowID: id} }

func skippedRow(reason SkipReason, err error) Outcome {
	return Outcome{Kind: Skipped, Reason: reason, Err: err}
}

func erroredRow(err error) Outcome { return Outcome{Kind: Errored, Err: err} }

// maxRowErrors bounds the messages kept per table for the summary.
const maxRowErrors = 20

// TableStats accumulates the outcomes of one table.
type TableStats struct {
	Mapping             models.TableMapping
	Found               int
	Migrated            int
	SkippedDuplicate    int
	SkippedMissingField int
	Errored             int
	Archived            int
	// Err is set when the whole table failed (missing or unreadable).
	Err       error
	RowErrors []string
}

// NotMigrated reports a table that is read for the report only.
func (s *TableStats) NotMigrated() bool {
	return !s.Mapping.Migratable
}

func (s *TableStats) Add(o Outcome) {
	switch o.Kind {
	case Migrated:
		s.Migrated++
	case Skipped:
		if o.Reason == SkipDuplicate {
			s.SkippedDuplicate++
		} else {
			s.SkippedMissingField++
		}
	case Errored:
		s.Errored++
		if len(s.RowErrors) < maxRowErrors && o.Err != nil {
			s.RowErrors = append(s.RowErrors, o.Err.Error())
		}
	}
}

// Summary is the report of one migration run.
type Summary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Tables    []TableStats
}

// Table returns the stats of the legacy table named source.
func (s *Summary) Table(source string) (TableStats, bool) {
	for _, t := range s.Tables {
		if t.Mapping.SourceTable == source {
			return t, true
		}
	}
	return TableStats{}, false
}

// Totals sums the counters of all tables.
func (s *Summary) Totals() TableStats {
	var total TableStats
	for _, t := range s.Tables {
		total.Found += t.Found
		total.Migrated += t.Migrated
		total.SkippedDuplicate += t.SkippedDuplicate
		total.SkippedMissingField += t.SkippedMissingField
		total.Errored += t.Errored
		total.Archived += t.Archived
	}
	return total
}
