package etl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BartekS5/barberia/pkg/logger"
	"github.com/BartekS5/barberia/pkg/models"
)

// Pipeline migrates the legacy tables one after the other.
type Pipeline struct {
	Extractor   Extractor
	Loader      Loader
	Validator   *Validator
	Transformer *Transformer
	// Archiver is optional; when set, non-migratable tables are copied to it.
	Archiver Archiver
	Tables   []models.TableMapping
}

func NewPipeline(ext Extractor, loader Loader, validator *Validator, transformer *Transformer) *Pipeline {
	return &Pipeline{
		Extractor:   ext,
		Loader:      loader,
		Validator:   validator,
		Transformer: transformer,
		Tables:      models.MigrationOrder(),
	}
}

// Run processes every table in order. Table and row failures are recorded
// in the summary and never stop the run.
func (p *Pipeline) Run(ctx context.Context) *Summary {
	summary := &Summary{RunID: uuid.NewString(), StartedAt: time.Now()}
	logger.Infof("Starting migration run %s (%d tables)", summary.RunID, len(p.Tables))

	for _, m := range p.Tables {
		var stats TableStats
		if m.Migratable {
			stats = p.migrateTable(ctx, m)
		} else {
			stats = p.reportOnly(ctx, summary.RunID, m)
		}
		summary.Tables = append(summary.Tables, stats)
	}

	summary.Duration = time.Since(summary.StartedAt)
	logger.Infof("Migration run %s finished in %s", summary.RunID, summary.Duration.Round(time.Millisecond))
	return summary
}

func (p *Pipeline) migrateTable(ctx context.Context, m models.TableMapping) TableStats {
	stats := TableStats{Mapping: m}
	logger.Infof("Migrating %s -> %s", m.SourceTable, m.TargetTable)

	rows, err := p.Extractor.Scan(ctx, m.SourceTable)
	if err != nil {
		stats.Err = err
		if errors.Is(err, ErrMissingTable) {
			logger.Warnf("Table %s not found in legacy database, skipping", m.SourceTable)
		} else {
			logger.Errorf("Could not read %s: %v", m.SourceTable, err)
		}
		return stats
	}
	stats.Found = len(rows)

	for _, row := range rows {
		o := p.migrateRow(ctx, m, row)
		switch {
		case o.Kind == Errored:
			logger.Errorf("%s row %v: %v", m.SourceTable, row["id"], o.Err)
		case o.Kind == Skipped:
			logger.Debugf("%s row %v skipped (%s): %v", m.SourceTable, row["id"], o.Reason, o.Err)
		}
		stats.Add(o)
	}

	logger.Infof("%s: %d found, %d migrated, %d duplicates, %d missing required field, %d errors",
		m.SourceTable, stats.Found, stats.Migrated, stats.SkippedDuplicate, stats.SkippedMissingField, stats.Errored)
	return stats
}

func (p *Pipeline) migrateRow(ctx context.Context, m models.TableMapping, row models.Row) Outcome {
	if err := p.Validator.Check(m, row); err != nil {
		return skippedRow(SkipMissingField, err)
	}

	rec, err := p.Transformer.Transform(m.Entity, row)
	if err != nil {
		return erroredRow(err)
	}

	if len(m.KeyColumns) > 0 {
		exists, err := p.Loader.ExistsByKey(ctx, m.TargetTable, m.KeyColumns, rec.Key(m.KeyColumns))
		if err != nil {
			return erroredRow(err)
		}
		if exists {
			return skippedRow(SkipDuplicate, ErrDuplicateKey)
		}
	}

	id, err := p.Loader.Insert(ctx, m.TargetTable, rec)
	if err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return skippedRow(SkipDuplicate, err)
		}
		return erroredRow(err)
	}
	return migratedRow(id)
}

// reportOnly counts a non-migratable table and, when an archiver is set,
// copies its rows there. Nothing is written to the target.
func (p *Pipeline) reportOnly(ctx context.Context, runID string, m models.TableMapping) TableStats {
	stats := TableStats{Mapping: m}

	if p.Archiver == nil {
		n, err := p.Extractor.Count(ctx, m.SourceTable)
		if err != nil {
			stats.Err = err
			logger.Warnf("Could not count %s: %v", m.SourceTable, err)
			return stats
		}
		stats.Found = n
		logger.Infof("%s: %d rows found, not migrated (incompatible legacy shape)", m.SourceTable, n)
		return stats
	}

	rows, err := p.Extractor.Scan(ctx, m.SourceTable)
	if err != nil {
		stats.Err = err
		logger.Warnf("Could not read %s: %v", m.SourceTable, err)
		return stats
	}
	stats.Found = len(rows)

	archived, err := p.Archiver.Archive(ctx, runID, m.SourceTable, rows)
	if err != nil {
		logger.Errorf("Archiving %s failed: %v", m.SourceTable, err)
	}
	stats.Archived = archived
	logger.Infof("%s: %d rows found, not migrated, %d archived", m.SourceTable, stats.Found, archived)
	return stats
}
