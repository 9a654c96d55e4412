package etl

import (
	"context"

	"github.com/BartekS5/barberia/pkg/models"
)

// Extractor reads whole tables from the legacy store.
type Extractor interface {
	Scan(ctx context.Context, table string) ([]models.Row, error)
	Count(ctx context.Context, table string) (int, error)
}

// Loader writes single rows into the target store.
type Loader interface {
	ExistsByKey(ctx context.Context, table string, keyColumns []string, keyValues []interface{}) (bool, error)
	Insert(ctx context.Context, table string, rec *models.Record) (int64, error)
}

// Archiver keeps a copy of legacy rows that cannot be migrated.
type Archiver interface {
	Archive(ctx context.Context, runID, table string, rows []models.Row) (int, error)
}
