package etl

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BartekS5/barberia/pkg/models"
)

// MongoArchiver stores raw legacy rows as documents in legacy_<table>.
type MongoArchiver struct {
	Client   *mongo.Client
	Database string
}

func NewMongoArchiver(client *mongo.Client, database string) *MongoArchiver {
	return &MongoArchiver{Client: client, Database: database}
}

func (m *MongoArchiver) Archive(ctx context.Context, runID, table string, rows []models.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	coll := m.Client.Database(m.Database).Collection("legacy_" + table)
	docs := make([]interface{}, 0, len(rows))
	now := time.Now()
	for _, r := range rows {
		docs = append(docs, ArchiveDocument(runID, table, now, r))
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := coll.InsertMany(ctx, docs)
	if err != nil {
		inserted := 0
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		return inserted, fmt.Errorf("mongo insert into legacy_%s: %w", table, err)
	}
	return len(res.InsertedIDs), nil
}

// ArchiveDocument wraps a legacy row with the run metadata.
func ArchiveDocument(runID, table string, at time.Time, row models.Row) bson.M {
	doc := bson.M{
		"_run_id":       runID,
		"_source_table": table,
		"_archived_at":  at,
	}
	for k, v := range row {
		if k == "_id" {
			k = "legacy__id"
		}
		doc[k] = v
	}
	return doc
}
