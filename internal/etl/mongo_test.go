package etl

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/BartekS5/barberia/pkg/database"
	"github.com/BartekS5/barberia/pkg/models"
)

func TestArchiveDocument(t *testing.T) {
	at := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	doc := ArchiveDocument("run-1", "ventas", at, models.Row{"id": int64(7), "total": 12.5, "_id": "x"})

	assert.Equal(t, "run-1", doc["_run_id"])
	assert.Equal(t, "ventas", doc["_source_table"])
	assert.Equal(t, at, doc["_archived_at"])
	assert.Equal(t, int64(7), doc["id"])
	assert.Equal(t, "x", doc["legacy__id"])
	_, clash := doc["_id"]
	assert.False(t, clash)
}

// Needs a reachable MongoDB, e.g. MONGO_CONNECTION_STRING=mongodb://localhost:27017.
func TestMongoArchiverIntegration(t *testing.T) {
	uri := os.Getenv("MONGO_CONNECTION_STRING")
	if uri == "" {
		t.Skip("MONGO_CONNECTION_STRING not set")
	}

	client, err := database.ConnectMongo(uri)
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	dbName := "barberia_archive_test"
	defer client.Database(dbName).Drop(context.Background())

	arch := NewMongoArchiver(client, dbName)
	n, err := arch.Archive(context.Background(), "run-it", "ventas", []models.Row{
		{"id": int64(1), "total": 10.0},
		{"id": int64(2), "total": 20.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := client.Database(dbName).Collection("legacy_ventas").
		CountDocuments(context.Background(), bson.M{"_run_id": "run-it"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	n, err = arch.Archive(context.Background(), "run-it", "ventas", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
