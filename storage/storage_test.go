package storage

import (
	"context"
	"os"
	"testing"

	"github.com/example/studenthustle/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	ctx := context.Background()

	h, err := Open(ctx, config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	defer h.Close(ctx)

	assert.NotNil(t, h.SQL)
	assert.Nil(t, h.Mongo)
	assert.Equal(t, "sqlite::memory:", h.Location())
	assert.NoError(t, h.Ping(ctx))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "postgres"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpen_Mongo(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	h, err := Open(ctx, config.StoreConfig{Driver: config.DriverMongo, MongoURI: uri, MongoDatabase: "studenthustle_test"})
	require.NoError(t, err)
	defer h.Close(ctx)

	assert.NotNil(t, h.Mongo)
	assert.NoError(t, h.Ping(ctx))
}
