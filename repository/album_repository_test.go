package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/josuebusta/portfolio/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func setupIntegrationDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to test database: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("Skipping integration test: cannot ping test database: %v", err)
	}

	db := client.Database(fmt.Sprintf("portfolio_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestIntegration_AlbumLifecycle(t *testing.T) {
	db := setupIntegrationDB(t)
	repo := NewAlbumRepository(db)
	ctx := context.Background()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	release := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	al := &domain.Album{Title: "A", Artist: "B", ReleaseDate: release, Ranking: 1}
	require.NoError(t, repo.Create(ctx, al))
	require.False(t, al.ID.IsZero())

	other := &domain.Album{Title: "C", Artist: "D", ReleaseDate: release, Ranking: 2}
	require.NoError(t, repo.Create(ctx, other))
	assert.NotEqual(t, al.ID, other.ID)

	all, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	got, err := repo.FindByID(ctx, al.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	assert.Equal(t, "B", got.Artist)
	assert.Equal(t, 1, got.Ranking)
	assert.True(t, release.Equal(got.ReleaseDate))

	matched, err := repo.Replace(ctx, al.ID, &domain.Album{Title: "A2", Artist: "B2", ReleaseDate: release.AddDate(1, 0, 0), Ranking: 7})
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)

	got, err = repo.FindByID(ctx, al.ID)
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Title)
	assert.Equal(t, "B2", got.Artist)
	assert.Equal(t, 7, got.Ranking)

	matched, err = repo.Replace(ctx, primitive.NewObjectID(), &domain.Album{Title: "x", Artist: "y", Ranking: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 0, matched)

	deleted, err := repo.DeleteByID(ctx, al.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = repo.FindByID(ctx, al.ID)
	assert.True(t, errors.Is(err, mongo.ErrNoDocuments))

	deleted, err = repo.DeleteByID(ctx, al.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, deleted)

	deleted, err = repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	require.NoError(t, repo.Ping(ctx))
}
