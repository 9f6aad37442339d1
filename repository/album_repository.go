package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/josuebusta/portfolio/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AlbumsCollection = "albums"

type AlbumRepository interface {
	Create(ctx context.Context, al *domain.Album) error
	List(ctx context.Context) ([]*domain.Album, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Album, error)
	Replace(ctx context.Context, id primitive.ObjectID, al *domain.Album) (int64, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type albumRepository struct {
	client    *mongo.Client
	albumsCol *mongo.Collection
}

func NewAlbumRepository(db *mongo.Database) AlbumRepository {
	albums := db.Collection(AlbumsCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, _ = albums.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetUnique(false)},
		{Keys: bson.D{{Key: "ranking", Value: 1}}, Options: options.Index().SetUnique(false)},
	})

	return &albumRepository{
		client:    db.Client(),
		albumsCol: albums,
	}
}

func (r *albumRepository) Create(ctx context.Context, al *domain.Album) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if al.ID.IsZero() {
		al.ID = primitive.NewObjectID()
	}
	_, err := r.albumsCol.InsertOne(ctx, al)
	if err != nil {
		return fmt.Errorf("insert album: %w", err)
	}
	return nil
}

func (r *albumRepository) List(ctx context.Context) ([]*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cur, err := r.albumsCol.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find albums: %w", err)
	}
	defer cur.Close(ctx)
	out := []*domain.Album{}
	for cur.Next(ctx) {
		var a domain.Album
		if err := cur.Decode(&a); err != nil {
			return nil, fmt.Errorf("decode album: %w", err)
		}
		out = append(out, &a)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate albums: %w", err)
	}
	return out, nil
}

// FindByID returns mongo.ErrNoDocuments unwrapped so callers can compare it.
func (r *albumRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Album, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var album domain.Album
	err := r.albumsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&album)
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// Replace overwrites every field of the matching document. A zero matched
// count is not an error here.
func (r *albumRepository) Replace(ctx context.Context, id primitive.ObjectID, al *domain.Album) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	replacement := bson.M{
		"title":       al.Title,
		"releaseDate": al.ReleaseDate,
		"artist":      al.Artist,
		"ranking":     al.Ranking,
	}
	result, err := r.albumsCol.ReplaceOne(ctx, bson.M{"_id": id}, replacement)
	if err != nil {
		return 0, fmt.Errorf("replace album %s: %w", id.Hex(), err)
	}
	return result.MatchedCount, nil
}

func (r *albumRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	result, err := r.albumsCol.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete album %s: %w", id.Hex(), err)
	}
	return result.DeletedCount, nil
}

func (r *albumRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	result, err := r.albumsCol.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("delete albums: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *albumRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return r.albumsCol.CountDocuments(ctx, bson.M{})
}

func (r *albumRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.client.Ping(ctx, nil)
}
