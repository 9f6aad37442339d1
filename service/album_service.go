package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/josuebusta/portfolio/domain"
	"github.com/josuebusta/portfolio/logger"
	"github.com/josuebusta/portfolio/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrAlbumNotFound = errors.New("album not found")
	ErrMissingField  = errors.New("missing required field")
)

type AlbumService interface {
	CreateAlbum(ctx context.Context, title string, releaseDate time.Time, artist string, ranking *int) (*domain.Album, error)
	ListAlbums(ctx context.Context) ([]*domain.Album, error)
	GetAlbumByID(ctx context.Context, id string) (*domain.Album, error)
	ReplaceAlbum(ctx context.Context, id string, title string, releaseDate time.Time, artist string, ranking *int) (*domain.Album, error)
	DeleteAlbum(ctx context.Context, id string) (int64, error)
	Healthy(ctx context.Context) error
}

type Options struct {
	// StrictReplace makes ReplaceAlbum return ErrAlbumNotFound when no
	// document matched instead of echoing the submitted record.
	StrictReplace bool

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

type albumService struct {
	repo repository.AlbumRepository
	opts Options
}

func NewAlbumService(repo repository.AlbumRepository, opts Options) AlbumService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &albumService{repo: repo, opts: opts}
}

func (s *albumService) CreateAlbum(ctx context.Context, title string, releaseDate time.Time, artist string, ranking *int) (*domain.Album, error) {
	al, err := s.build(title, releaseDate, artist, ranking)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, al); err != nil {
		return nil, err
	}
	logger.Info(logger.EventAlbumCreated, fmt.Sprintf("Success! %s is now part of the database.", al), logger.Fields(
		"id", al.ID.Hex(),
		"title", al.Title,
	))
	return al, nil
}

func (s *albumService) ListAlbums(ctx context.Context) ([]*domain.Album, error) {
	return s.repo.List(ctx)
}

func (s *albumService) GetAlbumByID(ctx context.Context, id string) (*domain.Album, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAlbumNotFound
	}
	album, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAlbumNotFound
		}
		return nil, err
	}
	return album, nil
}

// ReplaceAlbum returns the record built from the submitted fields. Unless
// StrictReplace is set, that record is returned even when nothing matched id.
func (s *albumService) ReplaceAlbum(ctx context.Context, id string, title string, releaseDate time.Time, artist string, ranking *int) (*domain.Album, error) {
	al, err := s.build(title, releaseDate, artist, ranking)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(id)
	matched := int64(0)
	if err == nil {
		al.ID = oid
		matched, err = s.repo.Replace(ctx, oid, al)
		if err != nil {
			return nil, err
		}
	}

	if matched == 0 {
		if s.opts.StrictReplace {
			return nil, ErrAlbumNotFound
		}
		logger.Warn(logger.EventAlbumNotMatched, "Replace matched no album; echoing submitted fields", logger.Fields("id", id))
		return al, nil
	}

	logger.Info(logger.EventAlbumReplaced, fmt.Sprintf("Success! The information for %s was updated.", al), logger.Fields(
		"id", id,
		"title", al.Title,
	))
	return al, nil
}

func (s *albumService) DeleteAlbum(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	deleted, err := s.repo.DeleteByID(ctx, oid)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logger.Info(logger.EventAlbumDeleted, fmt.Sprintf("Based on its ID, %d album was deleted.", deleted), logger.Fields("id", id))
	}
	return deleted, nil
}

func (s *albumService) Healthy(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *albumService) build(title string, releaseDate time.Time, artist string, ranking *int) (*domain.Album, error) {
	switch {
	case strings.TrimSpace(title) == "":
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	case strings.TrimSpace(artist) == "":
		return nil, fmt.Errorf("%w: artist", ErrMissingField)
	case ranking == nil:
		return nil, fmt.Errorf("%w: ranking", ErrMissingField)
	}
	if releaseDate.IsZero() {
		releaseDate = s.opts.Now().UTC().Truncate(time.Millisecond)
	}
	return &domain.Album{
		Title:       title,
		ReleaseDate: releaseDate,
		Artist:      artist,
		Ranking:     *ranking,
	}, nil
}
