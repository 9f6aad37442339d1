package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/josuebusta/portfolio/dto"
	"github.com/josuebusta/portfolio/logger"
	"github.com/josuebusta/portfolio/repository"
	"github.com/josuebusta/portfolio/service"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Albums []seedAlbum `yaml:"albums"`
}

type seedAlbum struct {
	Title       string `yaml:"title"`
	Artist      string `yaml:"artist"`
	ReleaseDate string `yaml:"releaseDate"`
	Ranking     *int   `yaml:"ranking"`
}

func (a seedAlbum) request() dto.AlbumRequest {
	req := dto.AlbumRequest{Title: a.Title, Artist: a.Artist, ReleaseDate: a.ReleaseDate}
	if a.Ranking != nil {
		r := dto.Ranking(*a.Ranking)
		req.Ranking = &r
	}
	return req
}

func loadSeedFile(r io.Reader) ([]seedAlbum, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return f.Albums, nil
}

type seedResult struct {
	Dropped  int64
	Inserted int
}

// validateSeed checks every entry the way the service would, without a store.
func validateSeed(albums []seedAlbum) error {
	for i, a := range albums {
		req := a.request()
		if _, err := req.ParsedReleaseDate(); err != nil {
			return fmt.Errorf("album %d: %w", i+1, err)
		}
		if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Artist) == "" || a.Ranking == nil {
			return fmt.Errorf("album %d: %w", i+1, service.ErrMissingField)
		}
	}
	return nil
}

// seedAlbums validates every entry before touching the collection, so a bad
// file leaves the store unchanged.
func seedAlbums(ctx context.Context, repo repository.AlbumRepository, albums []seedAlbum, drop bool) (seedResult, error) {
	var res seedResult
	if err := validateSeed(albums); err != nil {
		return res, err
	}

	if drop {
		n, err := repo.DeleteAll(ctx)
		if err != nil {
			return res, err
		}
		res.Dropped = n
		logger.Info(logger.EventSeed, "Dropped existing albums", logger.Fields("count", n))
	}

	svc := service.NewAlbumService(repo, service.Options{})
	for i, a := range albums {
		req := a.request()
		releaseDate, err := req.ParsedReleaseDate()
		if err != nil {
			return res, fmt.Errorf("album %d: %w", i+1, err)
		}
		if _, err := svc.CreateAlbum(ctx, req.Title, releaseDate, req.Artist, req.RankingValue()); err != nil {
			return res, fmt.Errorf("album %d: %w", i+1, err)
		}
		res.Inserted++
	}
	return res, nil
}
