package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/josuebusta/portfolio/config"
	"github.com/josuebusta/portfolio/logger"
	"github.com/josuebusta/portfolio/repository"
	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.LoadConfig()

	app := cli.NewApp()
	app.Name = "seed"
	app.Usage = "Load albums from a YAML file into the portfolio collection."
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Usage:    "YAML file with a top-level albums list",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "mongo-uri",
			Value:   cfg.MongoURI,
			Usage:   "MongoDB connection string",
			EnvVars: []string{"MONGODB_CONNECT_STRING"},
		},
		&cli.StringFlag{
			Name:    "database",
			Value:   cfg.MongoDatabase,
			Usage:   "database name",
			EnvVars: []string{"MONGO_DATABASE"},
		},
		&cli.BoolFlag{
			Name:  "drop",
			Usage: "delete every album before inserting",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "validate the file without writing",
		},
	}
	app.Action = func(c *cli.Context) error {
		logger.Init(logger.Config{
			ServiceName: "portfolio-seed",
			Environment: cfg.Environment,
			Output:      os.Stdout,
			HMACKey:     cfg.LogHMACKey,
		})

		f, err := os.Open(c.String("file"))
		if err != nil {
			return err
		}
		defer f.Close()

		albums, err := loadSeedFile(f)
		if err != nil {
			return err
		}
		if c.Bool("dry-run") {
			if err := validateSeed(albums); err != nil {
				return err
			}
			logger.Info(logger.EventSeed, "Seed file is valid", logger.Fields("albums", len(albums)))
			return nil
		}

		ctx, cancel := context.WithTimeout(c.Context, 2*time.Minute)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.String("mongo-uri")))
		if err != nil {
			return fmt.Errorf("connect to mongo: %w", err)
		}
		defer client.Disconnect(context.Background())

		repo := repository.NewAlbumRepository(client.Database(c.String("database")))
		res, err := seedAlbums(ctx, repo, albums, c.Bool("drop"))
		if err != nil {
			return err
		}

		total, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		logger.Info(logger.EventSeed, "Seed finished", logger.Fields(
			"dropped", res.Dropped,
			"inserted", res.Inserted,
			"total", total,
		))
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
