// Command pokedex-seed loads a catalog dump into the database.
//
// The dump is a JSON array of items. Existing items with the same IDs
// are overwritten, and the query cache is flushed so stale ranked
// results are not served against the new catalog.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/config"
	dbRedis "github.com/kailas-cloud/pokedex/internal/db/redis"
	domitem "github.com/kailas-cloud/pokedex/internal/domain/item"
	logpkg "github.com/kailas-cloud/pokedex/internal/logger"
	itemrepo "github.com/kailas-cloud/pokedex/internal/repository/item"
	"github.com/kailas-cloud/pokedex/internal/repository/querycache"
)

type seedItem struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Types          []string       `json:"types"`
	Height         int            `json:"height"`
	Weight         int            `json:"weight"`
	BaseExperience int            `json:"base_experience"`
	Abilities      []string       `json:"abilities"`
	Stats          map[string]int `json:"stats"`
	SpriteURL      string         `json:"sprite_url"`
}

func main() {
	var (
		file    = flag.String("file", "data/pokedex.json", "path to the catalog dump")
		noFlush = flag.Bool("no-flush", false, "skip flushing the query cache after seeding")
	)
	flag.Parse()

	env := config.GetEnv()
	cfg := config.MustLoad(env)

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	items, err := loadDump(*file)
	if err != nil {
		logger.Fatal("Failed to load dump", zap.String("file", *file), zap.Error(err))
	}
	logger.Info("Loaded catalog dump", zap.String("file", *file), zap.Int("items", len(items)))

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	repo := itemrepo.New(store)
	if err := repo.UpsertMulti(ctx, items); err != nil {
		logger.Fatal("Failed to store items", zap.Error(err))
	}

	if !*noFlush {
		cache := querycache.New(
			store,
			time.Duration(cfg.Cache.SharedTTLSec)*time.Second,
			time.Duration(cfg.Cache.UserTTLSec)*time.Second,
			nil, nil, logger,
		)
		n, err := cache.Flush(ctx)
		if err != nil {
			logger.Warn("Failed to flush query cache", zap.Error(err))
		} else {
			logger.Info("Flushed query cache", zap.Int("entries", n))
		}
	}

	logger.Info("Seeding complete", zap.Int("items", len(items)))
}

// loadDump parses and validates the dump file.
func loadDump(path string) ([]domitem.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	var raw []seedItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse dump: %w", err)
	}

	items := make([]domitem.Item, 0, len(raw))
	for _, s := range raw {
		it, err := domitem.New(
			s.ID, s.Name, s.Types,
			s.Height, s.Weight, s.BaseExperience,
			s.Abilities, s.Stats, s.SpriteURL,
		)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", s.ID, err)
		}
		items = append(items, it)
	}
	return items, nil
}
