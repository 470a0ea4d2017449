package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/groupcast/groupcast-api/internal/api"
	"github.com/groupcast/groupcast-api/internal/infrastructure/config"
	mongodb "github.com/groupcast/groupcast-api/internal/infrastructure/db/mongo"
	redisdb "github.com/groupcast/groupcast-api/internal/infrastructure/db/redis"
	"github.com/groupcast/groupcast-api/internal/infrastructure/queue"
	"github.com/groupcast/groupcast-api/pkg/logger"
)

const (
	shutdownTimeout  = 10 * time.Second
	activityWorkers  = 4
	indexSetupBudget = 30 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic("config: " + err.Error())
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index setup failed")
	}

	dispatcher := queue.NewActivityDispatcher(activityWorkers, mongodb.NewActivityRepository(db, mongodb.NewSequence(db)), log)
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher.Start(dispatcherCtx)

	e, err := api.NewRouter(cfg, db, rdb, dispatcher)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// Let queued audit entries flush before the process exits.
	stopDispatcher()
	dispatcher.Wait()
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	seq := mongodb.NewSequence(db)

	idxCtx, cancel := context.WithTimeout(ctx, indexSetupBudget)
	defer cancel()

	steps := []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongodb.NewUserRepository(db, seq),
		mongodb.NewAdminRepository(db, seq),
		mongodb.NewGroupRepository(db, seq),
		mongodb.NewPostRepository(db, seq),
		mongodb.NewFeedRepository(db, seq),
		mongodb.NewPaymentRepository(db, seq),
		mongodb.NewActivityRepository(db, seq),
	}
	for _, s := range steps {
		if err := s.EnsureIndexes(idxCtx); err != nil {
			return err
		}
	}
	return nil
}
