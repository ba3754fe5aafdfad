package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/adapters/event"
	"github.com/khoahotran/skillsync/adapters/persistence"
	progressUC "github.com/khoahotran/skillsync/internal/application/usecase/progress"
	"github.com/khoahotran/skillsync/internal/config"
	"github.com/khoahotran/skillsync/pkg/logger"
	"github.com/khoahotran/skillsync/pkg/tracing"
)

const purgeInterval = 15 * time.Minute

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewZapLogger("development").Fatal("Cannot load config", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env).With(zap.String("component", "worker"))
	appLogger.Info("Starting SkillSync worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("Worker needs Kafka brokers", errors.New("kafka.brokers is empty"))
	}
	if cfg.Redis.Addr == "" {
		appLogger.Fatal("Worker needs Redis for progress counters", errors.New("redis.addr is empty"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "skillsync-worker")
	if err != nil {
		appLogger.Fatal("Cannot initialize tracing", err)
	}
	defer tp.Shutdown(context.Background())

	// Redis
	redisClient, err := persistence.NewRedisClient(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()
	progressStore := persistence.NewRedisProgressStore(redisClient, cfg.Session.TTL)

	// Expired session cleanup only applies to the Postgres store; Redis
	// expires keys on its own.
	if cfg.Store.Driver == config.StoreDriverPostgres {
		stores, err := persistence.OpenStores(ctx, cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot open profile store", err)
		}
		defer stores.Close()
		go runPurgeLoop(ctx, stores.Postgres, appLogger)
	}

	// Worker Use Case
	trackProgressUC := progressUC.NewTrackProgressUseCase(progressStore, appLogger)

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicProfileEvents,
		GroupID:  event.ProgressGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicProfileEvents), zap.String("group_id", event.ProgressGroupID))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		evt, err := event.DecodeProfileEvent(msg.Value)
		if err != nil {
			appLogger.Error("Skipping undecodable event", err, zap.Int64("offset", msg.Offset))
			commitMessage(ctx, consumer, msg, appLogger)
			continue
		}

		if _, err := trackProgressUC.Execute(ctx, evt); err != nil {
			appLogger.Error("Failed to track profile event", err, zap.String("session_id", evt.SessionID))
			continue
		}

		commitMessage(ctx, consumer, msg, appLogger)
	}

	if counts, err := progressStore.EventCounts(context.Background()); err == nil {
		appLogger.Info("Worker stopped", zap.Any("event_counts", counts))
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}

func runPurgeLoop(ctx context.Context, store *persistence.PostgresStore, log logger.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Error("Failed to purge expired sessions", err)
				continue
			}
			if n > 0 {
				log.Info("Purged expired sessions", zap.Int64("count", n))
			}
		}
	}
}
