package main

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/DhavalSuthar-24/crickit/config"
	"github.com/DhavalSuthar-24/crickit/internal/live"
	"github.com/DhavalSuthar-24/crickit/internal/match"
	"github.com/DhavalSuthar-24/crickit/internal/player"
	"github.com/DhavalSuthar-24/crickit/internal/scoring"
	"github.com/DhavalSuthar-24/crickit/internal/team"
	"github.com/DhavalSuthar-24/crickit/pkg/logger"
	"github.com/DhavalSuthar-24/crickit/pkg/metrics"
	"github.com/DhavalSuthar-24/crickit/routes"
)

// @title Crickit REST API
// @version 1.0
// @description Ball-by-ball cricket match scoring engine 🏏
// @host localhost:8088
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	zl, err := logger.New("crickit", cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	err = config.DB.AutoMigrate(
		&player.Player{},
		&team.Team{}, &team.TeamPlayer{},
		&match.Match{}, &match.MatchTeam{}, &match.BallEvent{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	// Redis and Kafka are optional; the scoring path works without them.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	}
	var kafkaWriter *kafka.Writer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaWriter = live.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaWriter.Close()
	}
	broadcaster := live.NewBroadcaster(redisClient, kafkaWriter, cfg.Redis.Channel, zl)

	metrics.StartMetricsServer(cfg.Metrics.Port, func(ctx context.Context) error {
		sqlDB, err := config.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})

	repo := match.NewGormMatchRepository(config.DB)
	scoringCfg := scoring.Config{ByesChargedToBowler: cfg.Scoring.ByesChargedToBowler}
	service := match.NewScoringService(repo, scoringCfg, broadcaster, zl)

	r := routes.SetupRoutes(service)

	zl.Info("starting server",
		zap.String("port", cfg.App.Port),
		zap.String("env", cfg.App.Env))
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
