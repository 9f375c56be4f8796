package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/crickit/pkg/contracts/topics"
)

type Config struct {
	App struct {
		Env         string `env:"APP_ENV" envDefault:"development"`
		Port        string `env:"PORT"    envDefault:"8088"`
		FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	}
	DB struct {
		Host     string `env:"DB_HOST"     envDefault:"localhost"`
		Port     string `env:"DB_PORT"     envDefault:"5432"`
		User     string `env:"DB_USER"     envDefault:"postgres"`
		Password string `env:"DB_PASSWORD" envDefault:"password"`
		Name     string `env:"DB_NAME"     envDefault:"crickit_db"`
		SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
	}
	JWT struct {
		Secret        string `env:"JWT_SECRET" envDefault:"supersecret"`
		ExpiryMinutes int    `env:"JWT_EXPIRY_MINUTES" envDefault:"720"`
	}
	Scoring struct {
		ByesChargedToBowler bool `env:"SCORING_BYES_CHARGED_TO_BOWLER" envDefault:"true"`
	}
	Redis struct {
		Addr    string `env:"REDIS_ADDR" envDefault:""`
		Channel string `env:"REDIS_MATCH_CHANNEL" envDefault:"match_updates_broadcast"`
	}
	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS" envDefault:""`
		Topic   string   `env:"KAFKA_MATCH_COMPLETED_TOPIC" envDefault:"match_completed"`
	}
	Metrics struct {
		Port string `env:"METRICS_PORT" envDefault:"9090"`
	}
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

// Global appConfig instance, accessible after LoadConfig() is called via Initialize.
var appConfig *Config
var once sync.Once

// LoadConfig loads configuration from environment variables into the Config struct.
// It's designed to be called once.
func LoadConfig() (*Config, error) {
	// Load .env file. It's okay if it doesn't exist, especially in production
	// where env vars are set directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8088")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "crickit_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.JWT.Secret = getEnv("JWT_SECRET", "supersecret")
	var err error
	cfg.JWT.ExpiryMinutes, err = getEnvAsInt("JWT_EXPIRY_MINUTES", 720)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_MINUTES: %w", err)
	}

	cfg.Scoring.ByesChargedToBowler, err = getEnvAsBool("SCORING_BYES_CHARGED_TO_BOWLER", true)
	if err != nil {
		return nil, fmt.Errorf("invalid SCORING_BYES_CHARGED_TO_BOWLER: %w", err)
	}

	// Redis and Kafka are optional; when their addresses are unset the app
	// runs without live updates and without the completion event stream.
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Channel = getEnv("REDIS_MATCH_CHANNEL", "match_updates_broadcast")

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.Kafka.Brokers = append(cfg.Kafka.Brokers, b)
			}
		}
	}
	cfg.Kafka.Topic = getEnv("KAFKA_MATCH_COMPLETED_TOPIC", topics.MatchCompleted)

	cfg.Metrics.Port = getEnv("METRICS_PORT", "9090")

	if cfg.JWT.Secret == "supersecret" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default JWT secret in production. Please set JWT_SECRET environment variable.")
	}
	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}

	appConfig = cfg
	return cfg, nil
}

// ConnectDB establishes a connection to the database using the provided configuration.
// It sets the global DB variable.
func ConnectDB(dbCfg Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbCfg.DB.Host,
		dbCfg.DB.User,
		dbCfg.DB.Password,
		dbCfg.DB.Name,
		dbCfg.DB.Port,
		dbCfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{}
	if dbCfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	log.Println("Successfully connected to database!")
	return gormDB, nil
}

// Initialize loads all configurations and connects to the database.
// This should be called once at the start of the application (e.g., in main.go).
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}
		appConfig = loadedCfg

		_, err = ConnectDB(*appConfig)
		if err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
// It panics if the configuration has not been loaded yet.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected boolean, got '%s'", key, valueStr)
	}
	return value, nil
}
