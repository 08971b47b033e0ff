package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config carries runtime settings and the shared Mongo client. Every
// controller takes a *Config so handlers can reach the database and the
// JWT secret without package-level state.
type Config struct {
	Env          string
	Port         string
	MongoURI     string
	DBName       string
	JWTSecret    string
	AccessTTLMin int
	BcryptCost   int

	MongoClient *mongo.Client
}

// Load reads configuration from environment variables. MONGO_URI and
// JWT_SECRET are required; everything else has a sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		Env:          getenv("APP_ENV", "dev"),
		Port:         getenv("PORT", "8080"),
		MongoURI:     os.Getenv("MONGO_URI"),
		DBName:       getenv("DB_NAME", "event_planner"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AccessTTLMin: getenvInt("ACCESS_TTL_MIN", 60),
		BcryptCost:   getenvInt("BCRYPT_COST", 12),
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// Connect dials Mongo and verifies the connection with a ping.
func (cfg *Config) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	cfg.MongoClient = client
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
