package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Auth      AuthConfig
	Log       LogConfig
	Breaker   BreakerConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	Sweep     SweepConfig
	App       AppConfig
}

type ServerConfig struct {
	Port            string
	APIPrefix       string
	CORSOrigin      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
}

type LogConfig struct {
	Level   string
	File    string
	Service string
}

type BreakerConfig struct {
	MaxFailures uint32
	Timeout     time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int

	// TrustProxy keys clients on X-Forwarded-For / X-Real-IP instead of the
	// peer address. Enable only behind a proxy that sets those headers.
	TrustProxy bool
}

type StoreConfig struct {
	Backend string
}

type SweepConfig struct {
	Cron string
}

type AppConfig struct {
	Version string
}

// Load reads configuration from the environment. Values from the given .env
// files (or ./.env when none are given) fill in variables that are not set.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "5000"),
			APIPrefix:       getEnv("API_PREFIX", "/api/v1/projects"),
			CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGO_DB_NAME", "devconnect"),
			ConnectTimeout: getEnvAsDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Log: LogConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			File:    os.Getenv("LOG_FILE"),
			Service: getEnv("LOG_SERVICE_NAME", "devconnect-projects"),
		},
		Breaker: BreakerConfig{
			MaxFailures: uint32(getEnvAsInt("BREAKER_MAX_FAILURES", 5)),
			Timeout:     getEnvAsDuration("BREAKER_TIMEOUT", 10*time.Second),
		},
		RateLimit: RateLimitConfig{
			RPS:        getEnvAsFloat("RATE_LIMIT_RPS", 20),
			Burst:      getEnvAsInt("RATE_LIMIT_BURST", 40),
			TrustProxy: getEnvAsBool("TRUST_PROXY", false),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("STORE_BACKEND", StoreMongo)),
		},
		Sweep: SweepConfig{
			Cron: getEnv("SWEEP_CRON", "@every 1h"),
		},
		App: AppConfig{
			Version: getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if !strings.HasPrefix(c.Server.APIPrefix, "/") {
		return fmt.Errorf("API_PREFIX must start with '/'")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.Store.Backend {
	case StoreMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("MONGO_URI and MONGO_DB_NAME are required for the mongo store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Breaker.MaxFailures == 0 {
		return fmt.Errorf("BREAKER_MAX_FAILURES must be positive")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("invalid %s=%q, using default %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
		log.Printf("invalid %s=%q, using default %g", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
		log.Printf("invalid %s=%q, using default %t", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("invalid %s=%q, using default %s", key, value, defaultValue)
	}
	return defaultValue
}
