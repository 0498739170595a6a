package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	SMTP      SMTPConfig
	Predictor PredictorConfig
	Engine    EngineConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	AllowOrigins []string
}

type MongoDBConfig struct {
	URI      string
	Database string
	PoolSize uint64
	Timeout  time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URI      string
	Exchange string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type PredictorConfig struct {
	URL     string
	Timeout time.Duration
}

type EngineConfig struct {
	// MasteryThreshold gates the monotonic mastered flag (score >= threshold).
	// StatusThreshold gates the displayed topic status (score > threshold).
	// The two values differ on purpose: the system this replaces used >= 8 for
	// mastery but > 7 for status, and the asymmetry is kept rather than unified.
	MasteryThreshold   float64
	StatusThreshold    float64
	ProfileUpdateRetry int
	DispatchTimes      []string
	SubmitRateLimit    int
	SubmitRateWindow   time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "6680"),
			Host:         getEnv("HOST", "0.0.0.0"),
			AllowOrigins: getEnvAsSlice("ALLOW_ORIGINS", []string{"http://localhost:3000"}),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DB", "mastery_service"),
			PoolSize: getEnvAsUint64("MONGO_POOL_SIZE", 100),
			Timeout:  getEnvAsDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "engine.events"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@recallo.app"),
		},
		Predictor: PredictorConfig{
			URL:     getEnv("PREDICTOR_URL", ""),
			Timeout: getEnvAsDuration("PREDICTOR_TIMEOUT", 3*time.Second),
		},
		Engine: EngineConfig{
			MasteryThreshold:   getEnvAsFloat("MASTERY_THRESHOLD", 8),
			StatusThreshold:    getEnvAsFloat("STATUS_THRESHOLD", 7),
			ProfileUpdateRetry: getEnvAsInt("PROFILE_UPDATE_RETRY", 3),
			DispatchTimes:      getEnvAsSlice("DISPATCH_TIMES", []string{"09:00", "18:00"}),
			SubmitRateLimit:    getEnvAsInt("SUBMIT_RATE_LIMIT", 30),
			SubmitRateWindow:   getEnvAsDuration("SUBMIT_RATE_WINDOW", time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("error retrieve int env var %s: %s", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		uintVal, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			log.Printf("error retrieve uint64 env var %s: %s", key, err)
			return defaultValue
		}
		return uintVal
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatVal, err := strconv.ParseFloat(value, 64)
		if err != nil {
			log.Printf("error retrieve float env var %s: %s", key, err)
			return defaultValue
		}
		return floatVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		duration, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("error retrieve duration env var %s: %s", key, err)
			return defaultValue
		}
		return duration
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
