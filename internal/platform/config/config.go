// Package config reads service configuration from the environment. Unset or
// unparsable values fall back to defaults so main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	Gemini   Gemini
	Kafka    Kafka
	Breaker  Breaker
	Search   Search
	Chat     Chat
	Log      Log
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	AdminToken      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Database is the company registry connection. An empty URL selects the
// in-memory store.
type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Redis backs chat sessions. An empty URL selects the in-memory store.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Gemini configures the primary intent resolver. Without an API key the
// resolver is disabled and turns are answered by the heuristics.
type Gemini struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Kafka receives turn events. No brokers means events stay in process.
type Kafka struct {
	Brokers           []string
	TurnTopic         string
	Partitions        int
	ReplicationFactor int
}

type Breaker struct {
	FailureThreshold int
	OpenTimeout      time.Duration
}

type Search struct {
	MaxLimit     int
	QueryTimeout time.Duration
}

type Chat struct {
	SessionTTL time.Duration
	MaxTurns   int
}

type Log struct {
	Level  string
	Format string
}

func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            envString("AYALA_ADDR", ":8080"),
			AdminToken:      os.Getenv("ADMIN_TOKEN"),
			ReadTimeout:     envDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    envDuration("HTTP_WRITE_TIMEOUT", 45*time.Second),
			ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: Database{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Gemini: Gemini{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   envString("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: envDuration("GEMINI_TIMEOUT", 15*time.Second),
		},
		Kafka: Kafka{
			Brokers:           envList("KAFKA_BROKERS"),
			TurnTopic:         envString("KAFKA_TURN_TOPIC", "ayala.conversation.turns"),
			Partitions:        envInt("KAFKA_TURN_TOPIC_PARTITIONS", 3),
			ReplicationFactor: envInt("KAFKA_TURN_TOPIC_REPLICATION", 1),
		},
		Breaker: Breaker{
			FailureThreshold: envInt("CIRCUIT_FAILURE_THRESHOLD", 5),
			OpenTimeout:      envDuration("CIRCUIT_OPEN_TIMEOUT", 60*time.Second),
		},
		Search: Search{
			MaxLimit:     envInt("SEARCH_MAX_LIMIT", 200),
			QueryTimeout: envDuration("SEARCH_QUERY_TIMEOUT", 5*time.Second),
		},
		Chat: Chat{
			SessionTTL: envDuration("CHAT_SESSION_TTL", 30*24*time.Hour),
			MaxTurns:   envInt("CHAT_MAX_TURNS", 200),
		},
		Log: Log{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "json"),
		},
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// envInt accepts positive integers only.
func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// envDuration accepts Go durations ("15s") or a bare number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.ParseFloat(raw, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
