package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ginraidee/logging"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultEventsTopic = "food-events"
	DefaultEventsGroup = "agg-svc-consumer"

	devJWTSecret     = "ginraidee-dev-secret-change-me"
	devAdminPassword = "admin123"
)

type Settings struct {
	Port      string
	PublicURL string

	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string

	CatalogPath string

	KafkaTopic string
	KafkaGroup string

	CORSOrigins []string

	FoodSvcURL      string
	AnalyticsSvcURL string

	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and then the process environment. The port
// default differs per service so it is passed in.
func Load(defaultPort string) *Settings {
	_ = godotenv.Load()

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}

	return &Settings{
		Port:            getEnv("PORT", defaultPort),
		PublicURL:       strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:8080"), "/"),
		JWTSecret:       getEnv("JWT_SECRET", devJWTSecret),
		TokenTTL:        time.Duration(ttlHours) * time.Hour,
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", devAdminPassword),
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		KafkaTopic:      getEnv("KAFKA_TOPIC", DefaultEventsTopic),
		KafkaGroup:      getEnv("KAFKA_GROUP", DefaultEventsGroup),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "*")),
		FoodSvcURL:      getEnv("FOOD_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL: getEnv("ANALYTICS_SVC_URL", "http://localhost:8083"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}
}

func (s *Settings) Addr() string {
	return ":" + s.Port
}

// InsecureDefaults names the credential settings still at their development
// values.
func (s *Settings) InsecureDefaults() []string {
	var keys []string
	if s.JWTSecret == devJWTSecret {
		keys = append(keys, "JWT_SECRET")
	}
	if s.AdminPassword == devAdminPassword {
		keys = append(keys, "ADMIN_PASSWORD")
	}
	return keys
}

// WarnInsecureDefaults logs one warning per credential left at its
// development value. Call after logging.Init.
func (s *Settings) WarnInsecureDefaults() {
	for _, key := range s.InsecureDefaults() {
		logging.Warn().Str("setting", key).Msg("using the built-in development value, set it before deploying")
	}
}

// PostgresDSN prefers DATABASE_URL and falls back to the DB_* variables.
func PostgresDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "ginraidee"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func MustInitPostgres() *sql.DB {
	db, err := sql.Open("postgres", PostgresDSN())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}

	if err = db.Ping(); err != nil {
		logging.Fatal().Err(err).Msg("failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

// InitRedis returns nil when REDIS_HOST is unset; callers treat the cache as optional.
func InitRedis() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		logging.Warn().Msg("REDIS_HOST not set, running without redis")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + getEnv("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logging.Warn().Err(err).Msg("redis unreachable, running without redis")
		_ = client.Close()
		return nil
	}

	return client
}

func MustInitRedis() *redis.Client {
	client := InitRedis()
	if client == nil {
		logging.Fatal().Msg("redis is required")
	}
	return client
}

// NewKafkaReader returns nil when KAFKA_BROKER is unset.
func NewKafkaReader(topic, groupID string) *kafka.Reader {
	brokers := kafkaBrokers()
	if len(brokers) == 0 {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
}

// NewKafkaWriter returns nil when KAFKA_BROKER is unset.
func NewKafkaWriter(topic string) *kafka.Writer {
	brokers := kafkaBrokers()
	if len(brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
}

func kafkaBrokers() []string {
	return splitList(os.Getenv("KAFKA_BROKER"))
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
