package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"yuandi/internal/core/domain/model/exchange"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Sequence counter backends.
const (
	SequenceBackendPostgres = "postgres"
	SequenceBackendRedis    = "redis"
	SequenceBackendMemory   = "memory"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret   string
	JWTTokenTTL time.Duration

	SequenceBackend string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	KafkaBrokers     string
	KafkaOrdersTopic string

	ExchangeAPIURL       string
	ExchangeRateMaxAge   time.Duration
	ExchangeRateFallback decimal.Decimal

	CarrierTemplatesFile string

	SeedAdminEmail    string
	SeedAdminPassword string
	SeedAdminName     string

	LogLevel string
}

// LoadConfig reads .env when present and then the process environment.
// Process variables win over the file.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var errList []error
	cfg := Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  envOr("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		SequenceBackend: strings.ToLower(envOr("SEQUENCE_BACKEND", SequenceBackendPostgres)),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),

		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		KafkaOrdersTopic: os.Getenv("KAFKA_ORDERS_TOPIC"),

		ExchangeAPIURL: os.Getenv("EXCHANGE_API_URL"),

		CarrierTemplatesFile: os.Getenv("CARRIER_TEMPLATES_FILE"),

		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
		SeedAdminName:     envOr("SEED_ADMIN_NAME", "Administrator"),

		LogLevel: envOr("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.JWTTokenTTL, err = durationEnv("JWT_TOKEN_TTL", 12*time.Hour); err != nil {
		errList = append(errList, err)
	}
	if cfg.ExchangeRateMaxAge, err = durationEnv("EXCHANGE_RATE_MAX_AGE", exchange.DefaultMaxAge); err != nil {
		errList = append(errList, err)
	}
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		errList = append(errList, err)
	}
	if cfg.ExchangeRateFallback, err = decimalEnv("EXCHANGE_RATE_FALLBACK", decimal.NewFromInt(190)); err != nil {
		errList = append(errList, err)
	}

	if cfg.DBUser == "" {
		errList = append(errList, errors.New("DB_USER is required"))
	}
	if cfg.DBName == "" {
		errList = append(errList, errors.New("DB_NAME is required"))
	}
	if cfg.JWTSecret == "" {
		errList = append(errList, errors.New("JWT_SECRET is required"))
	}
	switch cfg.SequenceBackend {
	case SequenceBackendPostgres, SequenceBackendMemory:
	case SequenceBackendRedis:
		if cfg.RedisAddr == "" {
			errList = append(errList, errors.New("REDIS_ADDR is required for the redis sequence backend"))
		}
	default:
		errList = append(errList, fmt.Errorf("SEQUENCE_BACKEND %q is not one of postgres, redis, memory", cfg.SequenceBackend))
	}
	if (cfg.SeedAdminEmail == "") != (cfg.SeedAdminPassword == "") {
		errList = append(errList, errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set together"))
	}

	if err = errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// carrierFile is the YAML layout of CARRIER_TEMPLATES_FILE:
//
//	carriers:
//	  CJ대한통운: https://www.cjlogistics.com/ko/tool/parcel/tracking?gnbInvcNo=
//	  EMS: https://service.epost.go.kr/trace.RetrieveEmsRigiTraceList.comm/{number}
type carrierFile struct {
	Carriers map[string]string `yaml:"carriers"`
}

// LoadCarrierTemplates reads a carrier table from a YAML file.
func LoadCarrierTemplates(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read carrier templates: %w", err)
	}

	var file carrierFile
	if err = yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse carrier templates %s: %w", path, err)
	}
	if len(file.Carriers) == 0 {
		return nil, fmt.Errorf("carrier templates %s: no carriers defined", path)
	}
	return file.Carriers, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func decimalEnv(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s must be a decimal: %w", key, err)
	}
	return d, nil
}
