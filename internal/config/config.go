package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/tair/pantry/pkg/database"
)

// Storage backends
const (
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config is the full service configuration
type Config struct {
	ServiceName string `validate:"required"`
	Environment string `validate:"required"`
	LogLevel    string `validate:"oneof=trace debug info warn error"`

	// TableName may be empty: the service still starts and answers every request with 500.
	TableName    string
	StoreBackend string `validate:"oneof=dynamodb postgres mysql redis memory"`

	AWSRegion        string
	DynamoDBEndpoint string `validate:"omitempty,url"`

	Database database.Config

	RedisAddr     string `validate:"required_if=StoreBackend redis"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	KafkaBrokers []string
	KafkaTopic   string `validate:"required"`

	JWTSecret string
	JWTIssuer string

	HTTPPort       string `validate:"required,numeric"`
	GRPCPort       string `validate:"omitempty,numeric"`
	RequestTimeout time.Duration `validate:"gt=0"`

	TracingEnabled bool
	JaegerEndpoint string
}

// IsDevelopment reports whether human-readable logs should be used
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads configuration from the environment, seeded by an optional .env file
func Load() (*Config, error) {
	// A missing .env file is the normal case in deployed environments.
	_ = godotenv.Load()

	backend := getEnv("STORE_BACKEND", BackendDynamoDB)
	dbDriver := database.DriverPostgres
	dbPort := "5432"
	if backend == BackendMySQL {
		dbDriver = database.DriverMySQL
		dbPort = "3306"
	}

	cfg := &Config{
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "pantry-service"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		TableName:    os.Getenv("INVENTORY_TABLE_NAME"),
		StoreBackend: backend,

		AWSRegion:        os.Getenv("AWS_REGION"),
		DynamoDBEndpoint: os.Getenv("DYNAMODB_ENDPOINT"),

		Database: database.Config{
			Driver:   dbDriver,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", dbPort),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "pantrydb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "pantry-item-events"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: os.Getenv("JWT_ISSUER"),

		HTTPPort: getEnv("HTTP_PORT", "8084"),
		GRPCPort: os.Getenv("GRPC_PORT"),

		JaegerEndpoint: os.Getenv("JAEGER_ENDPOINT"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.RequestTimeout, err = time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s")); err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}
	if cfg.TracingEnabled, err = strconv.ParseBool(getEnv("TRACING_ENABLED", "false")); err != nil {
		return nil, fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
