package pantry

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"

	"github.com/tair/pantry/internal/config"
	"github.com/tair/pantry/internal/pantry/domain"
	"github.com/tair/pantry/internal/pantry/repository"
	"github.com/tair/pantry/kafka"
	"github.com/tair/pantry/pkg/database"
	"github.com/tair/pantry/pkg/logger"
)

// Backend is an opened item store together with the connections it owns
type Backend interface {
	domain.ItemRepository
	Name() string
	Close() error
}

type backend struct {
	domain.ItemRepository
	name   string
	closer func() error
}

func (b *backend) Name() string { return b.name }

func (b *backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// OpenBackend connects the store selected by STORE_BACKEND
func OpenBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.StoreBackend {
	case config.BackendDynamoDB:
		return openDynamoDB(ctx, cfg)
	case config.BackendPostgres, config.BackendMySQL:
		return openSQL(cfg)
	case config.BackendRedis:
		return openRedis(ctx, cfg)
	case config.BackendMemory:
		return &backend{ItemRepository: repository.NewMemoryItemRepository(), name: config.BackendMemory}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func openDynamoDB(ctx context.Context, cfg *config.Config) (Backend, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	logger.Logger.Info().
		Str("table", cfg.TableName).
		Str("region", awsCfg.Region).
		Str("endpoint", cfg.DynamoDBEndpoint).
		Msg("DynamoDB store initialized")

	return &backend{
		ItemRepository: repository.NewDynamoItemRepository(client, cfg.TableName),
		name:           config.BackendDynamoDB,
	}, nil
}

func openSQL(cfg *config.Config) (Backend, error) {
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	repo := repository.NewGormItemRepository(db, cfg.TableName)
	if err := repo.AutoMigrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("table", cfg.TableName).
		Msg("Database initialized successfully")

	return &backend{ItemRepository: repo, name: cfg.Database.Driver, closer: sqlDB.Close}, nil
}

func openRedis(ctx context.Context, cfg *config.Config) (Backend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Logger.Info().
		Str("addr", cfg.RedisAddr).
		Str("prefix", cfg.TableName).
		Msg("Redis store initialized")

	return &backend{
		ItemRepository: repository.NewRedisItemRepository(client, cfg.TableName),
		name:           config.BackendRedis,
		closer:         client.Close,
	}, nil
}

// Publisher is an event publisher together with its shutdown
type Publisher interface {
	domain.EventPublisher
	Close() error
}

type noopPublisher struct {
	domain.NoopPublisher
}

func (noopPublisher) Close() error { return nil }

// OpenPublisher connects the Kafka publisher, or discards events when no broker is configured
func OpenPublisher(cfg *config.Config) (Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("Kafka brokers not configured, item events disabled")
		return noopPublisher{}, nil
	}
	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}
