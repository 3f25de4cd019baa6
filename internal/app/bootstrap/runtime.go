// Package bootstrap wires config into the runtime components shared by
// the API server and the conversation worker.
package bootstrap

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/ahrie-ai/platform/internal/config"
	"github.com/ahrie-ai/platform/internal/conversation"
	"github.com/ahrie-ai/platform/internal/telegram"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildPgxPool connects the pgx pool, or returns nil when no database
// is configured.
func BuildPgxPool(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*pgxpool.Pool, error) {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	if logger != nil {
		logger.Info("postgres connected")
	}
	return pool, nil
}

// BuildSQLDB opens a database/sql handle over the pgx stdlib driver for
// the components that expect one.
func BuildSQLDB(cfg *appconfig.Config) (*sql.DB, error) {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open sql db: %w", err)
	}
	return db, nil
}

// BuildQueue selects the conversation job transport: in-memory for
// single-process deployments, SQS otherwise.
func BuildQueue(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (conversation.Queue, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	if cfg.UseMemoryQueue || strings.TrimSpace(cfg.ConversationQueueURL) == "" {
		logger.Info("using in-memory conversation queue")
		return conversation.NewMemoryQueue(64), nil
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
	}
	logger.Info("using SQS conversation queue", "queue_url", cfg.ConversationQueueURL)
	return conversation.NewSQSQueue(sqs.NewFromConfig(awsCfg), cfg.ConversationQueueURL), nil
}

// loadAWSConfig centralizes AWS SDK initialization so both binaries
// share the same LocalStack/production wiring.
func loadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, err
	}

	if endpoint := cfg.AWSEndpointOverride; endpoint != "" {
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
			func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
				if service == sqs.ServiceID {
					return aws.Endpoint{
						URL:           endpoint,
						PartitionID:   "aws",
						SigningRegion: cfg.AWSRegion,
					}, nil
				}
				return aws.Endpoint{}, &aws.EndpointNotFoundError{}
			},
		)
	}

	return awsCfg, nil
}

// BuildTelegramClient creates the Bot API client, or nil when no token
// is configured (useful in tests and local dry runs).
func BuildTelegramClient(cfg *appconfig.Config, logger *logging.Logger) (*telegram.Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.TelegramBotToken) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return telegram.New(telegram.Config{
		BaseURL:    cfg.TelegramAPIBaseURL,
		Token:      cfg.TelegramBotToken,
		MaxRetries: cfg.TelegramRetryMax,
		Backoff:    cfg.TelegramRetryBackoff,
		Logger:     logger.Logger,
	})
}
