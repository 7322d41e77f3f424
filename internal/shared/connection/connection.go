package connection

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

func retryPolicy(maxRetries int) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 5 * time.Second
	return backoff.WithMaxRetries(b, uint64(maxRetries))
}

func notify(logger *zap.Logger, what string) backoff.Notify {
	return func(err error, wait time.Duration) {
		logger.Warn(what+" not ready, retrying", zap.Error(err), zap.Duration("wait", wait))
	}
}

func ConnectGORMWithRetry(cfg DBConfig, maxRetries int, logger *zap.Logger) (*gorm.DB, error) {
	var db *gorm.DB

	op := func() error {
		conn, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return err
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return err
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)

		db = conn
		return nil
	}

	if err := backoff.RetryNotify(op, retryPolicy(maxRetries), notify(logger, "database")); err != nil {
		return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, err)
	}

	logger.Info("connected to database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

func ConnectRedisWithRetry(addr string, maxRetries int, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	op := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	}

	if err := backoff.RetryNotify(op, retryPolicy(maxRetries), notify(logger, "redis")); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connection failed after %d retries: %w", maxRetries, err)
	}

	logger.Info("connected to redis", zap.String("addr", addr))
	return rdb, nil
}

// ConnectKafkaWithRetry dials the broker until it answers and returns a
// writer bound to it. Topic is chosen per message.
func ConnectKafkaWithRetry(broker string, maxRetries int, logger *zap.Logger) (*kafka.Writer, error) {
	op := func() error {
		conn, err := kafka.Dial("tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	}

	if err := backoff.RetryNotify(op, retryPolicy(maxRetries), notify(logger, "kafka")); err != nil {
		return nil, fmt.Errorf("kafka connection failed after %d retries: %w", maxRetries, err)
	}

	logger.Info("connected to kafka", zap.String("broker", broker))
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}, nil
}

// BrokerReachable is used by health checks.
func BrokerReachable(broker string, timeout time.Duration) bool {
	conn, err := net.DialTimeout("tcp", broker, timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
