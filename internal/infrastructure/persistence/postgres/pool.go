package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hala-ashour/Restaurant98/internal/config"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

func NewPool(ctx context.Context, cfg config.PostgresConfig, log logger.Logger) (*pgxpool.Pool, error) {
	log.Info("connecting to postgres",
		logger.String("host", cfg.Host),
		logger.Int("port", cfg.Port),
		logger.String("db", cfg.DBName),
		logger.String("user", cfg.User),
	)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
