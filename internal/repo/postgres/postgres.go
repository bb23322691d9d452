package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolConfig — параметры пула хранилища Swarm.
type PoolConfig struct {
	DSN      string
	MaxConns int32
	// AppName — application_name в pg_stat_activity (узел Swarm).
	AppName string
	// StatementTimeout — предел одного запроса; хранилище не должно задерживать поиск.
	StatementTimeout time.Duration
}

// NewPool — пул соединений с проверкой Ping (fail-fast при старте узла).
func NewPool(ctx context.Context, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(pc.DSN)
	if err != nil {
		return nil, err
	}
	if pc.MaxConns > 0 {
		cfg.MaxConns = pc.MaxConns
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	rp := cfg.ConnConfig.RuntimeParams
	if pc.AppName != "" {
		rp["application_name"] = pc.AppName
	}
	if pc.StatementTimeout > 0 {
		rp["statement_timeout"] = formatMillis(pc.StatementTimeout)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if connErr := pool.Ping(ctx); connErr != nil {
		pool.Close()
		return nil, connErr
	}
	return pool, nil
}

func formatMillis(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	return strconv.FormatInt(ms, 10)
}
