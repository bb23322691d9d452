//go:build integration

package testutil

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/partswarm/internal/repo/postgres"
)

// ApplyMigrationsGoose применяет встроенные миграции (пакет migrations) к контейнерной БД.
func ApplyMigrationsGoose(ctx context.Context, dsn string) error {
	if _, err := postgres.Migrate(ctx, dsn); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
