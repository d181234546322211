//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"ayala/internal/platform/config"
	"ayala/internal/platform/postgres"
)

// PostgresContainer wraps a testcontainers Postgres instance.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// companiesSchema mirrors the registry table the company store reads. The
// registry schema is owned elsewhere; tests create just enough of it.
const companiesSchema = `
CREATE TABLE IF NOT EXISTS companies (
	id UUID PRIMARY KEY,
	"BIN" VARCHAR(12),
	"Company" VARCHAR(255),
	"OKED" VARCHAR(50),
	"Activity" VARCHAR(255),
	"KATO" VARCHAR(50),
	"Locality" VARCHAR(100),
	"KRP" VARCHAR(50),
	"Size" VARCHAR(50),
	tax_payment_2021 DOUBLE PRECISION,
	tax_payment_2022 DOUBLE PRECISION,
	tax_payment_2023 DOUBLE PRECISION,
	tax_payment_2024 DOUBLE PRECISION,
	tax_payment_2025 DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS idx_companies_name_fts ON companies USING gin (to_tsvector('russian', "Company"));
CREATE INDEX IF NOT EXISTS idx_companies_activity_fts ON companies USING gin (to_tsvector('russian', "Activity"));
`

// NewPostgresContainer starts Postgres and creates the companies table.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ayala"),
		tcpostgres.WithUsername("ayala"),
		tcpostgres.WithPassword("ayala"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	db, err := postgres.Open(ctx, config.Database{URL: dsn, MaxOpenConns: 5, MaxIdleConns: 2, ConnMaxLifetime: time.Minute})
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open postgres: %v", err)
	}
	if _, err := db.ExecContext(ctx, companiesSchema); err != nil {
		_ = db.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to create schema: %v", err)
	}

	pc := &PostgresContainer{Container: container, DSN: dsn, DB: db}
	t.Cleanup(func() {
		_ = db.Close()
		_ = container.Terminate(context.Background())
	})
	return pc
}

// TruncateTables empties the given tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := p.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE %s", strings.Join(tables, ", ")))
	return err
}
