package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ayala/internal/companies/models"
	"ayala/pkg/platform/tx"
	"ayala/pkg/requestcontext"
)

const savepointName = "tiered_search"

var readOnly = &sql.TxOptions{ReadOnly: true}

// PostgresStore queries the companies table.
type PostgresStore struct {
	db   *sql.DB
	opts options
}

// NewPostgres constructs a PostgreSQL-backed company store.
func NewPostgres(db *sql.DB, opts ...Option) *PostgresStore {
	return &PostgresStore{db: db, opts: buildOptions(opts)}
}

// Search returns one page of companies matching f.
func (s *PostgresStore) Search(ctx context.Context, f models.SearchFilter) ([]models.Company, error) {
	f = normalizeFilter(f)
	var companies []models.Company
	err := s.withFallback(ctx, "search", func(ctx context.Context, t *sql.Tx, mode queryMode) error {
		q := buildSearch(f, mode, s.opts.tsConfig)
		rows, err := t.QueryContext(ctx, q.sql, q.args...)
		if err != nil {
			return fmt.Errorf("query companies: %w", err)
		}
		defer rows.Close()

		var out []models.Company
		for rows.Next() {
			c, err := scanCompany(rows)
			if err != nil {
				return fmt.Errorf("scan company: %w", err)
			}
			out = append(out, *c)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterate companies: %w", err)
		}
		companies = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []models.Company{}
	}
	return companies, nil
}

// Count returns the number of companies matching f, ignoring paging.
func (s *PostgresStore) Count(ctx context.Context, f models.SearchFilter) (int, error) {
	f = normalizeFilter(f)
	var total int
	err := s.withFallback(ctx, "count", func(ctx context.Context, t *sql.Tx, mode queryMode) error {
		q := buildCount(f, mode, s.opts.tsConfig)
		if err := t.QueryRowContext(ctx, q.sql, q.args...).Scan(&total); err != nil {
			return fmt.Errorf("count companies: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// Get returns the company with the given id.
func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company *models.Company
	err := s.run(ctx, "get", func(ctx context.Context, t *sql.Tx) error {
		c, err := scanCompany(t.QueryRowContext(ctx, "SELECT "+companyColumns+" FROM companies WHERE id = $1", id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get company: %w", err)
		}
		company = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return company, nil
}

// Localities lists every distinct non-empty locality with its company count,
// most populated first.
func (s *PostgresStore) Localities(ctx context.Context) ([]models.LocalityCount, error) {
	out := []models.LocalityCount{}
	err := s.run(ctx, "localities", func(ctx context.Context, t *sql.Tx) error {
		rows, err := t.QueryContext(ctx, localityCountsQuery)
		if err != nil {
			return fmt.Errorf("query localities: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var lc models.LocalityCount
			if err := rows.Scan(&lc.Location, &lc.CompanyCount); err != nil {
				return fmt.Errorf("scan locality: %w", err)
			}
			out = append(out, lc)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type runFunc func(ctx context.Context, t *sql.Tx, mode queryMode) error

// run executes fn in a read-only transaction bounded by the query timeout.
// ErrNotFound passes through; every other failure is logged and reported as
// ErrQueryFailed.
func (s *PostgresStore) run(ctx context.Context, op string, fn func(ctx context.Context, t *sql.Tx) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.opts.timeout)
	defer cancel()

	err := tx.Run(ctx, s.db, readOnly, func(ctx context.Context) error {
		t, ok := tx.From(ctx)
		if !ok {
			return fmt.Errorf("transaction missing from context")
		}
		return fn(ctx, t)
	})
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	s.opts.logger.ErrorContext(ctx, "company query failed",
		"request_id", requestcontext.RequestID(ctx),
		"op", op,
		"error", err,
	)
	s.opts.metrics.IncrementFailure()
	return ErrQueryFailed
}

// withFallback runs fn in tiered mode under a savepoint and, if that fails,
// in simplified mode after rolling the savepoint back.
func (s *PostgresStore) withFallback(ctx context.Context, op string, fn runFunc) error {
	return s.run(ctx, op, func(ctx context.Context, t *sql.Tx) error {
		if _, err := t.ExecContext(ctx, "SAVEPOINT "+savepointName); err != nil {
			return fmt.Errorf("create savepoint: %w", err)
		}

		start := time.Now()
		tieredErr := fn(ctx, t, modeTiered)
		s.opts.metrics.ObserveQuery(modeTiered.String(), time.Since(start))
		if tieredErr == nil {
			return nil
		}

		s.opts.logger.WarnContext(ctx, "tiered company query failed, retrying simplified",
			"request_id", requestcontext.RequestID(ctx),
			"op", op,
			"error", tieredErr,
		)
		s.opts.metrics.IncrementFallback()

		if _, err := t.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepointName); err != nil {
			return fmt.Errorf("rollback savepoint: %w", err)
		}

		start = time.Now()
		err := fn(ctx, t, modeSimplified)
		s.opts.metrics.ObserveQuery(modeSimplified.String(), time.Since(start))
		return err
	})
}

type companyRow interface {
	Scan(dest ...any) error
}

func scanCompany(row companyRow) (*models.Company, error) {
	var (
		c                                 models.Company
		id                                uuid.UUID
		name, bin, oked, activity, kato   sql.NullString
		loc, krp, size                    sql.NullString
		t2021, t2022, t2023, t2024, t2025 sql.NullFloat64
	)
	if err := row.Scan(&id, &bin, &name, &oked, &activity, &kato, &loc, &krp, &size,
		&t2021, &t2022, &t2023, &t2024, &t2025); err != nil {
		return nil, err
	}
	c.ID = id
	c.BIN = bin.String
	c.Name = name.String
	c.OKED = oked.String
	c.Activity = activity.String
	c.KATO = kato.String
	c.Locality = loc.String
	c.KRP = krp.String
	c.Size = size.String

	for year, v := range map[int]sql.NullFloat64{2021: t2021, 2022: t2022, 2023: t2023, 2024: t2024, 2025: t2025} {
		if !v.Valid {
			continue
		}
		if c.Taxes == nil {
			c.Taxes = make(map[int]float64, models.LastTaxYear-models.FirstTaxYear+1)
		}
		c.Taxes[year] = v.Float64
	}
	return &c, nil
}
