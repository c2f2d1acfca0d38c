package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxStore persists rates in PostgreSQL. Schema:
//
//	CREATE TABLE exchange_rates (
//	    backend         VARCHAR(64)    NOT NULL,
//	    base_currency   VARCHAR(3)     NOT NULL,
//	    target_currency VARCHAR(3)     NOT NULL,
//	    rate            NUMERIC(24, 12) NOT NULL,
//	    fetched_at      TIMESTAMPTZ    NOT NULL,
//	    PRIMARY KEY (backend, base_currency, target_currency)
//	);
type PgxStore struct {
	pool *pgxpool.Pool
}

func NewPgxStore(pool *pgxpool.Pool) *PgxStore {
	return &PgxStore{pool: pool}
}

func (s *PgxStore) SaveRates(ctx context.Context, backend, base string, rates map[string]decimal.Decimal, asOf time.Time) error {
	base = strings.ToUpper(base)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const upsert = `
		INSERT INTO exchange_rates (backend, base_currency, target_currency, rate, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (backend, base_currency, target_currency)
		DO UPDATE SET rate = EXCLUDED.rate, fetched_at = EXCLUDED.fetched_at`

	for code, rate := range rates {
		if _, err := tx.Exec(ctx, upsert, backend, base, strings.ToUpper(code), rate, asOf); err != nil {
			return fmt.Errorf("failed to save rate %s/%s: %w", base, code, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rates: %w", err)
	}
	return nil
}

func (s *PgxStore) Rate(ctx context.Context, backend, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	direct, err := s.findRate(ctx, backend, from, to)
	if err == nil {
		return direct, nil
	}
	if !errors.Is(err, ErrRateNotFound) {
		return decimal.Decimal{}, err
	}

	inverse, err := s.findRate(ctx, backend, to, from)
	if err == nil {
		if inverse.IsZero() {
			return decimal.Decimal{}, fmt.Errorf("%w: %s to %s", ErrRateNotFound, from, to)
		}
		return decimal.NewFromInt(1).Div(inverse), nil
	}
	if !errors.Is(err, ErrRateNotFound) {
		return decimal.Decimal{}, err
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s to %s", ErrRateNotFound, from, to)
}

func (s *PgxStore) findRate(ctx context.Context, backend, from, to string) (decimal.Decimal, error) {
	const query = `
		SELECT rate FROM exchange_rates
		WHERE backend = $1 AND base_currency = $2 AND target_currency = $3
		ORDER BY fetched_at DESC
		LIMIT 1`

	var rate decimal.Decimal
	err := s.pool.QueryRow(ctx, query, backend, from, to).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Decimal{}, fmt.Errorf("%w: %s to %s", ErrRateNotFound, from, to)
		}
		return decimal.Decimal{}, fmt.Errorf("failed to find exchange rate: %w", err)
	}
	return rate, nil
}

func (s *PgxStore) Rates(ctx context.Context, backend string) ([]StoredRate, error) {
	const query = `
		SELECT backend, base_currency, target_currency, rate, fetched_at
		FROM exchange_rates
		WHERE backend = $1
		ORDER BY base_currency, target_currency`

	rows, err := s.pool.Query(ctx, query, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, pgx.RowToStructByName[StoredRate])
	if err != nil {
		return nil, fmt.Errorf("failed to collect exchange rates: %w", err)
	}
	return rates, nil
}

func (s *PgxStore) LastFetched(ctx context.Context, backend string) (time.Time, error) {
	const query = `SELECT max(fetched_at) FROM exchange_rates WHERE backend = $1`

	var at *time.Time
	if err := s.pool.QueryRow(ctx, query, backend).Scan(&at); err != nil {
		return time.Time{}, fmt.Errorf("failed to read last fetch time: %w", err)
	}
	if at == nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNeverFetched, backend)
	}
	return *at, nil
}

var _ Store = (*PgxStore)(nil)
