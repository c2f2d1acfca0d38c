package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/money_field_kit/internal/apperrors"
	"github.com/SscSPs/money_field_kit/internal/demo/ports"
	"github.com/SscSPs/money_field_kit/internal/middleware"
	"github.com/SscSPs/money_field_kit/pkg/exchange"
	"github.com/shopspring/decimal"
)

// RatesService exposes the exchange rate store and backend to the HTTP layer.
type RatesService struct {
	store     exchange.Store
	backend   exchange.Backend
	converter ports.RateConverter
	base      string
}

// NewRatesService creates a new RatesService. base is the currency the
// backend quotes against.
func NewRatesService(store exchange.Store, backend exchange.Backend, converter ports.RateConverter, base string) *RatesService {
	return &RatesService{
		store:     store,
		backend:   backend,
		converter: converter,
		base:      strings.ToUpper(base),
	}
}

// Ensure implementation matches interface
var _ ports.RatesSvcFacade = (*RatesService)(nil)

// GetRate returns the conversion rate between two currencies, crossing via
// the base currency when no direct or inverse rate is stored.
func (s *RatesService) GetRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if len(fromCode) != 3 || len(toCode) != 3 {
		return decimal.Decimal{}, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rate, err := s.converter.Rate(ctx, fromCode, toCode)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to get rate in service: %w", err)
	}
	return rate, nil
}

// ListRates returns every stored rate for the active backend.
func (s *RatesService) ListRates(ctx context.Context) ([]exchange.StoredRate, error) {
	rates, err := s.store.Rates(ctx, s.backend.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to list rates in service: %w", err)
	}
	if rates == nil {
		rates = []exchange.StoredRate{}
	}
	return rates, nil
}

// LastFetched reports when the active backend last delivered rates. Callers
// see exchange.ErrNeverFetched before the first refresh.
func (s *RatesService) LastFetched(ctx context.Context) (time.Time, error) {
	return s.store.LastFetched(ctx, s.backend.Name())
}

// RefreshRates fetches fresh rates from the backend and stores them.
func (s *RatesService) RefreshRates(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := exchange.Update(ctx, s.backend, s.store, s.base); err != nil {
		logger.Error("Failed to refresh exchange rates",
			slog.String("backend", s.backend.Name()),
			slog.String("base", s.base),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to refresh rates in service: %w", err)
	}

	logger.Info("Exchange rates refreshed", slog.String("backend", s.backend.Name()), slog.String("base", s.base))
	return nil
}
