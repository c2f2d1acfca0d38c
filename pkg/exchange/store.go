package exchange

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrRateNotFound indicates no stored rate covers the currency pair.
	ErrRateNotFound = errors.New("exchange rate not found")
	// ErrNeverFetched indicates the backend has no stored rates at all.
	ErrNeverFetched = errors.New("no rates fetched for backend")
)

// StoredRate is one persisted backend rate.
type StoredRate struct {
	Backend   string          `db:"backend" json:"backend"`
	Base      string          `db:"base_currency" json:"base"`
	Target    string          `db:"target_currency" json:"target"`
	Rate      decimal.Decimal `db:"rate" json:"rate"`
	FetchedAt time.Time       `db:"fetched_at" json:"fetched_at"`
}

// Store persists fetched rates per backend. Implementations normalize
// currency codes to uppercase.
type Store interface {
	// SaveRates upserts one fetch result: every rate quoted against base.
	SaveRates(ctx context.Context, backend, base string, rates map[string]decimal.Decimal, asOf time.Time) error
	// Rate returns the stored rate from one currency to another, falling
	// back to the reciprocal of the opposite direction when only that is
	// stored. ErrRateNotFound when neither direction is.
	Rate(ctx context.Context, backend, from, to string) (decimal.Decimal, error)
	// Rates lists the backend's stored rates.
	Rates(ctx context.Context, backend string) ([]StoredRate, error)
	// LastFetched reports when the backend's rates were last saved.
	// ErrNeverFetched when they never were.
	LastFetched(ctx context.Context, backend string) (time.Time, error)
}

type pairKey struct {
	from, to string
}

// MemoryStore keeps rates in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	rates   map[string]map[pairKey]StoredRate
	fetched map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rates:   make(map[string]map[pairKey]StoredRate),
		fetched: make(map[string]time.Time),
	}
}

func (s *MemoryStore) SaveRates(ctx context.Context, backend, base string, rates map[string]decimal.Decimal, asOf time.Time) error {
	base = strings.ToUpper(base)

	s.mu.Lock()
	defer s.mu.Unlock()

	byPair := s.rates[backend]
	if byPair == nil {
		byPair = make(map[pairKey]StoredRate, len(rates))
		s.rates[backend] = byPair
	}
	for code, rate := range rates {
		code = strings.ToUpper(code)
		byPair[pairKey{from: base, to: code}] = StoredRate{
			Backend:   backend,
			Base:      base,
			Target:    code,
			Rate:      rate,
			FetchedAt: asOf,
		}
	}
	s.fetched[backend] = asOf
	return nil
}

func (s *MemoryStore) Rate(ctx context.Context, backend, from, to string) (decimal.Decimal, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	s.mu.RLock()
	defer s.mu.RUnlock()

	byPair := s.rates[backend]
	if direct, ok := byPair[pairKey{from: from, to: to}]; ok {
		return direct.Rate, nil
	}
	if inverse, ok := byPair[pairKey{from: to, to: from}]; ok && !inverse.Rate.IsZero() {
		return decimal.NewFromInt(1).Div(inverse.Rate), nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s to %s", ErrRateNotFound, from, to)
}

func (s *MemoryStore) Rates(ctx context.Context, backend string) ([]StoredRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byPair := s.rates[backend]
	out := make([]StoredRate, 0, len(byPair))
	for _, r := range byPair {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Base != out[j].Base {
			return out[i].Base < out[j].Base
		}
		return out[i].Target < out[j].Target
	})
	return out, nil
}

func (s *MemoryStore) LastFetched(ctx context.Context, backend string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.fetched[backend]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNeverFetched, backend)
	}
	return at, nil
}

var _ Store = (*MemoryStore)(nil)
