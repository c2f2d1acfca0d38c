// Package exchange fetches, stores and applies currency exchange rates:
// pluggable rate backends, a store for the fetched rates, and a Converter
// that moves money values between currencies.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// Backend fetches the current rates for a base currency from a provider.
// Rates map target currency codes to the amount one unit of base buys.
type Backend interface {
	Name() string
	FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error)
}

// DefaultOpenExchangeRatesURL is the production API root of
// openexchangerates.org.
const DefaultOpenExchangeRatesURL = "https://openexchangerates.org/api"

// OpenExchangeRatesBackend reads the latest.json feed of
// openexchangerates.org.
type OpenExchangeRatesBackend struct {
	// AppID is the account's API key, sent as the app_id query parameter.
	AppID string
	// BaseURL overrides the API root, mainly for tests.
	BaseURL string
	// Client overrides the HTTP client; nil uses http.DefaultClient.
	Client *http.Client
}

func (b *OpenExchangeRatesBackend) Name() string {
	return "openexchangerates"
}

func (b *OpenExchangeRatesBackend) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	root := b.BaseURL
	if root == "" {
		root = DefaultOpenExchangeRatesURL
	}
	q := url.Values{}
	q.Set("app_id", b.AppID)
	q.Set("base", base)
	endpoint := root + "/latest.json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	client := b.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates: unexpected status %s", resp.Status)
	}

	var payload struct {
		Base  string                     `json:"base"`
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rates response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rates response for base %s is empty", base)
	}
	return payload.Rates, nil
}

// StaticBackend serves a fixed rate table. It backs tests and offline demo
// seeding.
type StaticBackend struct {
	// BackendName defaults to "static".
	BackendName string
	// Base is the currency the rate table is quoted against.
	Base string
	// Rates maps target currency codes to rates.
	Rates map[string]decimal.Decimal
}

func (b *StaticBackend) Name() string {
	if b.BackendName != "" {
		return b.BackendName
	}
	return "static"
}

func (b *StaticBackend) FetchRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	if base != b.Base {
		return nil, fmt.Errorf("static backend quotes %s, not %s", b.Base, base)
	}
	out := make(map[string]decimal.Decimal, len(b.Rates))
	for code, rate := range b.Rates {
		out[code] = rate
	}
	return out, nil
}

var (
	_ Backend = (*OpenExchangeRatesBackend)(nil)
	_ Backend = (*StaticBackend)(nil)
)
