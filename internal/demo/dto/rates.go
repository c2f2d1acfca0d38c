package dto

import (
	"time"

	"github.com/SscSPs/money_field_kit/pkg/exchange"
	"github.com/shopspring/decimal"
)

// RateResponse describes one stored conversion rate.
type RateResponse struct {
	Backend   string          `json:"backend"`
	Base      string          `json:"base"`
	Target    string          `json:"target"`
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// ToRateResponse converts an exchange.StoredRate to a RateResponse DTO.
func ToRateResponse(r exchange.StoredRate) RateResponse {
	return RateResponse{
		Backend:   r.Backend,
		Base:      r.Base,
		Target:    r.Target,
		Rate:      r.Rate,
		FetchedAt: r.FetchedAt,
	}
}

// ListRatesResponse carries every stored rate plus the last fetch time.
type ListRatesResponse struct {
	Rates         []RateResponse `json:"rates"`
	LastFetchedAt *time.Time     `json:"lastFetchedAt,omitempty"`
}

// ToListRatesResponse converts stored rates and an optional fetch timestamp.
func ToListRatesResponse(rates []exchange.StoredRate, lastFetched *time.Time) ListRatesResponse {
	responses := make([]RateResponse, len(rates))
	for i, r := range rates {
		responses[i] = ToRateResponse(r)
	}
	return ListRatesResponse{Rates: responses, LastFetchedAt: lastFetched}
}

// GetRateResponse returns a single pair rate.
type GetRateResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}
