package money

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// moneyJSON is the object wire form of a Money value. Amounts decode from
// both JSON strings and JSON numbers, but always encode as strings so no
// reader is tempted to touch them as floats.
type moneyJSON struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// MarshalJSON encodes m as {"amount":"12.34","currency":"USD"}.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}{
		Amount:   m.amount.String(),
		Currency: m.currency.Code,
	})
}

// UnmarshalJSON decodes the object wire form. Unknown currency codes fail
// with currency.ErrUnknownCurrency.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode money: %w", err)
	}
	v, err := New(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

var jsonNull = []byte("null")

// MarshalJSON encodes an invalid NullMoney as JSON null, and a valid one the
// same way as its Money.
func (n NullMoney) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return n.Money.MarshalJSON()
}

// UnmarshalJSON decodes JSON null into an invalid NullMoney and anything else
// as a Money object.
func (n *NullMoney) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*n = NullMoney{}
		return nil
	}
	var m Money
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = NullMoney{Money: m, Valid: true}
	return nil
}
