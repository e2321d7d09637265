package price

import (
	"fmt"
	"time"
)

const Currency = "USD"

// Quote is the last Bitcoin price shown in the price section.
type Quote struct {
	Currency  string    `json:"currency"`
	Rate      float64   `json:"rate"`
	Display   string    `json:"display"`
	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewQuote(rate float64, source string, at time.Time) Quote {
	return Quote{
		Currency:  Currency,
		Rate:      rate,
		Display:   FormatRate(rate),
		Source:    source,
		UpdatedAt: at.UTC(),
	}
}

// FormatRate renders a USD rate with two decimals, e.g. "$64231.57".
func FormatRate(rate float64) string {
	return fmt.Sprintf("$%.2f", rate)
}

type currentPriceResponse struct {
	BPI map[string]struct {
		Code      string  `json:"code"`
		RateFloat float64 `json:"rate_float"`
	} `json:"bpi"`
}
