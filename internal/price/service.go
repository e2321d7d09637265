package price

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/saulo-duarte/btcportal/internal/config"
)

// ErrorText is the only thing the price section shows when a fetch fails.
const ErrorText = "Error fetching price"

var (
	ErrUpstream    = errors.New("price api returned an error")
	ErrMissingRate = errors.New("price api response has no USD rate")
)

type Service interface {
	FetchPrice(ctx context.Context) (Quote, error)
}

type service struct {
	client *http.Client
	apiURL string
	now    func() time.Time
}

func NewService(client *http.Client, apiURL string) Service {
	return &service{client: client, apiURL: apiURL, now: time.Now}
}

func (s *service) FetchPrice(ctx context.Context) (Quote, error) {
	log := config.WithContext(ctx).WithField("api_url", s.apiURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return Quote{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.WithError(err).Error("Failed to reach price api")
		return Quote{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	var body currentPriceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("failed to decode price response: %w", err)
	}

	usd, ok := body.BPI[Currency]
	if !ok {
		return Quote{}, ErrMissingRate
	}

	quote := NewQuote(usd.RateFloat, s.apiURL, s.now())
	log.WithField("rate", quote.Display).Debug("Fetched bitcoin price")
	return quote, nil
}
