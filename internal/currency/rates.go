package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"budgetbuddy-go/pkg/logger"
	"github.com/shopspring/decimal"
)

const DefaultRatesURL = "https://open.er-api.com/v6/latest/USD"

var ErrRatesUnavailable = errors.New("exchange rates unavailable")

type RatesConfig struct {
	URL     string
	TTL     time.Duration
	Timeout time.Duration
}

type Rates struct {
	Base      string
	Values    map[string]decimal.Decimal
	FetchedAt time.Time
	Fallback  bool
}

type ratesResponse struct {
	Result   string                     `json:"result"`
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// RatesClient fetches USD based exchange rates and keeps them for TTL.
type RatesClient struct {
	url    string
	ttl    time.Duration
	client *http.Client
	log    logger.Logger
	now    func() time.Time

	mu     sync.RWMutex
	cached *Rates
}

func NewRatesClient(cfg RatesConfig, log logger.Logger) *RatesClient {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = DefaultRatesURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &RatesClient{
		url:    url,
		ttl:    cfg.TTL,
		client: &http.Client{Timeout: timeout},
		log:    log,
		now:    time.Now,
	}
}

// Latest returns cached rates while fresh. When the API fails it serves the
// last good rates, or FallbackRates if there are none.
func (c *RatesClient) Latest(ctx context.Context) Rates {
	now := c.now()

	c.mu.RLock()
	cached := c.cached
	c.mu.RUnlock()
	if cached != nil && c.ttl > 0 && now.Sub(cached.FetchedAt) < c.ttl {
		return cloneRates(*cached)
	}

	fresh, err := c.fetch(ctx)
	if err != nil {
		c.log.Warn("currency.rates: fetch failed", "err", err, "url", c.url)
		if cached != nil {
			return cloneRates(*cached)
		}
		return Rates{
			Base:      BaseCode,
			Values:    cloneValues(FallbackRates),
			FetchedAt: now,
			Fallback:  true,
		}
	}

	fresh.FetchedAt = now
	c.mu.Lock()
	c.cached = &fresh
	c.mu.Unlock()

	return cloneRates(fresh)
}

func (c *RatesClient) fetch(ctx context.Context) (Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Rates{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Rates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Rates{}, fmt.Errorf("%w: status %d", ErrRatesUnavailable, resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Rates{}, fmt.Errorf("decode rates: %w", err)
	}
	if payload.Result != "" && payload.Result != "success" {
		return Rates{}, fmt.Errorf("%w: result %q", ErrRatesUnavailable, payload.Result)
	}
	if len(payload.Rates) == 0 {
		return Rates{}, fmt.Errorf("%w: empty rates", ErrRatesUnavailable)
	}

	base := payload.BaseCode
	if base == "" {
		base = BaseCode
	}
	return Rates{Base: base, Values: payload.Rates}, nil
}

func cloneRates(r Rates) Rates {
	r.Values = cloneValues(r.Values)
	return r
}

func cloneValues(values map[string]decimal.Decimal) map[string]decimal.Decimal {
	cloned := make(map[string]decimal.Decimal, len(values))
	for k, v := range values {
		cloned[k] = v
	}
	return cloned
}
