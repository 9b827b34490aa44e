// Package exchangeapi fetches exchange rates from an open.er-api.com style
// HTTP endpoint: GET {baseURL}/latest/{BASE}.
package exchangeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"yuandi/internal/core/domain/model/exchange"
	"yuandi/internal/core/domain/model/kernel"
	"yuandi/internal/core/ports"

	"github.com/shopspring/decimal"
)

const (
	DefaultBaseURL = "https://open.er-api.com/v6"
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 1 << 20
)

var ErrUpstream = errors.New("exchange rate upstream error")

type latestResponse struct {
	Result    string                     `json:"result"`
	ErrorType string                     `json:"error-type"`
	BaseCode  string                     `json:"base_code"`
	UpdatedAt int64                      `json:"time_last_update_unix"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Provider  string                     `json:"provider"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      kernel.Clock
}

// NewClient returns a client for baseURL. A nil httpClient gets DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client, clock kernel.Clock) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		clock:      clock,
	}
}

var _ ports.ExchangeRateProvider = (*Client)(nil)

func (c *Client) Fetch(ctx context.Context, base, quote string) (exchange.Rate, error) {
	base, quote = strings.ToUpper(base), strings.ToUpper(quote)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/latest/"+base, nil)
	if err != nil {
		return exchange.Rate{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return exchange.Rate{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return exchange.Rate{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return exchange.Rate{}, fmt.Errorf("%w: decode: %w", ErrUpstream, err)
	}
	if body.Result != "" && body.Result != "success" {
		return exchange.Rate{}, fmt.Errorf("%w: %s %s", ErrUpstream, body.Result, body.ErrorType)
	}

	value, ok := body.Rates[quote]
	if !ok {
		return exchange.Rate{}, fmt.Errorf("%w: no %s rate for %s", ErrUpstream, quote, base)
	}

	fetchedAt := c.clock.Now()
	if body.UpdatedAt > 0 {
		fetchedAt = time.Unix(body.UpdatedAt, 0)
	}

	source := body.Provider
	if source == "" {
		source = req.URL.Host
	}
	return exchange.NewRate(base, quote, value, source, fetchedAt)
}
