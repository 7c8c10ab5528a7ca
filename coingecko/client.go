// Package coingecko fetches live market data from the CoinGecko public API.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"coinsim/market"
)

const (
	// DefaultBaseURL is the public CoinGecko v3 API.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// DefaultPerPage matches the feed's result-count limit.
	DefaultPerPage = 20
)

// Client talks to the CoinGecko /coins/markets endpoint. The zero value is
// usable; unset fields fall back to defaults.
type Client struct {
	BaseURL    string // e.g. https://api.coingecko.com/api/v3
	VsCurrency string // display currency code, e.g. "usd"
	PerPage    int    // result-count limit
	HTTP       *http.Client
}

// marketRow is one entry of the /coins/markets response. Prices are pointers
// because CoinGecko reports null for delisted or unpriced coins.
type marketRow struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	Image        string   `json:"image"`
	CurrentPrice *float64 `json:"current_price"`
	Change1h     *float64 `json:"price_change_percentage_1h_in_currency"`
	Change24h    *float64 `json:"price_change_percentage_24h_in_currency"`
	Change7d     *float64 `json:"price_change_percentage_7d_in_currency"`
}

// Markets fetches the current asset list. Rows missing a symbol, name, or
// price are dropped here so malformed feed records never reach the ledger.
func (c *Client) Markets(ctx context.Context) ([]market.Asset, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	vs := c.VsCurrency
	if vs == "" {
		vs = "usd"
	}
	perPage := c.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("coingecko: bad base url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/coins/markets"
	q := u.Query()
	q.Set("vs_currency", vs)
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("price_change_percentage", "1h,24h,7d")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return nil, fmt.Errorf("coingecko: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []marketRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("coingecko: decode response: %w", err)
	}

	assets := make([]market.Asset, 0, len(rows))
	for _, r := range rows {
		if r.Symbol == "" || r.Name == "" || r.CurrentPrice == nil || *r.CurrentPrice < 0 {
			continue
		}
		assets = append(assets, market.Asset{
			Symbol:       r.Symbol,
			Name:         r.Name,
			Image:        r.Image,
			CurrentPrice: *r.CurrentPrice,
			Change1h:     deref(r.Change1h),
			Change24h:    deref(r.Change24h),
			Change7d:     deref(r.Change7d),
		})
	}

	return assets, nil
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
