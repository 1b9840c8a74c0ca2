// Package rates fetches reference exchange rates from public HTTP APIs:
// fiat dollar quotes and cryptocurrency spot prices. Both endpoints are
// consumed read-only.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default public endpoints. Overridable for tests and self-hosted mirrors.
const (
	DefaultFiatURL   = "https://dolarapi.com/v1/dolares"
	DefaultCryptoURL = "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin,ethereum,binancecoin&vs_currencies=usd&include_24hr_change=true"
)

// FiatRate is one dollar quote as served by the fiat rate API.
type FiatRate struct {
	Casa               string  `json:"casa"`
	Nombre             string  `json:"nombre"`
	Compra             float64 `json:"compra"`
	Venta              float64 `json:"venta"`
	FechaActualizacion string  `json:"fechaActualizacion"`
}

// CryptoRate is a cryptocurrency spot price with its 24h change.
type CryptoRate struct {
	Symbol     string    `json:"symbol"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Change24h  float64   `json:"change24h"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// coinIDs maps the crypto API's coin identifiers to display symbol and name.
var coinIDs = []struct {
	id, symbol, name string
}{
	{"bitcoin", "BTC", "Bitcoin"},
	{"ethereum", "ETH", "Ethereum"},
	{"binancecoin", "BNB", "BNB"},
}

// Client fetches rates over HTTP.
type Client struct {
	http      *http.Client
	fiatURL   string
	cryptoURL string
}

// NewClient creates a rates client. Empty URLs fall back to the public defaults.
func NewClient(fiatURL, cryptoURL string) *Client {
	if fiatURL == "" {
		fiatURL = DefaultFiatURL
	}
	if cryptoURL == "" {
		cryptoURL = DefaultCryptoURL
	}
	return &Client{
		http:      &http.Client{Timeout: 15 * time.Second},
		fiatURL:   fiatURL,
		cryptoURL: cryptoURL,
	}
}

// FetchFiat retrieves the current fiat dollar quotes.
func (c *Client) FetchFiat(ctx context.Context) ([]FiatRate, error) {
	var rates []FiatRate
	if err := c.getJSON(ctx, c.fiatURL, &rates); err != nil {
		return nil, fmt.Errorf("fetching fiat rates: %w", err)
	}
	return rates, nil
}

// FetchCrypto retrieves spot prices for the tracked coins.
func (c *Client) FetchCrypto(ctx context.Context) ([]CryptoRate, error) {
	// Response shape: {"bitcoin": {"usd": 1234.5, "usd_24h_change": -0.1}, ...}
	var payload map[string]struct {
		USD          float64 `json:"usd"`
		USD24hChange float64 `json:"usd_24h_change"`
	}
	if err := c.getJSON(ctx, c.cryptoURL, &payload); err != nil {
		return nil, fmt.Errorf("fetching crypto rates: %w", err)
	}

	now := time.Now().UTC()
	rates := make([]CryptoRate, 0, len(coinIDs))
	for _, coin := range coinIDs {
		quote, ok := payload[coin.id]
		if !ok {
			continue
		}
		rates = append(rates, CryptoRate{
			Symbol:     coin.symbol,
			Name:       coin.name,
			Price:      quote.USD,
			Change24h:  quote.USD24hChange,
			LastUpdate: now,
		})
	}

	return rates, nil
}

// getJSON performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func (c *Client) getJSON(ctx context.Context, addr string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, data)
}
