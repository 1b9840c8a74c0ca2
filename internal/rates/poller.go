package rates

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/globalpocket/backend/internal/metrics"
)

// DefaultInterval is how often the public APIs are polled.
const DefaultInterval = 5 * time.Minute

// Poller refreshes both rate feeds on a fixed interval and serves the latest
// snapshot from memory. A failed poll keeps the previous snapshot; there is no
// retry between ticks.
type Poller struct {
	client   *Client
	interval time.Duration
	logger   *slog.Logger

	mu        sync.RWMutex
	fiat      []FiatRate
	crypto    []CryptoRate
	updatedAt time.Time
}

// NewPoller creates a poller. A non-positive interval applies DefaultInterval.
func NewPoller(client *Client, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		client:   client,
		interval: interval,
		logger:   logger,
	}
}

// Run polls immediately and then on every tick until ctx is canceled.
// It is meant to run in its own goroutine.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// refresh fetches both feeds once. Each feed fails independently.
func (p *Poller) refresh(ctx context.Context) {
	fiat, err := p.client.FetchFiat(ctx)
	if err != nil {
		metrics.RatePollFailures.WithLabelValues("fiat").Inc()
		p.logger.Warn("Fiat rate poll failed", "error", err)
	}

	crypto, err := p.client.FetchCrypto(ctx)
	if err != nil {
		metrics.RatePollFailures.WithLabelValues("crypto").Inc()
		p.logger.Warn("Crypto rate poll failed", "error", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if fiat != nil {
		p.fiat = fiat
		p.updatedAt = time.Now()
	}
	if crypto != nil {
		p.crypto = crypto
		p.updatedAt = time.Now()
	}
}

// Fiat returns the latest fiat snapshot and when any feed last refreshed.
func (p *Poller) Fiat() ([]FiatRate, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fiat, p.updatedAt
}

// Crypto returns the latest crypto snapshot and when any feed last refreshed.
func (p *Poller) Crypto() ([]CryptoRate, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.crypto, p.updatedAt
}

// CryptoPrices returns the latest spot prices keyed by symbol, in the decimal
// form the calculator consumes.
func (p *Poller) CryptoPrices() map[string]decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()

	prices := make(map[string]decimal.Decimal, len(p.crypto))
	for _, rate := range p.crypto {
		prices[rate.Symbol] = decimal.NewFromFloat(rate.Price)
	}
	return prices
}
