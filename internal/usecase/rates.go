package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fleet-dispatch/internal/pricing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const ratesCacheKey = "fx:rates:" + pricing.BaseCurrency

// RateProvider never fails; it degrades to pricing.FallbackRates.
type RateProvider interface {
	Rates(ctx context.Context) pricing.Rates
}

type cachedRates struct {
	client *redis.Client
	http   *http.Client
	url    string
	ttl    time.Duration
	log    *zap.Logger
}

// NewRateProvider fetches rates from url and keeps them in redis for ttl. A
// nil client or empty url serves the fallback snapshot.
func NewRateProvider(client *redis.Client, url string, ttl time.Duration, log *zap.Logger) RateProvider {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &cachedRates{
		client: client,
		http:   &http.Client{Timeout: 10 * time.Second},
		url:    url,
		ttl:    ttl,
		log:    log.With(zap.String("service", "rates")),
	}
}

func (p *cachedRates) Rates(ctx context.Context) pricing.Rates {
	if p.client != nil {
		raw, err := p.client.Get(ctx, ratesCacheKey).Bytes()
		if err == nil {
			var rates pricing.Rates
			if json.Unmarshal(raw, &rates) == nil && len(rates) > 0 {
				return rates
			}
		} else if !errors.Is(err, redis.Nil) {
			p.log.Warn("Failed to read cached rates", zap.Error(err))
		}
	}

	if p.url == "" {
		return pricing.FallbackRates
	}

	rates, err := p.fetch(ctx)
	if err != nil {
		p.log.Warn("Using fallback exchange rates", zap.Error(err), zap.String("url", p.url))
		return pricing.FallbackRates
	}

	if p.client != nil {
		if raw, err := json.Marshal(rates); err == nil {
			if err := p.client.Set(ctx, ratesCacheKey, raw, p.ttl).Err(); err != nil {
				p.log.Warn("Failed to cache rates", zap.Error(err))
			}
		}
	}
	return rates
}

func (p *cachedRates) fetch(ctx context.Context) (pricing.Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch rates: status %d", resp.StatusCode)
	}
	return pricing.DecodeRates(resp.Body)
}
