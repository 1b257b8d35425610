package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fleet-dispatch/internal/pricing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRatesServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestRatesFetchedOnceAndCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	srv, hits := newRatesServer(t, http.StatusOK, `{"base":"JPY","rates":{"USD":0.0065,"EUR":0.006,"XAU":0.1}}`)
	provider := NewRateProvider(client, srv.URL, time.Hour, nopLog)

	rates := provider.Rates(context.Background())
	assert.InDelta(t, 0.0065, rates["USD"], 1e-9)
	assert.InDelta(t, 1, rates["JPY"], 1e-9)
	assert.NotContains(t, rates, "XAU")

	again := provider.Rates(context.Background())
	assert.Equal(t, rates, again)
	assert.Equal(t, int32(1), hits.Load())

	assert.True(t, mr.Exists(ratesCacheKey))
	assert.Equal(t, time.Hour, mr.TTL(ratesCacheKey))
}

func TestRatesFallBackOnUpstreamError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	srv, _ := newRatesServer(t, http.StatusServiceUnavailable, `{}`)
	provider := NewRateProvider(client, srv.URL, 0, nopLog)

	assert.Equal(t, pricing.FallbackRates, provider.Rates(context.Background()))
	assert.False(t, mr.Exists(ratesCacheKey))
}

func TestRatesWithoutRedisOrURL(t *testing.T) {
	provider := NewRateProvider(nil, "", 0, nopLog)
	assert.Equal(t, pricing.FallbackRates, provider.Rates(context.Background()))

	srv, hits := newRatesServer(t, http.StatusOK, `{"base":"JPY","rates":{"USD":0.007}}`)
	provider = NewRateProvider(nil, srv.URL, 0, nopLog)
	require.InDelta(t, 0.007, provider.Rates(context.Background())["USD"], 1e-9)
	provider.Rates(context.Background())
	assert.Equal(t, int32(2), hits.Load())
}
