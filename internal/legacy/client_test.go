package legacy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fleet-dispatch/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hitCounter struct {
	mu   sync.Mutex
	hits map[string]int
}

func (h *hitCounter) add(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hits == nil {
		h.hits = make(map[string]int)
	}
	h.hits[path]++
}

func (h *hitCounter) get(path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[path]
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Write([]byte(body))
}

func newClient(t *testing.T, baseURL, customPath string) *Client {
	t.Helper()
	return NewClient(utils.LegacyConfig{
		BaseURL:    baseURL,
		APIKey:     "secret",
		CustomPath: customPath,
		Timeout:    2 * time.Second,
	})
}

func TestFetchBookingsStopsAtFirstEndpointWithBookings(t *testing.T) {
	var counter hitCounter
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			return
		}
		counter.add(r.URL.Path)
		switch r.URL.Path {
		case "/wp-json":
			http.NotFound(w, r)
		case "/driver/v1/bookings":
			w.WriteHeader(http.StatusInternalServerError)
		case "/wp-json/driver/v1/bookings":
			http.NotFound(w, r)
		case "/wp/v2/vehicle-bookings":
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>login</html>"))
		case "/wp-json/wp/v2/bookings":
			writeJSON(w, `{"bookings":[{"id":101},{"id":102}]}`)
		default:
			writeJSON(w, `{"bookings":[{"id":999}]}`)
		}
	}))
	defer srv.Close()

	result, err := newClient(t, srv.URL, "").FetchBookings(context.Background(), Filter{Limit: 20})
	require.NoError(t, err)

	require.Len(t, result.Bookings, 2)
	assert.Equal(t, "101", result.Bookings[0].ID())
	assert.Equal(t, srv.URL+"/wp-json/wp/v2/bookings", result.Endpoint)
	assert.Equal(t, ShapeProperty, result.Shape)

	require.Len(t, result.Attempts, 4)
	failed := 0
	for _, a := range result.Attempts[:3] {
		if a.Failed() {
			failed++
		}
	}
	assert.Equal(t, 3, failed)
	assert.Equal(t, OutcomeHTTPError, result.Attempts[0].Outcome)
	assert.Equal(t, OutcomeHTTPError, result.Attempts[1].Outcome)
	assert.Equal(t, OutcomeNotJSON, result.Attempts[2].Outcome)
	assert.False(t, result.Attempts[3].Failed())

	for _, path := range knownPaths[4:] {
		assert.Zero(t, counter.get(path), path)
	}
}

func TestFetchBookingsTriesEveryHeaderVariationOnPreferredEndpoint(t *testing.T) {
	var (
		mu          sync.Mutex
		contentType []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			return
		}
		if r.URL.Path != "/custom/v1/bookings" {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		contentType = append(contentType, r.Header.Get("Content-Type"))
		mu.Unlock()
		if r.Header.Get("X-WP-Nonce") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, `[{"id":"7"}]`)
	}))
	defer srv.Close()

	result, err := newClient(t, srv.URL, "custom/v1/bookings/").FetchBookings(context.Background(), Filter{})
	require.NoError(t, err)

	require.Len(t, result.Attempts, 3)
	for i, a := range result.Attempts {
		assert.Equal(t, i+1, a.Variation)
	}
	assert.Equal(t, []string{"application/json", "", "application/json"}, contentType)
	assert.Equal(t, ShapeArray, result.Shape)
	assert.Equal(t, "7", result.Bookings[0].ID())
}

func TestFetchBookingsUsesDiscoveredRoutesFirst(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			return
		}
		switch r.URL.Path {
		case "/wp-json":
			writeJSON(w, `{"routes":{
				"/wp/v2/posts":{},
				"/fleet/v1/bookings":{},
				"/fleet/v1/bookings/(?P<id>[\\d]+)":{}
			}}`)
		case "/fleet/v1/bookings":
			writeJSON(w, `{"data":[{"id":1},{"id":2},{"id":3}],"total":30,"page":2,"per_page":3,"total_pages":10}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	result, err := newClient(t, srv.URL, "").FetchBookings(context.Background(), Filter{Page: 2, Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"/fleet/v1/bookings", "/fleet/v1/bookings/"}, result.Discovered)
	assert.Equal(t, srv.URL+"/fleet/v1/bookings", result.Endpoint)
	assert.Len(t, result.Attempts, 1)
	require.NotNil(t, result.Pagination)
	assert.Equal(t, Pagination{Total: 30, Page: 2, PerPage: 3, TotalPages: 10}, *result.Pagination)
}

func TestFetchBookingsSendsFilterAsQuery(t *testing.T) {
	var query []string
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || r.URL.Path == "/wp-json" {
			return
		}
		mu.Lock()
		query = append(query, r.URL.RawQuery)
		mu.Unlock()
		writeJSON(w, `[]`)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, "")
	_, err := c.FetchBookings(context.Background(), Filter{Status: "all"})
	require.NoError(t, err)
	_, err = c.FetchBookings(context.Background(), Filter{Status: "confirmed", Limit: 5, Page: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"limit=10&page=1", "limit=5&page=3&status=confirmed"}, query)
}

func TestFetchBookingsFailsWhenEveryEndpointFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	result, err := newClient(t, srv.URL, "").FetchBookings(context.Background(), Filter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Len(t, result.Attempts, len(knownPaths))
	assert.Contains(t, err.Error(), "404")
}

func TestFetchBookingsFailsWhenServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	result, err := newClient(t, baseURL, "").FetchBookings(context.Background(), Filter{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Empty(t, result.Attempts)
}

func TestFetchBookingsNotConfigured(t *testing.T) {
	_, err := NewClient(utils.LegacyConfig{}).FetchBookings(context.Background(), Filter{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFetchBookingSingleRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wp-json/driver/v1/bookings/42" {
			writeJSON(w, `{"data":{"id":42,"title":"Booking 42"}}`)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	result, err := newClient(t, srv.URL, "").FetchBooking(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", result.Booking.ID())
	assert.Equal(t, srv.URL+"/wp-json/driver/v1/bookings/42", result.Endpoint)
	assert.Len(t, result.Attempts, 1)
}

func TestFetchBookingFallsBackToList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodHead:
		case r.URL.Path == "/driver/v1/bookings":
			writeJSON(w, `{"data":[{"id":7},{"id":8,"title":"Booking 42"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, "")
	result, err := c.FetchBooking(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "8", result.Booking.ID())
	assert.Len(t, result.Attempts, len(singlePaths)+1)

	_, err = c.FetchBooking(context.Background(), "99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchBookingUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newClient(t, srv.URL, "").FetchBooking(context.Background(), "42")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSingleCandidatesIncludeCustomPath(t *testing.T) {
	c := newClient(t, "https://example.test", "/wp-json/fleet/v1/bookings")
	got := c.singleCandidates("5")

	assert.Equal(t, []string{
		"https://example.test/wp-json/fleet/v1/bookings/5",
		"https://example.test/wp-json/fleet/v1/bookings?id=5",
		"https://example.test/wp-json/driver/v1/bookings/5",
		"https://example.test/wp-json/wp/v2/bookings/5",
		"https://example.test/wp-json/vehicle-bookings/v1/bookings/5",
	}, got)
}
