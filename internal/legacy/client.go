// Package legacy reads bookings from the WordPress site that took bookings
// before this service existed. The site's route and response layout are not
// known in advance, so every call tries a list of candidate endpoints and
// returns the trail of attempts alongside the result.
package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"fleet-dispatch/pkg/utils"
)

var (
	ErrNotConfigured = errors.New("legacy booking api is not configured")
	ErrUnavailable   = errors.New("legacy booking api unavailable")
	ErrNotFound      = errors.New("legacy booking not found")
)

// knownPaths are the conventional list routes, tried after discovered routes
// and the configured path.
var knownPaths = []string{
	"/driver/v1/bookings",
	"/wp-json/driver/v1/bookings",
	"/wp/v2/vehicle-bookings",
	"/wp-json/wp/v2/bookings",
	"/wp-json/bookly/v1/appointments",
	"/wp-json/vehicle-bookings/v1/bookings",
	"/wp-json/wc-bookings/v1/bookings",
	"/bookings",
	"/api/bookings",
}

var singlePaths = []string{
	"/wp-json/driver/v1/bookings/%s",
	"/wp-json/wp/v2/bookings/%s",
	"/wp-json/vehicle-bookings/v1/bookings/%s",
}

var routeGroup = regexp.MustCompile(`\(\?.*?\)`)

const maxBody = 10 << 20

type Filter struct {
	Status string
	Limit  int
	Page   int
}

func (f Filter) query() string {
	q := url.Values{}
	if f.Status != "" && f.Status != "all" {
		q.Set("status", f.Status)
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("page", strconv.Itoa(page))
	return q.Encode()
}

// Outcome classifies one attempt.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeHTTPError Outcome = "http_error"
	OutcomeNotJSON   Outcome = "not_json"
	OutcomeBadBody   Outcome = "bad_body"
	OutcomeNoMatch   Outcome = "no_match"
	OutcomeTransport Outcome = "transport_error"
)

// Attempt records one request made while probing.
type Attempt struct {
	URL         string        `json:"url"`
	Variation   int           `json:"header_variation"`
	Status      int           `json:"status,omitempty"`
	ContentType string        `json:"content_type,omitempty"`
	Outcome     Outcome       `json:"outcome"`
	Error       string        `json:"error,omitempty"`
	Elapsed     time.Duration `json:"elapsed"`
}

func (a Attempt) Failed() bool {
	return a.Outcome != OutcomeOK
}

type Result struct {
	Bookings   []Record    `json:"bookings"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Endpoint   string      `json:"endpoint"`
	Shape      Shape       `json:"shape"`
	Discovered []string    `json:"discovered,omitempty"`
	Attempts   []Attempt   `json:"attempts"`
}

type SingleResult struct {
	Booking  Record    `json:"booking"`
	Endpoint string    `json:"endpoint"`
	Attempts []Attempt `json:"attempts"`
}

type Client struct {
	baseURL    string
	apiKey     string
	customPath string
	http       *http.Client
}

func NewClient(config utils.LegacyConfig) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		customPath: normalizePath(config.CustomPath),
		http:       &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// headerVariations are tried in order on the preferred endpoint. The second
// one carries no Content-Type, which some hosts require to skip a CORS
// preflight. The third sends the key as a WordPress nonce.
func (c *Client) headerVariations() []http.Header {
	bearer := http.Header{}
	if c.apiKey != "" {
		bearer.Set("Authorization", "Bearer "+c.apiKey)
	}

	standard := bearer.Clone()
	standard.Set("Content-Type", "application/json")

	nonce := http.Header{}
	nonce.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		nonce.Set("X-WP-Nonce", c.apiKey)
	}
	return []http.Header{standard, bearer, nonce}
}

// FetchBookings reads a booking list. The base URL must answer a HEAD request;
// after that each candidate endpoint is tried once per header variation until
// one returns JSON holding a list. Every request lands in Result.Attempts,
// also when the fetch fails.
func (c *Client) FetchBookings(ctx context.Context, filter Filter) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	result := &Result{}
	if err := c.ping(ctx); err != nil {
		return result, fmt.Errorf("%w: connect to %s: %v", ErrUnavailable, c.baseURL, err)
	}

	result.Discovered = c.discover(ctx)
	variations := c.headerVariations()
	query := filter.query()

	var lastErr string
	for _, path := range c.candidates(result.Discovered) {
		tries := variations[:1]
		if c.customPath != "" && path == c.customPath {
			tries = variations
		}

		for i, headers := range tries {
			endpoint := c.baseURL + path
			attempt, body := c.get(ctx, endpoint+"?"+query, headers)
			attempt.Variation = i + 1

			if attempt.Outcome == OutcomeOK {
				extraction, err := Extract(body)
				if err == nil {
					result.Attempts = append(result.Attempts, attempt)
					result.Bookings = extraction.Records
					result.Pagination = extraction.Pagination
					result.Shape = extraction.Shape
					result.Endpoint = endpoint
					return result, nil
				}
				attempt.Outcome = OutcomeBadBody
				attempt.Error = err.Error()
			}

			result.Attempts = append(result.Attempts, attempt)
			lastErr = attempt.describe()
			if ctx.Err() != nil {
				return result, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			}
		}
	}

	return result, fmt.Errorf("%w: all endpoints failed, last: %s", ErrUnavailable, lastErr)
}

// FetchBooking fetches one booking by its WordPress id. Single-record routes
// are tried first; if none has the booking, the list is fetched and searched.
func (c *Client) FetchBooking(ctx context.Context, id string) (*SingleResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	result := &SingleResult{}
	headers := c.headerVariations()[0]
	escaped := url.PathEscape(id)

	for _, endpoint := range c.singleCandidates(escaped) {
		attempt, body := c.get(ctx, endpoint, headers)
		attempt.Variation = 1
		if attempt.Outcome == OutcomeOK {
			if record, ok := FindByID(body, id); ok {
				result.Attempts = append(result.Attempts, attempt)
				result.Booking = record
				result.Endpoint = endpoint
				return result, nil
			}
			attempt.Outcome = OutcomeNoMatch
			attempt.Error = "response does not contain a valid booking"
		}
		result.Attempts = append(result.Attempts, attempt)
		if ctx.Err() != nil {
			return result, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		}
	}

	list, err := c.FetchBookings(ctx, Filter{Limit: 100})
	if list != nil {
		result.Attempts = append(result.Attempts, list.Attempts...)
	}
	if err != nil {
		return result, err
	}
	for _, record := range list.Bookings {
		if record.Matches(id) {
			result.Booking = record
			result.Endpoint = list.Endpoint
			return result, nil
		}
	}
	return result, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (c *Client) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// discover reads the WordPress route index and returns routes that look
// booking related. Discovery failures are not fatal.
func (c *Client) discover(ctx context.Context) []string {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	attempt, body := c.get(ctx, c.baseURL+"/wp-json", headers)
	if attempt.Outcome != OutcomeOK {
		return nil
	}

	var index struct {
		Routes map[string]json.RawMessage `json:"routes"`
	}
	if err := json.Unmarshal(body, &index); err != nil {
		return nil
	}

	var found []string
	for route := range index.Routes {
		r := strings.ToLower(route)
		if strings.Contains(r, "book") || strings.Contains(r, "appointment") || strings.Contains(r, "driver") {
			found = append(found, routeGroup.ReplaceAllString(route, ""))
		}
	}
	sort.Strings(found)
	return found
}

func (c *Client) candidates(discovered []string) []string {
	paths := make([]string, 0, len(discovered)+len(knownPaths)+1)
	paths = append(paths, discovered...)
	if c.customPath != "" {
		paths = append(paths, c.customPath)
	}
	paths = append(paths, knownPaths...)
	return dedupe(paths)
}

func (c *Client) singleCandidates(id string) []string {
	var urls []string
	if c.customPath != "" {
		urls = append(urls,
			c.baseURL+c.customPath+"/"+id,
			c.baseURL+c.customPath+"?id="+url.QueryEscape(id),
			c.baseURL+"/wp-json"+normalizePath(strings.TrimPrefix(strings.TrimPrefix(c.customPath, "/"), "wp-json/"))+"/"+id,
		)
	}
	for _, p := range singlePaths {
		urls = append(urls, c.baseURL+fmt.Sprintf(p, id))
	}
	return dedupe(urls)
}

// get performs one GET and classifies the response. The body is only
// returned for OK JSON responses.
func (c *Client) get(ctx context.Context, endpoint string, headers http.Header) (Attempt, []byte) {
	attempt := Attempt{URL: endpoint}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		attempt.Outcome = OutcomeTransport
		attempt.Error = err.Error()
		return attempt, nil
	}
	req.Header = headers.Clone()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		attempt.Outcome = OutcomeTransport
		attempt.Error = err.Error()
		attempt.Elapsed = time.Since(start)
		return attempt, nil
	}
	defer resp.Body.Close()

	attempt.Status = resp.StatusCode
	attempt.ContentType = resp.Header.Get("Content-Type")
	attempt.Elapsed = time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		attempt.Outcome = OutcomeHTTPError
		attempt.Error = fmt.Sprintf("HTTP error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return attempt, nil
	}
	if !isJSON(attempt.ContentType) {
		attempt.Outcome = OutcomeNotJSON
		attempt.Error = fmt.Sprintf("invalid content type: %q", attempt.ContentType)
		return attempt, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		attempt.Outcome = OutcomeTransport
		attempt.Error = err.Error()
		return attempt, nil
	}
	attempt.Outcome = OutcomeOK
	return attempt, body
}

func (a Attempt) describe() string {
	if a.Status != 0 {
		return fmt.Sprintf("%s (%d)", a.URL, a.Status)
	}
	return fmt.Sprintf("%s (%s)", a.URL, a.Error)
}

func isJSON(contentType string) bool {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(contentType, "application/json")
	}
	return media == "application/json" || strings.HasSuffix(media, "+json")
}

func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	return "/" + strings.Trim(p, "/")
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
