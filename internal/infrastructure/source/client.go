package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/offerlens/backend/internal/domain"
)

// Spec describes one configured source table. The order of specs passed
// to the client is the source priority order used for registry spelling
// and offer dedup.
type Spec struct {
	Name string
	URL  string
	Kind domain.SourceKind
}

// Client fetches and parses the configured CSV source tables
type Client struct {
	httpClient  *http.Client
	specs       []Spec
	cache       domain.CacheRepository
	cacheTTL    time.Duration
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a source client. Parsed tables are cached by URL so a
// reload within the TTL does not re-fetch unchanged sources.
func NewClient(specs []Spec, cache domain.CacheRepository, cacheTTL time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		specs:       specs,
		cache:       cache,
		cacheTTL:    cacheTTL,
		rateLimiter: rate.NewLimiter(rate.Limit(5), 10),
	}
}

// SetDebug enables request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// LoadAll fetches every configured source concurrently. The join is
// best-effort: a failed source is recorded under its name in the error
// map and simply contributes no table, so one broken feed never blocks
// the rest. Returned tables keep the configured priority order.
func (c *Client) LoadAll(ctx context.Context) ([]domain.SourceTable, map[string]error) {
	type result struct {
		table domain.SourceTable
		err   error
	}

	results := make([]result, len(c.specs))
	var wg sync.WaitGroup
	for i, spec := range c.specs {
		wg.Add(1)
		go func(i int, spec Spec) {
			defer wg.Done()
			table, err := c.Load(ctx, spec)
			results[i] = result{table: table, err: err}
		}(i, spec)
	}
	wg.Wait()

	tables := make([]domain.SourceTable, 0, len(c.specs))
	errs := make(map[string]error)
	for i, spec := range c.specs {
		if results[i].err != nil {
			errs[spec.Name] = results[i].err
			continue
		}
		tables = append(tables, results[i].table)
	}
	return tables, errs
}

// Load fetches and parses one source table, consulting the cache first
func (c *Client) Load(ctx context.Context, spec Spec) (domain.SourceTable, error) {
	cacheKey := "table:" + spec.URL

	if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
		if table, ok := cached.(domain.SourceTable); ok {
			if c.debug {
				log.Printf("[SOURCE] %s served from cache (%d rows)", spec.Name, len(table.Rows))
			}
			return table, nil
		}
	}

	body, err := c.fetch(ctx, spec)
	if err != nil {
		return domain.SourceTable{}, err
	}

	rows, err := ParseTable(bytes.NewReader(body))
	if err != nil {
		return domain.SourceTable{}, fmt.Errorf("%w: %s: %v", domain.ErrSourceLoadFailure, spec.Name, err)
	}

	table := domain.SourceTable{Name: spec.Name, Kind: spec.Kind, Rows: rows}
	if err := c.cache.Set(ctx, cacheKey, table, c.cacheTTL); err != nil && c.debug {
		log.Printf("[SOURCE] %s: cache store failed: %v", spec.Name, err)
	}

	if c.debug {
		log.Printf("[SOURCE] %s loaded (%d rows)", spec.Name, len(rows))
	}
	return table, nil
}

// fetch performs the HTTP GET with rate limiting and up to 3 retries for
// transient failures
func (c *Client) fetch(ctx context.Context, spec Spec) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := c.doRequest(ctx, spec.URL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if c.debug {
			log.Printf("[SOURCE] %s attempt %d failed: %v", spec.Name, attempt, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(exponentialBackoff(attempt)):
		}
	}
	return nil, lastErr
}

// doRequest executes one HTTP GET and returns the response body
func (c *Client) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "OfferLens/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceLoadFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceLoadFailure, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// exponentialBackoff returns the delay before the next retry attempt
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(250*(1<<(attempt-1))) * time.Millisecond
}
