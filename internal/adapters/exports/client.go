// internal/adapters/exports/client.go
package exports

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"terminal_plus/internal/domain"
)

// Client talks to the amenity export service: per-terminal JSON
// exports, bulk CSV dumps, and brand definition feeds.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API (tries modern endpoints first, falls back to legacy variants) ----

func (c *Client) GetTerminalExport(ctx context.Context, terminal string) ([]map[string]any, error) {
	t := url.PathEscape(terminal)
	candidates := []string{
		fmt.Sprintf("%s/exports/terminals/%s/amenities", c.base, t), // preferred
		fmt.Sprintf("%s/terminals/%s/amenities", c.base, t),         // legacy
	}
	var out []map[string]any
	return out, c.getFirstJSON(ctx, candidates, &out)
}

func (c *Client) GetBulkCSV(ctx context.Context, name string) ([]map[string]string, error) {
	n := url.PathEscape(name)
	candidates := []string{
		fmt.Sprintf("%s/exports/csv/%s", c.base, n), // preferred
		fmt.Sprintf("%s/csv/%s", c.base, n),         // legacy
	}
	raw, err := c.getFirstRaw(ctx, candidates)
	if err != nil {
		return nil, err
	}
	return parseCSVRows(raw)
}

func (c *Client) GetBrandDefinitions(ctx context.Context, feed string) ([]domain.BrandDefinition, error) {
	f := url.PathEscape(feed)
	candidates := []string{
		fmt.Sprintf("%s/exports/brands/%s", c.base, f), // preferred
		fmt.Sprintf("%s/brands/%s", c.base, f),         // legacy
	}
	var out []domain.BrandDefinition
	return out, c.getFirstJSON(ctx, candidates, &out)
}

// parseCSVRows turns a CSV document into one map per data row, keyed by
// the header line. Short rows are padded with empty strings rather than
// rejected; the adapter downstream decides what is usable.
func parseCSVRows(raw []byte) ([]map[string]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1 // ragged exports are common
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", len(rows)+2, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ---- Internals ----

var (
	ErrNotFound     = errors.New("exports: not found")
	ErrUnauthorized = errors.New("exports: unauthorized")
	ErrForbidden    = errors.New("exports: forbidden")
)

func (c *Client) getFirstJSON(ctx context.Context, urls []string, out any) error {
	return c.getFirst(ctx, urls, func(body []byte) error {
		return json.Unmarshal(body, out)
	})
}

func (c *Client) getFirstRaw(ctx context.Context, urls []string) ([]byte, error) {
	var raw []byte
	err := c.getFirst(ctx, urls, func(body []byte) error {
		raw = body
		return nil
	})
	return raw, err
}

func (c *Client) getFirst(ctx context.Context, urls []string, decode func([]byte) error) error {
	var last error
	for _, u := range urls {
		if err := c.get(ctx, u, decode); err != nil {
			if errors.Is(err, ErrNotFound) {
				last = err
				continue // try next pattern
			}
			return err // non-404: stop early
		}
		return nil // success
	}
	if last != nil {
		return last
	}
	return errors.New("no candidate URL succeeded")
}

// get performs a GET with client-side rate limiting and retries, then
// hands the body to decode. Retries on 429 and transient 5xx, honoring
// Retry-After when provided.
func (c *Client) get(ctx context.Context, url string, decode func([]byte) error) error {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		if c.key != "" {
			req.Header.Set("X-API-Key", c.key)
		}
		req.Header.Set("Accept", "application/json, text/csv")
		req.Header.Set("User-Agent", "terminal-plus/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			// network error or context canceled
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			// context-aware sleep before retry
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			// no more retries or context canceled
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return err
			}
			return decode(body)

		case http.StatusNoContent:
			// success, empty body
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			// read a small error body for diagnostics
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay with concurrency-safe jitter.
// i = retry attempt (0,1,2,...). Base doubles each attempt (200ms, 400ms, 800ms...),
// with up to +50% random jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	// concurrency-safe jitter using crypto/rand
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0                  // 0..1
	j := time.Duration(0.5 * f * float64(base)) // up to +50%
	return base + j
}
