package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/keshon/hive-resources/pkg/retrylimit"
	"github.com/rs/zerolog/log"
)

// maxBodySize caps a catalog response; listings are a few KB.
const maxBodySize = 4 << 20

// Options configures a Client.
type Options struct {
	Name       string // shown to users, e.g. "Hive Resources API"
	BaseURL    string
	Scheme     Scheme
	HTTPClient *http.Client
	Limiter    *retrylimit.AdaptiveLimiter // may be nil
	Retry      retrylimit.Config
}

// Client is the HTTP implementation of Catalog. It keeps no catalog data
// between calls and is safe for concurrent use.
type Client struct {
	name    string
	base    *url.URL
	scheme  Scheme
	http    *http.Client
	limiter *retrylimit.AdaptiveLimiter
	retry   retrylimit.Config
}

var _ Catalog = (*Client)(nil)

// New validates opts and returns a Client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("catalog base URL is empty")
	}
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("catalog base URL %q must be http or https", opts.BaseURL)
	}
	if opts.Scheme.CategoryParam == "" || opts.Scheme.ItemParam == "" {
		return nil, errors.New("catalog scheme is incomplete")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	name := opts.Name
	if name == "" {
		name = base.Host
	}
	if opts.Retry.MaxAttempts < 1 {
		opts.Retry.MaxAttempts = 1
	}

	return &Client{
		name:    name,
		base:    base,
		scheme:  opts.Scheme,
		http:    hc,
		limiter: opts.Limiter,
		retry:   opts.Retry,
	}, nil
}

// Name returns the user-facing catalog name.
func (c *Client) Name() string { return c.name }

// Scheme returns the parameter scheme the client speaks.
func (c *Client) Scheme() Scheme { return c.scheme }

// BaseURL returns the configured endpoint.
func (c *Client) BaseURL() string { return c.base.String() }

// ListCategories returns the raw gamemode labels in catalog order.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	err := c.get(ctx, c.scheme.categoriesQuery(), func(body []byte) (err error) {
		out, err = decodeCategories(body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

// ListItems returns the items of a raw gamemode label in catalog order.
func (c *Client) ListItems(ctx context.Context, category string) ([]ItemSummary, error) {
	var out []ItemSummary
	err := c.get(ctx, c.scheme.itemsQuery(category), func(body []byte) (err error) {
		out, err = decodeItems(body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list items of %q: %w", category, err)
	}
	return out, nil
}

// FetchItem returns one item's detail. Missing items yield ErrNotFound or an
// *APIError.
func (c *Client) FetchItem(ctx context.Context, category, item string) (*ItemDetail, error) {
	var out *ItemDetail
	err := c.get(ctx, c.scheme.itemQuery(category, item), func(body []byte) (err error) {
		out, err = decodeDetail(body)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %q/%q: %w", category, item, err)
	}
	return out, nil
}

// get performs the GET with retries. Decode failures and logical errors are
// answers, not outages, so they are never retried.
func (c *Client) get(ctx context.Context, query url.Values, decode func([]byte) error) error {
	u := *c.base
	merged := u.Query()
	for k, v := range query {
		merged[k] = v
	}
	u.RawQuery = merged.Encode()
	target := u.String()

	return retrylimit.Do(ctx, c.limiter, c.retry, func() error {
		body, err := c.fetch(ctx, target)
		if err != nil {
			if ctx.Err() != nil {
				return retrylimit.Fatal(err)
			}
			return err
		}
		return retrylimit.Fatal(decode(body))
	})
}

func (c *Client) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, retrylimit.Fatal(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", c.name, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("catalog", c.name).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("catalog request")

	if resp.StatusCode != http.StatusOK {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		serr := &StatusError{Code: resp.StatusCode, URL: c.base.Redacted()}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return nil, serr
		}
		return nil, retrylimit.Fatal(serr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.name, err)
	}
	return body, nil
}
