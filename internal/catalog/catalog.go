// Package catalog talks to the remote Hive Resources catalogs. Each catalog
// generation names its query parameters differently; a Scheme captures that.
package catalog

import (
	"context"
	"errors"
	"fmt"
)

// Catalog is the read-only contract the resolvers depend on. Category values
// passed in are always raw backend labels.
type Catalog interface {
	Name() string
	ListCategories(ctx context.Context) ([]string, error)
	ListItems(ctx context.Context, category string) ([]ItemSummary, error)
	FetchItem(ctx context.Context, category, item string) (*ItemDetail, error)
}

// ItemSummary is one entry of an item listing.
type ItemSummary struct {
	Name string
}

// ItemDetail describes one downloadable resource.
type ItemDetail struct {
	Category    string
	Name        string
	DownloadURL string
	ImageURL    string
	ViewerURL   string
	Format      string
}

var (
	// ErrNotFound means the catalog answered but has no such category or item.
	ErrNotFound = errors.New("catalog: not found")
	// ErrMalformed means the response body did not have any known shape.
	ErrMalformed = errors.New("catalog: malformed response")
)

// APIError is a logical error the catalog reported as {"error": "..."}.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return "catalog: " + e.Message }

// Is makes a reported error match ErrNotFound: the catalogs use it for
// unknown gamemodes and items alike.
func (e *APIError) Is(target error) bool { return target == ErrNotFound }

// StatusError is a non-200 HTTP answer.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog: unexpected status %d from %s", e.Code, e.URL)
}

// StatusCode lets retrylimit classify the error.
func (e *StatusError) StatusCode() int { return e.Code }
