// Package resolver turns partially typed or fully validated command fields
// into catalog lookups: candidate lists while the user types, and a concrete
// entry once the command is sent.
package resolver

import (
	"github.com/keshon/hive-resources/internal/catalog"
)

const (
	// MaxChoices is the platform's cap on autocomplete candidates.
	MaxChoices = 25
	// maxChoiceLen is the platform's cap on a choice name or value, in runes.
	maxChoiceLen = 100
)

// Options configures a Resolver.
type Options struct {
	// Kind names the item in user messages: "map" or "model".
	Kind string
	// MaxChoices defaults to MaxChoices.
	MaxChoices int
	// ViewerBase, when set, is the catalog endpoint the 3D viewer link is built from.
	ViewerBase string
	// ViewerScheme names the viewer's query parameters.
	ViewerScheme catalog.Scheme
}

// Resolver is stateless: every call fetches fresh catalog data, so concurrent
// interactions never share results.
type Resolver struct {
	catalog catalog.Catalog
	opts    Options
}

// New returns a Resolver over c.
func New(c catalog.Catalog, opts Options) *Resolver {
	if opts.MaxChoices <= 0 || opts.MaxChoices > MaxChoices {
		opts.MaxChoices = MaxChoices
	}
	if opts.Kind == "" {
		opts.Kind = "item"
	}
	return &Resolver{catalog: c, opts: opts}
}

// Kind returns the item kind this resolver serves.
func (r *Resolver) Kind() string { return r.opts.Kind }

// CatalogName returns the user-facing name of the backing catalog.
func (r *Resolver) CatalogName() string { return r.catalog.Name() }
