package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/keshon/hive-resources/internal/catalog"
	"github.com/keshon/hive-resources/internal/label"
	"github.com/rs/zerolog/log"
)

// Entry is a resolved catalog item, ready to render.
type Entry struct {
	Kind        string
	Category    string // display form
	Name        string
	DownloadURL string
	ImageURL    string
	ViewerURL   string
	Format      string
}

// Result is either an Entry or a user-facing error message.
type Result struct {
	Entry   *Entry
	Message string
	Err     error
}

// OK reports whether the lookup produced an entry.
func (r Result) OK() bool { return r.Entry != nil }

// Resolve looks up the item named by fully specified command fields. Category
// labels are normalized against a fresh listing, never a cached one.
func (r *Resolver) Resolve(ctx context.Context, category, item string) Result {
	raw, err := r.backendCategory(ctx, category)
	if err != nil {
		return r.failure(err)
	}

	d, err := r.catalog.FetchItem(ctx, raw, item)
	if err != nil {
		return r.failure(err)
	}

	e := &Entry{
		Kind:        r.opts.Kind,
		Category:    label.ToDisplay(firstNonEmpty(d.Category, raw)),
		Name:        firstNonEmpty(d.Name, item),
		DownloadURL: d.DownloadURL,
		ImageURL:    d.ImageURL,
		ViewerURL:   d.ViewerURL,
		Format:      d.Format,
	}
	if e.ViewerURL == "" && r.opts.ViewerBase != "" {
		v, err := r.opts.ViewerScheme.ViewerURL(r.opts.ViewerBase, raw, item)
		if err != nil {
			log.Warn().Err(err).Msg("could not build viewer link")
		} else {
			e.ViewerURL = v
		}
	}
	return Result{Entry: e}
}

func (r *Resolver) failure(err error) Result {
	var apiErr *catalog.APIError
	switch {
	case errors.As(err, &apiErr):
		return Result{Message: "❌ " + apiErr.Message, Err: err}
	case errors.Is(err, catalog.ErrNotFound):
		return Result{Message: fmt.Sprintf("❌ %s not found.", capitalize(r.opts.Kind)), Err: err}
	default:
		return Result{Message: fmt.Sprintf("❌ Error contacting %s.", r.catalog.Name()), Err: err}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
