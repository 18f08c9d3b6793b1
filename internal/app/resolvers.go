// Package app builds the catalog clients and resolvers both binaries share.
package app

import (
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/keshon/hive-resources/internal/catalog"
	"github.com/keshon/hive-resources/internal/config"
	"github.com/keshon/hive-resources/internal/resolver"
	"github.com/keshon/hive-resources/pkg/retrylimit"
)

const (
	KindMap   = "map"
	KindModel = "model"

	mapCatalogName   = "Hive Resources API"
	modelCatalogName = "Hive Models API"
)

// Resolvers holds one resolver per configured catalog. A field is nil when
// its base URL is not configured.
type Resolvers struct {
	Maps   *resolver.Resolver
	Models *resolver.Resolver
}

// ByKind returns the resolver for "map" or "model".
func (r *Resolvers) ByKind(kind string) (*resolver.Resolver, error) {
	var res *resolver.Resolver
	switch kind {
	case KindMap:
		res = r.Maps
	case KindModel:
		res = r.Models
	default:
		return nil, fmt.Errorf("unknown kind %q, want %q or %q", kind, KindMap, KindModel)
	}
	if res == nil {
		return nil, fmt.Errorf("no catalog configured for %s", kind)
	}
	return res, nil
}

// BuildResolvers creates the catalog clients from cfg. Both catalogs share
// one HTTP client and one adaptive limiter.
func BuildResolvers(cfg *config.Config) (*Resolvers, error) {
	if cfg.MapAPIURL == "" && cfg.ModelsAPIURL == "" {
		return nil, errors.New("neither HIVE_API_URL nor HIVE_MODELS_API_URL is set")
	}

	hc, err := catalog.NewHTTPClient(cfg.CatalogTimeout, cfg.CatalogProxy)
	if err != nil {
		return nil, err
	}
	limit := rate.Limit(cfg.CatalogRate)
	lim := retrylimit.NewAdaptiveLimiter(limit, 1, limit*4, 1, 0.5)

	retry := retrylimit.DefaultConfig()
	retry.MaxAttempts = cfg.CatalogRetries

	out := &Resolvers{}

	if cfg.MapAPIURL != "" {
		c, err := catalog.New(catalog.Options{
			Name:       mapCatalogName,
			BaseURL:    cfg.MapAPIURL,
			Scheme:     catalog.MapScheme,
			HTTPClient: hc,
			Limiter:    lim,
			Retry:      retry,
		})
		if err != nil {
			return nil, fmt.Errorf("maps catalog: %w", err)
		}
		out.Maps = resolver.New(c, resolver.Options{Kind: KindMap})
	}

	if cfg.ModelsAPIURL != "" {
		scheme, err := catalog.ModelSchemeByName(cfg.ModelsScheme)
		if err != nil {
			return nil, err
		}
		c, err := catalog.New(catalog.Options{
			Name:       modelCatalogName,
			BaseURL:    cfg.ModelsAPIURL,
			Scheme:     scheme,
			HTTPClient: hc,
			Limiter:    lim,
			Retry:      retry,
		})
		if err != nil {
			return nil, fmt.Errorf("models catalog: %w", err)
		}
		out.Models = resolver.New(c, resolver.Options{
			Kind:         KindModel,
			ViewerBase:   cfg.ModelsAPIURL,
			ViewerScheme: scheme,
		})
	}

	return out, nil
}
