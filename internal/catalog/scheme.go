package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

// Scheme describes one catalog generation's query parameters.
type Scheme struct {
	Name string

	Categories url.Values // fixed params of the category listing
	Items      url.Values // fixed params of the item listing
	Item       url.Values // fixed params of the item detail

	CategoryParam string
	ItemParam     string
}

// MapScheme is the maps catalog: ?api=gamemodes, ?api=maps&gamemode=, ?api=map&gamemode=&map=.
var MapScheme = Scheme{
	Name:          "maps",
	Categories:    url.Values{"api": {"gamemodes"}},
	Items:         url.Values{"api": {"maps"}},
	Item:          url.Values{"api": {"map"}},
	CategoryParam: "gamemode",
	ItemParam:     "map",
}

// ModelScheme is the current models catalog: ?mode=json, ?mode=json&game=, ?mode=json&game=&open=.
var ModelScheme = Scheme{
	Name:          "json",
	Categories:    url.Values{"mode": {"json"}},
	Items:         url.Values{"mode": {"json"}},
	Item:          url.Values{"mode": {"json"}},
	CategoryParam: "game",
	ItemParam:     "open",
}

// LegacyModelScheme is the older models catalog that mirrored the maps API.
var LegacyModelScheme = Scheme{
	Name:          "api",
	Categories:    url.Values{"api": {"gamemodes"}},
	Items:         url.Values{"api": {"models"}},
	Item:          url.Values{"api": {"model"}},
	CategoryParam: "gamemode",
	ItemParam:     "model",
}

// ModelSchemeByName picks the models catalog generation from configuration.
func ModelSchemeByName(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ModelScheme.Name:
		return ModelScheme, nil
	case LegacyModelScheme.Name:
		return LegacyModelScheme, nil
	default:
		return Scheme{}, fmt.Errorf("unknown models catalog scheme %q", name)
	}
}

func (s Scheme) categoriesQuery() url.Values {
	return cloneValues(s.Categories)
}

func (s Scheme) itemsQuery(category string) url.Values {
	q := cloneValues(s.Items)
	q.Set(s.CategoryParam, category)
	return q
}

func (s Scheme) itemQuery(category, item string) url.Values {
	q := cloneValues(s.Item)
	q.Set(s.CategoryParam, category)
	q.Set(s.ItemParam, item)
	return q
}

// ViewerURL builds the 3D viewer link for an item: the catalog endpoint with
// its "/exec" path suffix removed, queried by category and item.
func (s Scheme) ViewerURL(base, category, item string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse viewer base: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/exec")
	u.RawPath = ""
	q := url.Values{}
	q.Set(s.CategoryParam, category)
	q.Set(s.ItemParam, item)
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String(), nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v)+2)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
