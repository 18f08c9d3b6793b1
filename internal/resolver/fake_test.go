package resolver

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/keshon/hive-resources/internal/catalog"
)

// fakeCatalog serves canned data and records the raw category labels it was asked for.
type fakeCatalog struct {
	categories []string
	items      map[string][]string
	details    map[string]*catalog.ItemDetail

	categoriesErr error
	itemsErr      error
	detailErr     error

	mu             sync.Mutex
	categoryCalls  int
	itemCategories []string
}

func (f *fakeCatalog) Name() string { return "Fake API" }

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	f.categoryCalls++
	f.mu.Unlock()
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return append([]string(nil), f.categories...), nil
}

func (f *fakeCatalog) ListItems(ctx context.Context, category string) ([]catalog.ItemSummary, error) {
	f.mu.Lock()
	f.itemCategories = append(f.itemCategories, category)
	f.mu.Unlock()
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	var out []catalog.ItemSummary
	for _, name := range f.items[category] {
		out = append(out, catalog.ItemSummary{Name: name})
	}
	return out, nil
}

func (f *fakeCatalog) FetchItem(ctx context.Context, category, item string) (*catalog.ItemDetail, error) {
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	d, ok := f.details[category+"/"+item]
	if !ok {
		return nil, fmt.Errorf("fetch: %w", catalog.ErrNotFound)
	}
	return d, nil
}

func manyNames(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %02d", prefix, i)
	}
	return out
}

func newFake() *fakeCatalog {
	return &fakeCatalog{
		categories: []string{"PvP - Arena", "Build", "Sky Wars — Solo"},
		items: map[string][]string{
			"PvP - Arena":     {"Colosseum", "Pit", "Arena Classic"},
			"Build":           manyNames("Castle", 40),
			"Sky Wars — Solo": {strings.Repeat("x", 101), "Islands"},
		},
		details: map[string]*catalog.ItemDetail{
			"PvP - Arena/Pit": {
				Category:    "PvP - Arena",
				Name:        "Pit",
				DownloadURL: "https://dl/pit.zip",
				ImageURL:    "https://img/pit.png",
			},
			"Sky Wars — Solo/Islands": {
				DownloadURL: "https://dl/islands.glb",
				Format:      "glb",
			},
		},
	}
}
