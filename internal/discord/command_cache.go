package discord

import (
	"fmt"

	"github.com/keshon/datastore"
)

// CommandCache remembers the definition hashes last pushed to Discord, per
// registration scope, so restarts with unchanged commands skip the API call.
type CommandCache struct {
	ds *datastore.DataStore
}

// OpenCommandCache opens (or creates) the JSON store at path.
func OpenCommandCache(path string) (*CommandCache, error) {
	ds, err := datastore.New(path)
	if err != nil {
		return nil, fmt.Errorf("open command cache %s: %w", path, err)
	}
	return &CommandCache{ds: ds}, nil
}

func cacheKey(scope string) string {
	return "commands:" + scope
}

// Load returns the stored hashes for scope, or an empty map.
func (c *CommandCache) Load(scope string) map[string]string {
	if c == nil {
		return map[string]string{}
	}
	v, ok := c.ds.Get(cacheKey(scope))
	if !ok {
		return map[string]string{}
	}
	return decodeHashes(v)
}

// Save replaces the stored hashes for scope and flushes them to disk.
func (c *CommandCache) Save(scope string, hashes map[string]string) error {
	if c == nil {
		return nil
	}
	cp := make(map[string]string, len(hashes))
	for k, v := range hashes {
		cp[k] = v
	}
	c.ds.Add(cacheKey(scope), cp)
	return c.ds.SaveToFile()
}

// Forget drops the stored hashes for scope.
func (c *CommandCache) Forget(scope string) {
	if c == nil {
		return
	}
	c.ds.Delete(cacheKey(scope))
}

func (c *CommandCache) Close() error {
	if c == nil {
		return nil
	}
	return c.ds.Close()
}

// decodeHashes accepts both the in-memory form and what comes back from the
// JSON file after a restart.
func decodeHashes(v any) map[string]string {
	out := map[string]string{}
	switch t := v.(type) {
	case map[string]string:
		for k, h := range t {
			out[k] = h
		}
	case map[string]any:
		for k, h := range t {
			if s, ok := h.(string); ok {
				out[k] = s
			}
		}
	}
	return out
}
