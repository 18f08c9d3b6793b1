package discord

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hive-resources/internal/command"
	"github.com/keshon/hive-resources/pkg/cmd"
)

type fakeRegistrar struct {
	calls   int
	guildID string
	defs    []*discordgo.ApplicationCommand
	err     error
}

func (f *fakeRegistrar) ApplicationCommandBulkOverwrite(_ string, guildID string, defs []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	f.calls++
	f.guildID = guildID
	f.defs = defs
	return defs, f.err
}

type slashStub struct{ name, desc string }

func (s *slashStub) Name() string                                   { return s.name }
func (s *slashStub) Description() string                            { return s.desc }
func (s *slashStub) Run(context.Context, *cmd.Invocation) error     { return nil }
func (s *slashStub) SlashDefinition() *discordgo.ApplicationCommand { return &discordgo.ApplicationCommand{Name: s.name, Description: s.desc} }

type plainStub struct{}

func (plainStub) Name() string                               { return "plain" }
func (plainStub) Description() string                        { return "" }
func (plainStub) Run(context.Context, *cmd.Invocation) error { return nil }

var _ command.SlashProvider = (*slashStub)(nil)

func openCache(t *testing.T) *CommandCache {
	t.Helper()
	cache, err := OpenCommandCache(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("OpenCommandCache: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func testRegistry() *cmd.Registry {
	reg := cmd.NewRegistry()
	passthrough := func(c cmd.Command) cmd.Command { return cmd.Wrap(c, c.Run) }
	reg.Register(cmd.Apply(&slashStub{name: "map", desc: "Fetch map information"}, passthrough))
	reg.Register(&slashStub{name: "model", desc: "Fetch model information"})
	reg.Register(plainStub{})
	return reg
}

func TestDefinitionsLookThroughMiddleware(t *testing.T) {
	defs := definitions(testRegistry())
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	for _, d := range defs {
		if d.Type != discordgo.ChatApplicationCommand {
			t.Errorf("%s: type %v not defaulted to chat input", d.Name, d.Type)
		}
	}
}

func TestSyncCommandsSkipsWhenUnchanged(t *testing.T) {
	cache := openCache(t)
	api := &fakeRegistrar{}
	defs := definitions(testRegistry())

	if err := syncCommands(api, cache, "app", "guild-1", defs); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if api.calls != 1 || api.guildID != "guild-1" {
		t.Fatalf("first sync should overwrite guild commands, calls=%d guild=%q", api.calls, api.guildID)
	}

	if err := syncCommands(api, cache, "app", "guild-1", definitions(testRegistry())); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if api.calls != 1 {
		t.Fatalf("unchanged definitions were pushed again")
	}

	// a different scope has its own hashes
	if err := syncCommands(api, cache, "app", "", defs); err != nil {
		t.Fatalf("global sync: %v", err)
	}
	if api.calls != 2 || api.guildID != "" {
		t.Fatalf("global scope not registered, calls=%d guild=%q", api.calls, api.guildID)
	}
}

func TestSyncCommandsPushesChanges(t *testing.T) {
	cache := openCache(t)
	api := &fakeRegistrar{}

	_ = syncCommands(api, cache, "app", "g", definitions(testRegistry()))

	changed := cmd.NewRegistry()
	changed.Register(&slashStub{name: "map", desc: "Look up a map"})
	if err := syncCommands(api, cache, "app", "g", definitions(changed)); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if api.calls != 2 {
		t.Fatalf("changed definitions not pushed, calls=%d", api.calls)
	}
}

func TestSyncCommandsFailureKeepsCache(t *testing.T) {
	cache := openCache(t)
	api := &fakeRegistrar{err: errors.New("boom")}

	if err := syncCommands(api, cache, "app", "g", definitions(testRegistry())); err == nil {
		t.Fatalf("expected an error")
	}
	if got := cache.Load(scopeName("g")); len(got) != 0 {
		t.Fatalf("failed registration was cached: %v", got)
	}
}

func TestSyncCommandsWithoutCache(t *testing.T) {
	api := &fakeRegistrar{}
	defs := definitions(testRegistry())
	for i := 0; i < 2; i++ {
		if err := syncCommands(api, nil, "app", "g", defs); err != nil {
			t.Fatalf("sync: %v", err)
		}
	}
	if api.calls != 2 {
		t.Fatalf("without a cache every sync must push, calls=%d", api.calls)
	}
}

func TestDecodeHashes(t *testing.T) {
	fromDisk := map[string]any{"map": "abc", "bad": 3}
	got := decodeHashes(fromDisk)
	if len(got) != 1 || got["map"] != "abc" {
		t.Fatalf("decodeHashes(map[string]any) = %v", got)
	}
	if got := decodeHashes("nonsense"); len(got) != 0 {
		t.Fatalf("unexpected hashes from garbage: %v", got)
	}
}
