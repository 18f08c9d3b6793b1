package discord

import (
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

// snowflake builds an ID whose embedded timestamp is ts.
func snowflake(ts time.Time) string {
	ms := ts.UnixMilli() - 1420070400000
	return strconv.FormatInt(ms<<22, 10)
}

func TestAutocompleteDeadline(t *testing.T) {
	budget := 2500 * time.Millisecond
	now := time.Now().Truncate(time.Millisecond)

	// created a second before we received it: budget counts from creation
	created := now.Add(-time.Second)
	got := autocompleteDeadline(snowflake(created), now, budget)
	if want := created.Add(budget); !got.Equal(want) {
		t.Errorf("deadline = %v, want %v", got, want)
	}

	// a creation time in the future (clock skew) never extends the window
	future := now.Add(time.Minute)
	got = autocompleteDeadline(snowflake(future), now, budget)
	if want := now.Add(budget); !got.Equal(want) {
		t.Errorf("skewed deadline = %v, want %v", got, want)
	}

	got = autocompleteDeadline("not-a-snowflake", now, budget)
	if want := now.Add(budget); !got.Equal(want) {
		t.Errorf("fallback deadline = %v, want %v", got, want)
	}
}

func TestOptionValues(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "gamemode", Type: discordgo.ApplicationCommandOptionString, Value: "pvp: arena"},
		{Name: "map", Type: discordgo.ApplicationCommandOptionString, Value: "Dust", Focused: true},
		{Name: "count", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
		{Name: "empty"},
	}

	got := optionValues(opts)
	if got["gamemode"] != "pvp: arena" || got["map"] != "Dust" || got["count"] != "3" {
		t.Fatalf("optionValues = %v", got)
	}
	if _, ok := got["empty"]; ok {
		t.Fatalf("option without a value was kept")
	}

	name, value := focusedOption(opts)
	if name != "map" || value != "Dust" {
		t.Fatalf("focusedOption = %q %q", name, value)
	}
	if name, _ := focusedOption(opts[:1]); name != "" {
		t.Fatalf("no focused option expected, got %q", name)
	}
}

func TestResolveUser(t *testing.T) {
	guild := &discordgo.Interaction{Member: &discordgo.Member{User: &discordgo.User{ID: "1", Username: "ann"}}}
	if id, name := resolveUser(guild); id != "1" || name != "ann" {
		t.Errorf("guild user = %q %q", id, name)
	}
	dm := &discordgo.Interaction{User: &discordgo.User{ID: "2", Username: "bob"}}
	if id, name := resolveUser(dm); id != "2" || name != "bob" {
		t.Errorf("dm user = %q %q", id, name)
	}
	if id, _ := resolveUser(&discordgo.Interaction{}); id != "" {
		t.Errorf("expected no user, got %q", id)
	}
}
