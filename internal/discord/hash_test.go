package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func sampleDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		ID:          "111",
		Version:     "1",
		Name:        "map",
		Description: "Fetch map information",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "gamemode", Description: "Gamemode", Required: true, Autocomplete: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "map", Description: "Map", Required: true, Autocomplete: true},
		},
	}
}

func TestHashIgnoresServerFields(t *testing.T) {
	a := sampleDef()
	b := sampleDef()
	b.ID = "222"
	b.Version = "9"
	if hashCommand(a) != hashCommand(b) {
		t.Fatalf("hash changed with server-assigned fields")
	}
}

func TestHashTracksDefinition(t *testing.T) {
	base := hashCommand(sampleDef())

	desc := sampleDef()
	desc.Options[1].Description = "Map name"
	if hashCommand(desc) == base {
		t.Errorf("option description change not detected")
	}

	ac := sampleDef()
	ac.Options[0].Autocomplete = false
	if hashCommand(ac) == base {
		t.Errorf("autocomplete flag change not detected")
	}

	order := sampleDef()
	order.Options[0], order.Options[1] = order.Options[1], order.Options[0]
	if hashCommand(order) == base {
		t.Errorf("option order change not detected")
	}
}

func TestEqualHashes(t *testing.T) {
	a := map[string]string{"map": "1", "model": "2"}
	if !equalHashes(a, map[string]string{"model": "2", "map": "1"}) {
		t.Errorf("equal maps reported different")
	}
	if equalHashes(a, map[string]string{"map": "1"}) {
		t.Errorf("missing command not detected")
	}
	if equalHashes(a, map[string]string{"map": "1", "model": "3"}) {
		t.Errorf("changed hash not detected")
	}
	if got := sortedNames(a); len(got) != 2 || got[0] != "map" {
		t.Errorf("sortedNames = %v", got)
	}
}
