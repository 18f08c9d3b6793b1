package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/hive-resources/internal/catalog"
	"github.com/keshon/hive-resources/internal/resolver"
	"github.com/keshon/hive-resources/pkg/cmd"
	"github.com/rs/zerolog/log"
)

// GamemodeOption is the category option every resource command shares.
const GamemodeOption = "gamemode"

// ResourceCommand is a two-field lookup command: /map and /model.
type ResourceCommand struct {
	name        string
	description string
	itemOption  string
	itemDesc    string
	resolver    *resolver.Resolver
}

var (
	_ cmd.Command         = (*ResourceCommand)(nil)
	_ SlashProvider       = (*ResourceCommand)(nil)
	_ AutocompleteHandler = (*ResourceCommand)(nil)
)

// NewMapCommand returns /map over the maps catalog.
func NewMapCommand(r *resolver.Resolver) *ResourceCommand {
	return &ResourceCommand{
		name:        "map",
		description: "Fetch a Hive Resources map download",
		itemOption:  "map",
		itemDesc:    "Map name",
		resolver:    r,
	}
}

// NewModelCommand returns /model over the models catalog.
func NewModelCommand(r *resolver.Resolver) *ResourceCommand {
	return &ResourceCommand{
		name:        "model",
		description: "Fetch a Hive Resources model (entity or item)",
		itemOption:  "model",
		itemDesc:    "Model name",
		resolver:    r,
	}
}

func (c *ResourceCommand) Name() string        { return c.name }
func (c *ResourceCommand) Description() string { return c.description }

// ItemOption is the name of the item option, "map" or "model".
func (c *ResourceCommand) ItemOption() string { return c.itemOption }

func (c *ResourceCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         GamemodeOption,
				Description:  "Gamemode",
				Required:     true,
				Autocomplete: true,
			},
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         c.itemOption,
				Description:  c.itemDesc,
				Required:     true,
				Autocomplete: true,
			},
		},
	}
}

// Run defers before touching the network: two catalog round-trips can take
// longer than the immediate-response window.
func (c *ResourceCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	sc, ok := inv.Data.(*SlashInteractionContext)
	if !ok {
		return nil
	}

	if err := sc.Gateway.Defer(); err != nil {
		if errors.Is(err, ErrStaleInteraction) {
			return nil
		}
		return fmt.Errorf("defer /%s: %w", c.name, err)
	}

	res := c.resolver.Resolve(ctx, sc.Options[GamemodeOption], sc.Options[c.itemOption])

	var err error
	if res.OK() {
		err = sc.Gateway.EditEmbed(BuildEmbed(res.Entry))
	} else {
		if !errors.Is(res.Err, catalog.ErrNotFound) {
			log.Warn().Err(res.Err).Str("command", c.name).Msg("catalog lookup failed")
		}
		err = sc.Gateway.EditContent(res.Message)
	}
	if err != nil && !errors.Is(err, ErrStaleInteraction) {
		return fmt.Errorf("edit /%s reply: %w", c.name, err)
	}
	return nil
}

// Autocomplete answers within the deadline carried by ctx. A result that
// arrives after the deadline is dropped: the platform would reject it anyway.
func (c *ResourceCommand) Autocomplete(ctx context.Context, ac *AutocompleteContext) {
	q := resolver.Query{Partial: ac.Value, Category: ac.Options[GamemodeOption]}
	switch ac.Focused {
	case GamemodeOption:
		q.Focused = resolver.FieldCategory
	case c.itemOption:
		q.Focused = resolver.FieldItem
	default:
		SafeAutocomplete(ac.Gateway, nil)
		return
	}

	choices := c.resolver.Suggest(ctx, q)
	if ctx.Err() != nil {
		log.Debug().Str("command", c.name).Str("field", ac.Focused).Msg("autocomplete deadline passed, response dropped")
		return
	}
	SafeAutocomplete(ac.Gateway, toDiscordChoices(choices))
}

// SafeAutocomplete responds and swallows stale-interaction errors. Any other
// failure is logged; autocomplete has no caller to report to.
func SafeAutocomplete(gw Gateway, choices []*discordgo.ApplicationCommandOptionChoice) {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	err := gw.Autocomplete(choices)
	if err == nil || errors.Is(err, ErrStaleInteraction) {
		return
	}
	log.Warn().Err(err).Msg("failed to respond to autocomplete")
}
