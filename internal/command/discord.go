package command

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"
)

// Discord-specific contexts (what the adapter puts into cmd.Invocation.Data).

// SlashInteractionContext is a submitted slash command with validated options.
type SlashInteractionContext struct {
	Gateway  Gateway
	GuildID  string
	UserID   string
	Username string
	Options  map[string]string
}

// AutocompleteContext is one autocomplete round.
type AutocompleteContext struct {
	Gateway Gateway
	GuildID string
	Focused string            // name of the option being typed into
	Value   string            // what has been typed so far
	Options map[string]string // every option with a value, the focused one included
}

// Providers: how a command is registered and served by the Discord adapter.

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// AutocompleteHandler answers autocomplete rounds. It must respond through
// the gateway at most once and must not fail.
type AutocompleteHandler interface {
	Autocomplete(ctx context.Context, ac *AutocompleteContext)
}

// ErrStaleInteraction is returned by a Gateway when the platform no longer
// accepts a response: the interaction expired or was already answered.
var ErrStaleInteraction = errors.New("interaction is no longer valid")

// Gateway is the per-interaction response surface. The Discord adapter
// builds one for every event; nothing is shared between interactions.
type Gateway interface {
	// Autocomplete answers an autocomplete round.
	Autocomplete(choices []*discordgo.ApplicationCommandOptionChoice) error
	// Defer acknowledges a command and extends the response window.
	Defer() error
	// EditContent replaces the deferred reply with text.
	EditContent(content string) error
	// EditEmbed replaces the deferred reply with an embed.
	EditEmbed(embed *discordgo.MessageEmbed) error
	// RespondEphemeral answers immediately, visible to the invoker only.
	RespondEphemeral(content string) error
}
