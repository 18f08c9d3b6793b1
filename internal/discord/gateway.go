package discord

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hive-resources/internal/command"
)

// Discord JSON error codes that mean the interaction can no longer be answered.
const (
	errCodeUnknownInteraction = 10062
	errCodeAlreadyAcked       = 40060
)

// interactionAPI is the subset of *discordgo.Session used to answer interactions.
type interactionAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// interactionGateway answers a single interaction. The initial response can
// be sent once; edits are only valid after it.
type interactionGateway struct {
	api       interactionAPI
	i         *discordgo.Interaction
	responded atomic.Bool
}

var _ command.Gateway = (*interactionGateway)(nil)

func newGateway(api interactionAPI, i *discordgo.Interaction) *interactionGateway {
	return &interactionGateway{api: api, i: i}
}

func (g *interactionGateway) respond(resp *discordgo.InteractionResponse) error {
	if !g.responded.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: already answered", command.ErrStaleInteraction)
	}
	return translate(g.api.InteractionRespond(g.i, resp))
}

func (g *interactionGateway) Autocomplete(choices []*discordgo.ApplicationCommandOptionChoice) error {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	return g.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}

func (g *interactionGateway) Defer() error {
	return g.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (g *interactionGateway) RespondEphemeral(content string) error {
	return g.respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (g *interactionGateway) EditContent(content string) error {
	empty := []*discordgo.MessageEmbed{}
	return g.edit(&discordgo.WebhookEdit{Content: &content, Embeds: &empty})
}

func (g *interactionGateway) EditEmbed(embed *discordgo.MessageEmbed) error {
	content := ""
	embeds := []*discordgo.MessageEmbed{embed}
	return g.edit(&discordgo.WebhookEdit{Content: &content, Embeds: &embeds})
}

func (g *interactionGateway) edit(e *discordgo.WebhookEdit) error {
	if !g.responded.Load() {
		return errors.New("edit before the interaction was acknowledged")
	}
	_, err := g.api.InteractionResponseEdit(g.i, e)
	return translate(err)
}

// translate maps Discord's "this interaction is gone" errors onto
// command.ErrStaleInteraction and leaves everything else untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isDiscordErrorCode(err, errCodeUnknownInteraction) || isDiscordErrorCode(err, errCodeAlreadyAcked) {
		return fmt.Errorf("%w: %v", command.ErrStaleInteraction, err)
	}
	return err
}

func isDiscordErrorCode(err error, code int) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == code
	}
	return false
}
