package discord

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/keshon/hive-resources/internal/command"
	"github.com/keshon/hive-resources/internal/config"
	"github.com/keshon/hive-resources/pkg/cmd"
)

// commandTimeout bounds a slash command after it has been deferred.
const commandTimeout = 30 * time.Second

// Bot is a Discord bot
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	registry *cmd.Registry
	cache    *CommandCache
	ctx      context.Context
	ready    atomic.Bool
}

// NewBot wires the registry to a Discord session. cache may be nil, in which
// case commands are pushed on every start.
func NewBot(cfg *config.Config, registry *cmd.Registry, cache *CommandCache) *Bot {
	return &Bot{
		cfg:      cfg,
		registry: registry,
		cache:    cache,
		ctx:      context.Background(),
	}
}

// Ready reports whether the gateway connection is up and commands are registered.
func (b *Bot) Ready() bool {
	return b.ready.Load()
}

// Run connects to Discord and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg
	b.ctx = ctx

	dg.Identify.Intents = discordgo.IntentsGuilds
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onDisconnect)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	b.ready.Store(false)
	log.Info().Msg("shutdown signal received, closing Discord session")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("connected to Discord")

	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(s); err != nil {
			log.Error().Err(err).Msg("slash command registration failed")
		}
	} else {
		log.Info().Msg("slash command registration skipped")
	}
	b.ready.Store(true)
}

func (b *Bot) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	b.ready.Store(false)
	log.Warn().Msg("disconnected from Discord gateway")
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("interaction handler panicked")
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i.Interaction)
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i.Interaction)
	default:
		log.Debug().Int("type", int(i.Type)).Msg("ignoring interaction")
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	c := b.registry.Get(data.Name)
	if c == nil {
		log.Warn().Str("command", data.Name).Msg("unknown command")
		return
	}

	userID, username := resolveUser(i)
	sc := &command.SlashInteractionContext{
		Gateway:  newGateway(s, i),
		GuildID:  i.GuildID,
		UserID:   userID,
		Username: username,
		Options:  optionValues(data.Options),
	}

	ctx, cancel := context.WithTimeout(b.ctx, commandTimeout)
	defer cancel()

	if err := c.Run(ctx, &cmd.Invocation{Data: sc}); err != nil {
		log.Error().Err(err).Str("command", data.Name).Msg("error running slash command")
	}
}

func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	c := b.registry.Get(data.Name)
	if c == nil {
		return
	}
	gw := newGateway(s, i)

	handler, ok := cmd.Root(c).(command.AutocompleteHandler)
	if !ok {
		command.SafeAutocomplete(gw, nil)
		return
	}

	focused, value := focusedOption(data.Options)
	ac := &command.AutocompleteContext{
		Gateway: gw,
		GuildID: i.GuildID,
		Focused: focused,
		Value:   value,
		Options: optionValues(data.Options),
	}

	deadline := autocompleteDeadline(i.ID, time.Now(), b.cfg.AutocompleteBudget)
	ctx, cancel := context.WithDeadline(b.ctx, deadline)
	defer cancel()

	handler.Autocomplete(ctx, ac)
}

// autocompleteDeadline counts the budget from the interaction's creation time
// when the snowflake can be read, and from receipt otherwise. The earlier of
// the two is used.
func autocompleteDeadline(interactionID string, received time.Time, budget time.Duration) time.Time {
	deadline := received.Add(budget)
	created, err := discordgo.SnowflakeTimestamp(interactionID)
	if err != nil {
		return deadline
	}
	if d := created.Add(budget); d.Before(deadline) {
		return d
	}
	return deadline
}

func resolveUser(i *discordgo.Interaction) (id, name string) {
	switch {
	case i.Member != nil && i.Member.User != nil:
		return i.Member.User.ID, i.Member.User.Username
	case i.User != nil:
		return i.User.ID, i.User.Username
	}
	return "", ""
}

func optionValues(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	out := make(map[string]string, len(opts))
	for _, o := range opts {
		if o.Value == nil {
			continue
		}
		if s, ok := o.Value.(string); ok {
			out[o.Name] = s
			continue
		}
		out[o.Name] = fmt.Sprint(o.Value)
	}
	return out
}

func focusedOption(opts []*discordgo.ApplicationCommandInteractionDataOption) (name, value string) {
	for _, o := range opts {
		if !o.Focused {
			continue
		}
		if s, ok := o.Value.(string); ok {
			return o.Name, s
		}
		return o.Name, fmt.Sprint(o.Value)
	}
	return "", ""
}
