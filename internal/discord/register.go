package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/keshon/hive-resources/internal/command"
	"github.com/keshon/hive-resources/internal/config"
	"github.com/keshon/hive-resources/pkg/cmd"
)

// commandRegistrar is the subset of *discordgo.Session used for registration.
type commandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

func (b *Bot) registerCommands(s *discordgo.Session) error {
	appID := b.cfg.DiscordClientID
	if appID == "" && s.State != nil && s.State.User != nil {
		appID = s.State.User.ID
	}
	if appID == "" {
		return fmt.Errorf("application ID unknown")
	}
	guildID := ""
	if b.cfg.GuildScoped() {
		guildID = b.cfg.DiscordGuildID
	}
	return syncCommands(s, b.cache, appID, guildID, definitions(b.registry))
}

// syncCommands overwrites the command set for guildID (global when empty)
// unless the cache shows the same definitions were already pushed.
func syncCommands(api commandRegistrar, cache *CommandCache, appID, guildID string, defs []*discordgo.ApplicationCommand) error {
	scope := scopeName(guildID)
	wanted := hashDefinitions(defs)

	if equalHashes(cache.Load(scope), wanted) {
		log.Info().Str("scope", scope).Int("commands", len(defs)).Msg("slash commands unchanged, registration skipped")
		return nil
	}

	if _, err := api.ApplicationCommandBulkOverwrite(appID, guildID, defs); err != nil {
		return fmt.Errorf("overwrite commands for %s: %w", scope, err)
	}
	log.Info().Str("scope", scope).Strs("commands", sortedNames(wanted)).Msg("slash commands registered")

	if err := cache.Save(scope, wanted); err != nil {
		log.Warn().Err(err).Msg("failed to store command hashes")
	}
	return nil
}

func scopeName(guildID string) string {
	if guildID == "" {
		return config.ScopeGlobal
	}
	return config.ScopeGuild + ":" + guildID
}

// definitions collects the slash definitions of every registered command.
// Middleware wrappers are looked through to the underlying command.
func definitions(registry *cmd.Registry) []*discordgo.ApplicationCommand {
	var defs []*discordgo.ApplicationCommand
	for _, c := range registry.GetAll() {
		sp, ok := cmd.Root(c).(command.SlashProvider)
		if !ok {
			continue
		}
		def := sp.SlashDefinition()
		if def == nil {
			continue
		}
		if def.Type == 0 {
			def.Type = discordgo.ChatApplicationCommand
		}
		defs = append(defs, def)
	}
	return defs
}
