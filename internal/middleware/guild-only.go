package middleware

import (
	"context"

	"github.com/keshon/hive-resources/internal/command"
	"github.com/keshon/hive-resources/pkg/cmd"
)

const guildOnlyNotice = "This command can only be used in a server."

// WithGuildOnly rejects slash commands sent outside a guild.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			if v, ok := inv.Data.(*command.SlashInteractionContext); ok && v.GuildID == "" {
				return v.Gateway.RespondEphemeral(guildOnlyNotice)
			}
			return c.Run(ctx, inv)
		})
	}
}
