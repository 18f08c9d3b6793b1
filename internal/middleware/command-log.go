package middleware

import (
	"context"
	"time"

	"github.com/keshon/hive-resources/internal/command"
	"github.com/keshon/hive-resources/pkg/cmd"
	"github.com/rs/zerolog/log"
)

// WithCommandLogger logs every command execution once it finishes.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)

			ev := log.Info()
			if err != nil {
				ev = log.Warn().Err(err)
			}
			ev = ev.Str("command", c.Name()).Dur("took", time.Since(start))

			switch v := inv.Data.(type) {
			case *command.SlashInteractionContext:
				ev = ev.Str("guild", v.GuildID).Str("user", v.UserID).Str("username", v.Username)
			default:
				ev = ev.Strs("args", inv.Args)
			}
			ev.Msg("command executed")
			return err
		})
	}
}
