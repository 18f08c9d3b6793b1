package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/keshon/hive-resources/internal/command"
	"github.com/keshon/hive-resources/pkg/cmd"
	"github.com/rs/zerolog/log"
)

const panicNotice = "❌ Something went wrong while handling this command."

// WithRecover turns a panic inside a command into an error and a generic
// reply, so no fault reaches the gateway dispatcher.
func WithRecover() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				log.Error().
					Str("command", c.Name()).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("command panicked")
				err = fmt.Errorf("command /%s panicked: %v", c.Name(), r)

				if v, ok := inv.Data.(*command.SlashInteractionContext); ok {
					// the panic may have happened before or after the defer
					if editErr := v.Gateway.EditContent(panicNotice); editErr != nil {
						_ = v.Gateway.RespondEphemeral(panicNotice)
					}
				}
			}()
			return c.Run(ctx, inv)
		})
	}
}
