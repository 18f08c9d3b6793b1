package cmd

// Middleware wraps a command, e.g. with logging or a guild check.
type Middleware func(Command) Command

// Apply applies middlewares in order; the first one listed ends up innermost.
func Apply(c Command, mws ...Middleware) Command {
	for _, mw := range mws {
		c = mw(c)
	}
	return c
}
