// Package cmd is the transport-agnostic command core shared by the Discord bot
// and the CLI. A command has a name, a description and Run; each adapter
// decides how it is registered and what it puts into the Invocation.
package cmd

import "context"

// Invocation is what an adapter hands a command. Args carries positional
// arguments (CLI); Data carries the adapter's own context, e.g. the Discord
// interaction and its gateway.
type Invocation struct {
	Args []string
	Data any
}

// Command is the contract every adapter dispatches to.
type Command interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) error
}
