package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/keshon/hive-resources/internal/resolver"
	"github.com/keshon/hive-resources/pkg/cmd"
)

// lookupFunc returns the resolver for "map" or "model".
type lookupFunc func(kind string) (*resolver.Resolver, error)

var errUsage = errors.New("usage")

type categoriesCommand struct {
	lookup lookupFunc
	out    io.Writer
}

func (c *categoriesCommand) Name() string        { return "categories" }
func (c *categoriesCommand) Description() string { return "<map|model>  list gamemodes" }

func (c *categoriesCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	if len(inv.Args) != 1 {
		return errUsage
	}
	r, err := c.lookup(inv.Args[0])
	if err != nil {
		return err
	}
	choices, err := r.CategoryChoices(ctx, "")
	if err != nil {
		return err
	}
	printChoices(c.out, choices)
	return nil
}

type itemsCommand struct {
	lookup lookupFunc
	out    io.Writer
}

func (c *itemsCommand) Name() string        { return "items" }
func (c *itemsCommand) Description() string { return "<map|model> <gamemode> [filter]  list items of a gamemode" }

func (c *itemsCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	if len(inv.Args) < 2 {
		return errUsage
	}
	r, err := c.lookup(inv.Args[0])
	if err != nil {
		return err
	}
	filter := strings.Join(inv.Args[2:], " ")
	choices, err := r.ItemChoices(ctx, inv.Args[1], filter)
	if err != nil {
		return err
	}
	printChoices(c.out, choices)
	return nil
}

type getCommand struct {
	lookup lookupFunc
	out    io.Writer
}

func (c *getCommand) Name() string        { return "get" }
func (c *getCommand) Description() string { return "<map|model> <gamemode> <name>  show download links" }

func (c *getCommand) Run(ctx context.Context, inv *cmd.Invocation) error {
	if len(inv.Args) < 3 {
		return errUsage
	}
	r, err := c.lookup(inv.Args[0])
	if err != nil {
		return err
	}
	res := r.Resolve(ctx, inv.Args[1], strings.Join(inv.Args[2:], " "))
	if !res.OK() {
		fmt.Fprintln(c.out, res.Message)
		return res.Err
	}

	e := res.Entry
	fmt.Fprintf(c.out, "%s\n", e.Name)
	fmt.Fprintf(c.out, "  gamemode: %s\n", e.Category)
	writeField(c.out, "download", e.DownloadURL)
	writeField(c.out, "image", e.ImageURL)
	writeField(c.out, "3d preview", e.ViewerURL)
	writeField(c.out, "format", e.Format)
	return nil
}

func writeField(w io.Writer, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "  %s: %s\n", name, value)
}

func printChoices(w io.Writer, choices []resolver.Choice) {
	if len(choices) == 0 {
		fmt.Fprintln(w, "(none)")
		return
	}
	for _, ch := range choices {
		fmt.Fprintln(w, ch.Name)
	}
}

func newRegistry(lookup lookupFunc, out io.Writer) *cmd.Registry {
	reg := cmd.NewRegistry()
	reg.Register(&categoriesCommand{lookup: lookup, out: out})
	reg.Register(&itemsCommand{lookup: lookup, out: out})
	reg.Register(&getCommand{lookup: lookup, out: out})
	return reg
}

func printUsage(w io.Writer, reg *cmd.Registry) {
	fmt.Fprintln(w, "usage: hive-cli <command> [args]")
	for _, c := range reg.GetAll() {
		fmt.Fprintf(w, "  %-11s %s\n", c.Name(), c.Description())
	}
}
