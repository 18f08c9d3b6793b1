// cmd/cli/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/keshon/hive-resources/internal/app"
	"github.com/keshon/hive-resources/internal/config"
	"github.com/keshon/hive-resources/internal/logger"
	"github.com/keshon/hive-resources/internal/resolver"
	v "github.com/keshon/hive-resources/internal/version"
	"github.com/keshon/hive-resources/pkg/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger.Setup(cfg.LogLevel, "")

	rs, buildErr := app.BuildResolvers(cfg)
	lookup := func(string) (*resolver.Resolver, error) { return nil, buildErr }
	if buildErr == nil {
		lookup = rs.ByKind
	} else {
		log.Debug().Err(buildErr).Msg("catalogs unavailable")
	}

	reg := newRegistry(lookup, os.Stdout)
	switch {
	case len(args) == 0 || args[0] == "help":
		printUsage(os.Stdout, reg)
		return 0
	case args[0] == "version":
		fmt.Printf("%s %s (%s)\n", v.AppName, v.Version, v.BuildDate)
		return 0
	}

	c := reg.Get(args[0])
	if c == nil {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage(os.Stderr, reg)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Run(ctx, &cmd.Invocation{Args: args[1:]}); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "usage: %s %s\n", c.Name(), c.Description())
			return 2
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
