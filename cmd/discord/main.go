// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/keshon/hive-resources/internal/app"
	"github.com/keshon/hive-resources/internal/command"
	"github.com/keshon/hive-resources/internal/config"
	"github.com/keshon/hive-resources/internal/discord"
	"github.com/keshon/hive-resources/internal/health"
	"github.com/keshon/hive-resources/internal/logger"
	"github.com/keshon/hive-resources/internal/middleware"
	v "github.com/keshon/hive-resources/internal/version"
	"github.com/keshon/hive-resources/pkg/cmd"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info", "")
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("version", v.Version).Msgf("Starting %v bot...", v.AppName)

	if err := cfg.ValidateBot(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	resolvers, err := app.BuildResolvers(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up catalogs")
	}

	registry := cmd.NewRegistry()
	mws := []cmd.Middleware{middleware.WithRecover()}
	if cfg.GuildScoped() {
		mws = append(mws, middleware.WithGuildOnly())
	}
	mws = append(mws, middleware.WithCommandLogger())

	if resolvers.Maps != nil {
		registry.Register(cmd.Apply(command.NewMapCommand(resolvers.Maps), mws...))
	}
	if resolvers.Models != nil {
		registry.Register(cmd.Apply(command.NewModelCommand(resolvers.Models), mws...))
	}

	cache, err := discord.OpenCommandCache(cfg.StoragePath)
	if err != nil {
		log.Warn().Err(err).Msg("command cache unavailable, commands will be registered on every start")
		cache = nil
	}
	defer cache.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot := discord.NewBot(cfg, registry, cache)

	if cfg.HealthAddr != "" {
		go func() {
			if err := health.Run(ctx, cfg.HealthAddr, bot.Ready); err != nil {
				log.Error().Err(err).Msg("health server exited")
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Discord bot error")
			cancel()
			cache.Close()
			os.Exit(1)
		}
	}
}
