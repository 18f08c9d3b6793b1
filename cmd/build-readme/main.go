package main

import (
	"github.com/rs/zerolog/log"

	"github.com/keshon/hive-resources/internal/command"
	"github.com/keshon/hive-resources/internal/docs"
	"github.com/keshon/hive-resources/internal/logger"
	"github.com/keshon/hive-resources/pkg/cmd"
)

// Regenerates README.md from the slash command definitions. Definitions do
// not depend on the catalogs, so no configuration is needed.
func main() {
	logger.Setup("info", "")

	reg := cmd.NewRegistry()
	reg.Register(command.NewMapCommand(nil))
	reg.Register(command.NewModelCommand(nil))

	if err := docs.UpdateReadme(reg, "README.md.tmpl", "README.md"); err != nil {
		log.Fatal().Err(err).Msg("failed to update README")
	}
	log.Info().Msg("README.md updated with current commands")
}
