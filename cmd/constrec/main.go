package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rodyo/constrec/internal/cli"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(cli.GetExitCode(err))
	}
}
