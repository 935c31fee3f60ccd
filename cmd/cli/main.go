package main

import (
	"context"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/avolkov/backoffice/internal/buildinfo"
	"github.com/avolkov/backoffice/internal/cli"
	"github.com/avolkov/backoffice/internal/config"
	"github.com/avolkov/backoffice/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewZerologLogger(zerolog.New(os.Stderr).With().Timestamp().Logger())

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
