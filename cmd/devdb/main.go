package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/vortex-console/internal/devcontainers"
	"github.com/localnerve/vortex-console/pkg/logger"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbOnly bool
	flag.BoolVar(&dbOnly, "db-only", false, "start only the database")
	flag.Parse()

	usage := `
Run the vortex-console development containers with the environment variables from the .env file.

Usage:

devdb [-h] [-db-only] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logger.New(logger.Options{Level: "info", Development: true})

	if envFilename != "" {
		log.Info().Str("file", envFilename).Msg("Loading environment variables")
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal().Err(err).Msg("Failed to load environment variables")
		}
	} else {
		log.Info().Msg("No environment file specified, using current environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	opts := devcontainers.OptionsFromEnv()
	opts.SkipConsole = dbOnly

	tc, err := devcontainers.Start(ctx, opts, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create containers")
		os.Exit(1)
	}
	fmt.Printf("DB_HOST=%s\nDB_PORT=%s\n", tc.DBHost, tc.DBPort.Port())
	if tc.ConsoleURL != "" {
		fmt.Printf("BASE_URL=%s\n", tc.ConsoleURL)
	}

	<-ctx.Done()
	log.Info().Msg("Received signal, terminating containers...")
	if err := tc.Terminate(context.Background()); err != nil {
		os.Exit(1)
	}
}
