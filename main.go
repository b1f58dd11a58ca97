package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	app "github.com/rocketscienceinc/warehouse-backend/internal"
	"github.com/rocketscienceinc/warehouse-backend/internal/config"
)

// main - is the entry point of the application. It loads .env, parses the command line and runs the app.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env file: %v\n", err)
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "warehouse",
		Usage: "Mouse and warehouse keepers game backend",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the REST and WebSocket servers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Value:   "config.yml",
						Usage:   "path to the yaml config",
						Sources: cli.EnvVars("CONFIG_PATH"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					conf := config.MustLoad(cmd.String("config"))
					logger := initLogger(conf)

					return app.RunApp(ctx, logger, conf)
				},
			},
		},
	}
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
