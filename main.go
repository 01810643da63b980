package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/km-arc/go-jab/framework/app"
	"github.com/km-arc/go-jab/framework/config"
	"github.com/km-arc/go-jab/greeting"
)

const name = "jab"

var (
	// overridden during build with ldflags
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func command() *cli.Command {
	return &cli.Command{
		Name:    name,
		Version: version,
		Usage:   "Serve greetings from a type-keyed dependency container",
		Description: `Starts an HTTP server whose handlers fetch their greeting service from
the application container:

  GET /plaintext     "<greeting>, World!"
  GET /greet/{who}   "<greeting>, <who>!"
  GET /health
  GET /metrics

Flags override values from the environment and .env files.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv file(s) to load (default: .env)",
			},
			&cli.StringFlag{
				Name:  "port",
				Usage: "listen port (env: APP_PORT)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error (env: LOG_LEVEL)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format: text or json (env: LOG_FORMAT)",
			},
			&cli.StringFlag{
				Name:  "greeter",
				Usage: "greeting service to bind: spongebob or squidward (env: GREETER)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load(cmd.StringSlice("env-file")...)
			applyFlags(cmd, cfg)

			if _, err := greeting.ByName(cfg.Greeting.Greeter); err != nil {
				return err
			}

			application := app.New(app.Options{Config: cfg})
			application.Register(&greeting.Provider{})
			return application.Run(ctx)
		},
	}
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("port") {
		cfg.Server.Port = cmd.String("port")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("greeter") {
		cfg.Greeting.Greeter = cmd.String("greeter")
	}
}
