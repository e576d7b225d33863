package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/sessionprobe/internal/app"
)

type rootOptions struct {
	// cfg is loaded from the environment and .env, then overridden by flags.
	cfg app.Config

	profile string
	server  string

	dbFile    string
	logLevel  string
	logFormat string
}

// load reads the shared service configuration and lays explicitly set flags
// over it, so the CLI and `serve` agree on storage, logging and keys.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DatabaseFile = o.dbFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if !flags.Changed("profile") {
		o.profile = cfg.DefaultProfile
	}

	o.cfg = cfg
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "sessionprobe",
		Short:        "Inspect persisted client session state",
		Long:         "sessionprobe reports whether a client holds an auth token and a user record, and whether it is on the admin route.",
		Version:      app.BuildVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dbFile, "db", "", "sqlite database file for local mode (default $DATABASE_FILE)")
	flags.StringVarP(&opts.profile, "profile", "p", "", "client storage profile (default $DEFAULT_PROFILE)")
	flags.StringVar(&opts.server, "server", "", "base URL of a sessionprobe service; local mode when empty")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL)")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: json, text (default $LOG_FORMAT)")

	root.AddCommand(
		newServeCmd(opts),
		newInspectCmd(opts),
		newSetCmd(opts),
		newRemoveCmd(opts),
		newKeysCmd(opts),
		newClearCmd(opts),
	)

	return root
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long:  "Runs the HTTP service. Configuration is read from the environment and an optional .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(opts.cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run(cmd.Context())
		},
	}
}
