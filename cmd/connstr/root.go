package main

import (
	"errors"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/connstr"
	"github.com/ghettovoice/connstr/internal/config"
	"github.com/ghettovoice/connstr/internal/log"
)

var errNoConnString = errors.New("no connection string: pass it as an argument or set RABBITMQ_BUS_CONNECTION_STRING")

type app struct {
	environ []string

	envFiles    []string
	scheme      string
	logFormat   string
	logLevel    string
	showSecrets bool

	cfg    *config.Config
	log    *slog.Logger
	parser connstr.Parser
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "connstr",
		Short:         "Parse, format and split broker connection strings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return errtrace.Wrap(a.init(cmd))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringArrayVar(&a.envFiles, "env-file", nil, "env file to read, may be repeated (default .env if present)")
	flags.StringVar(&a.scheme, "scheme", "amqp", `expected scheme, "" accepts any (env CONNSTR_SCHEME)`)
	flags.StringVar(&a.logFormat, "log-format", log.FormatConsole, "log format: console, dev or json (env CONNSTR_LOG_FORMAT)")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level (env CONNSTR_LOG_LEVEL)")
	flags.BoolVar(&a.showSecrets, "show-secrets", false, "print passwords as is")

	cmd.AddCommand(a.parseCmd(), a.formatCmd(), a.topologyCmd())
	return cmd
}

// init merges the configuration with the command line flags, flags win.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadEnv(a.environ, a.envFiles...)
	if err != nil {
		return errtrace.Wrap(err)
	}

	flags := cmd.Flags()
	if flags.Changed("scheme") {
		cfg.Scheme = a.scheme
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("log-level") {
		if cfg.LogLevel, err = log.ParseLevel(a.logLevel); err != nil {
			return errtrace.Wrap(err)
		}
	}

	a.cfg = cfg
	a.log = log.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	a.parser = connstr.NewParser(connstr.WithScheme(cfg.Scheme))
	a.log.Debug("configuration loaded",
		slog.String(log.ConnStringKey, cfg.ConnectionString),
		slog.String("scheme", cfg.Scheme),
	)
	return nil
}

// connString returns the connection string from args or the configuration.
func (a *app) connString(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.cfg.ConnectionString == "" {
		return "", errtrace.Wrap(errNoConnString)
	}
	return a.cfg.ConnectionString, nil
}

func (a *app) render(s string) string {
	if a.showSecrets {
		return s
	}
	return connstr.Redact(s)
}
