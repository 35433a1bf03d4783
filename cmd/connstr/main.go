// Command connstr parses, formats and splits broker connection strings.
//
// The connection string is taken from the command line or, when omitted,
// from the RABBITMQ_BUS_CONNECTION_STRING variable of the environment or a .env file.
package main

//go:generate go tool errtrace -w .

import (
	"io"
	"log/slog"
	"os"

	"github.com/ghettovoice/connstr/internal/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

func run(args, environ []string, stdout, stderr io.Writer) int {
	a := &app{
		environ: environ,
		log:     log.New(stderr, log.FormatConsole, slog.LevelInfo),
	}
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		a.log.Error("command failed", slog.Any("error", err))
		return 1
	}
	return 0
}
