// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/connstr"
	"github.com/ghettovoice/connstr/internal/util"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatDev     = "dev"
	FormatJSON    = "json"
)

// ConnStringKey is the attribute key for raw connection strings.
// Values logged under it have their password masked.
const ConnStringKey = "connection_string"

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByKey(ConnStringKey, func(v slog.Value) slog.Value {
		return slog.StringValue(connstr.Redact(v.String()))
	}),
	slogformatter.FormatByType(func(u connstr.UserInfo) slog.Value {
		pass, ok := u.Password()
		attrs := []slog.Attr{slog.String("username", u.Username())}
		if ok {
			attrs = append(attrs, slog.String("password", util.Mask(pass)))
		}
		return slog.GroupValue(attrs...)
	}),
)

// New creates a logger writing to w in the given format.
// Unknown formats fall back to [FormatConsole].
func New(w io.Writer, format string, level slog.Level) *slog.Logger {
	var h slog.Handler
	switch util.LCase(format) {
	case FormatDev:
		h = devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		})
	case FormatJSON:
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		h = console.NewHandler(w, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.RFC3339,
		})
	}
	return slog.New(newHandler(h))
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return lvl, nil
}
