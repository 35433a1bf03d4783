package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/connstr"
	"github.com/ghettovoice/connstr/internal/log"
)

func TestNew_JSONRedactsSecrets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf, log.FormatJSON, slog.LevelDebug)
	logger.Info("loaded",
		slog.String(log.ConnStringKey, "amqp://guest:secret@h1:5672/vhost"),
		slog.Any("user", connstr.UserPassword("guest", "secret")),
		slog.Any("error", errors.New("boom")),
	)

	if strings.Contains(buf.String(), "secret") {
		t.Fatalf("log output leaks password: %s", buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("json.Unmarshal(%q) error = %v, want nil", buf.String(), err)
	}
	if got, want := rec[log.ConnStringKey], "amqp://guest:xxxxx@h1:5672/vhost"; got != want {
		t.Errorf("rec[%q] = %v, want %q", log.ConnStringKey, got, want)
	}
	if diff := cmp.Diff(rec["user"], map[string]any{"username": "guest", "password": "xxxxx"}); diff != "" {
		t.Errorf("rec[user] mismatch (-got +want):\n%s", diff)
	}
}

func TestNew_Formats(t *testing.T) {
	t.Parallel()

	for _, format := range []string{log.FormatConsole, log.FormatDev, log.FormatJSON, "unknown"} {
		var buf bytes.Buffer
		log.New(&buf, format, slog.LevelInfo).Info("hello")
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("log.New(buf, %q, info) output = %q, want message", format, buf.String())
		}
	}
}

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(t.Context(), slog.LevelError) {
		t.Error("log.Noop.Enabled(error) = true, want false")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	if lvl, err := log.ParseLevel("debug"); err != nil || lvl != slog.LevelDebug {
		t.Errorf("log.ParseLevel(debug) = %v, %v, want %v, nil", lvl, err, slog.LevelDebug)
	}
	if _, err := log.ParseLevel("loud"); err == nil {
		t.Error("log.ParseLevel(loud) error = nil, want error")
	}
}
