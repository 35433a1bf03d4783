package connstr_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/connstr"
	"github.com/ghettovoice/connstr/internal/errorutil"
)

func newTestParams() *connstr.Params {
	return &connstr.Params{
		Scheme:      "amqp",
		User:        connstr.UserPassword("guest", "secret"),
		Hosts:       []connstr.Addr{connstr.HostPort("h1", 5672), connstr.HostPort("h2", 5673)},
		Endpoint:    "vhost",
		HasEndpoint: true,
		Options:     connstr.Values{"heartbeat": "30"},
	}
}

func TestParams_Clone(t *testing.T) {
	t.Parallel()

	var nilParams *connstr.Params
	if got := nilParams.Clone(); got != nil {
		t.Errorf("nil.Clone() = %v, want nil", got)
	}

	p := newTestParams()
	p2 := p.Clone()
	if diff := cmp.Diff(p2, p); diff != "" {
		t.Fatalf("p.Clone() mismatch (-got +want):\n%s", diff)
	}

	p2.Hosts[0] = connstr.Host("other")
	p2.Options.Set("heartbeat", "60")
	if h := p.Hosts[0]; !h.Equal(connstr.HostPort("h1", 5672)) {
		t.Errorf("p.Hosts[0] = %v after clone modification, want h1:5672", h)
	}
	if v, _ := p.Options.Get("heartbeat"); v != "30" {
		t.Errorf("p.Options[heartbeat] = %q after clone modification, want 30", v)
	}
}

func TestParams_WithHosts(t *testing.T) {
	t.Parallel()

	p := newTestParams()
	p2 := p.WithHosts(connstr.Host("h3"))

	if diff := cmp.Diff(p.Hosts, []connstr.Addr{connstr.HostPort("h1", 5672), connstr.HostPort("h2", 5673)}); diff != "" {
		t.Errorf("p.WithHosts() modified the receiver (-got +want):\n%s", diff)
	}
	want := newTestParams()
	want.Hosts = []connstr.Addr{connstr.Host("h3")}
	if diff := cmp.Diff(p2, want); diff != "" {
		t.Errorf("p.WithHosts(h3) mismatch (-got +want):\n%s", diff)
	}
}

func TestParams_Primary(t *testing.T) {
	t.Parallel()

	if addr, ok := newTestParams().Primary(); !ok || !addr.Equal(connstr.HostPort("h1", 5672)) {
		t.Errorf("p.Primary() = %v, %v, want h1:5672, true", addr, ok)
	}
	if addr, ok := (&connstr.Params{}).Primary(); ok {
		t.Errorf("empty.Primary() = %v, true, want false", addr)
	}
}

func TestParams_String(t *testing.T) {
	t.Parallel()

	p := newTestParams()
	if got, want := p.String(), "amqp://guest:secret@h1:5672,h2:5673/vhost?heartbeat=30"; got != want {
		t.Errorf("p.String() = %q, want %q", got, want)
	}
	if got, want := p.Redacted(), "amqp://guest:xxxxx@h1:5672,h2:5673/vhost?heartbeat=30"; got != want {
		t.Errorf("p.Redacted() = %q, want %q", got, want)
	}
	if pwd, _ := p.User.Password(); pwd != "secret" {
		t.Errorf("p.Redacted() modified password: %q", pwd)
	}

	p.Scheme = ""
	if got, want := p.String(), "db://guest:secret@h1:5672,h2:5673/vhost?heartbeat=30"; got != want {
		t.Errorf("p.String() without scheme = %q, want %q", got, want)
	}

	var buf bytes.Buffer
	num, err := p.RenderTo(&buf, &connstr.RenderOptions{Redact: true})
	if err != nil {
		t.Fatalf("p.RenderTo(buf) error = %v, want nil", err)
	}
	if num != buf.Len() {
		t.Errorf("p.RenderTo(buf) = %d, want %d", num, buf.Len())
	}
	if got, want := buf.String(), "db://guest:xxxxx@h1:5672,h2:5673/vhost?heartbeat=30"; got != want {
		t.Errorf("p.RenderTo(buf) wrote %q, want %q", got, want)
	}
}

func TestParams_Format(t *testing.T) {
	t.Parallel()

	p := &connstr.Params{Scheme: "amqp", Hosts: []connstr.Addr{connstr.Host("h")}}
	cases := []struct {
		format string
		want   string
	}{
		{"%s", "amqp://h"},
		{"%v", "amqp://h"},
		{"%q", `"amqp://h"`},
		{"%d", "%!d(*connstr.Params=amqp://h)"},
	}
	for _, c := range cases {
		if got := fmt.Sprintf(c.format, p); got != c.want {
			t.Errorf("fmt.Sprintf(%q, p) = %q, want %q", c.format, got, c.want)
		}
	}
	if got := fmt.Sprintf("%+v", p); !strings.Contains(got, "Scheme:amqp") {
		t.Errorf("fmt.Sprintf(%%+v, p) = %q, want struct fields", got)
	}
}

func TestParams_LogValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	logger.Info("connect", "params", newTestParams())

	if got, want := buf.String(), "level=INFO msg=connect params=\"amqp://guest:xxxxx@h1:5672,h2:5673/vhost?heartbeat=30\"\n"; got != want {
		t.Errorf("log output = %q, want %q", got, want)
	}
}

func TestParams_Equal(t *testing.T) {
	t.Parallel()

	p := newTestParams()
	cases := []struct {
		name   string
		val    any
		modify func(p *connstr.Params)
		want   bool
	}{
		{"same", nil, func(*connstr.Params) {}, true},
		{"scheme case", nil, func(p *connstr.Params) { p.Scheme = "AMQP" }, true},
		{"host case", nil, func(p *connstr.Params) { p.Hosts[0] = connstr.HostPort("H1", 5672) }, true},
		{"other scheme", nil, func(p *connstr.Params) { p.Scheme = "redis" }, false},
		{"no password", nil, func(p *connstr.Params) { p.User = connstr.User("guest") }, false},
		{"hosts order", nil, func(p *connstr.Params) { p.Hosts[0], p.Hosts[1] = p.Hosts[1], p.Hosts[0] }, false},
		{"endpoint case", nil, func(p *connstr.Params) { p.Endpoint = "VHost" }, false},
		{"no endpoint", nil, func(p *connstr.Params) { p.Endpoint, p.HasEndpoint = "", false }, false},
		{"endpoint without flag", nil, func(p *connstr.Params) { p.HasEndpoint = false }, true},
		{"empty endpoint flag", nil, func(p *connstr.Params) { p.Endpoint = "" }, false},
		{"option case", nil, func(p *connstr.Params) { p.Options = connstr.Values{"Heartbeat": "30"} }, false},
		{"empty options", nil, func(p *connstr.Params) { p.Options = connstr.Values{} }, false},
		{"value", *newTestParams(), nil, true},
		{"nil", (*connstr.Params)(nil), nil, false},
		{"other type", "amqp://h1", nil, false},
	}
	for _, c := range cases {
		val := c.val
		if c.modify != nil {
			p2 := p.Clone()
			c.modify(p2)
			val = p2
		}
		if got := p.Equal(val); got != c.want {
			t.Errorf("%s: p.Equal(%v) = %v, want %v", c.name, val, got, c.want)
		}
	}

	var nilParams *connstr.Params
	if !nilParams.Equal((*connstr.Params)(nil)) {
		t.Error("nil.Equal(nil) = false, want true")
	}

	noOpts, emptyOpts := newTestParams(), newTestParams()
	noOpts.Options, emptyOpts.Options = nil, connstr.Values{}
	if noOpts.Equal(emptyOpts) {
		t.Error("params with nil options equal params with empty options")
	}
}

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	if err := newTestParams().Validate(); err != nil {
		t.Errorf("p.Validate() = %v, want nil", err)
	}

	var nilParams *connstr.Params
	if err := nilParams.Validate(); !errors.Is(err, errorutil.ErrInvalidArgument) {
		t.Errorf("nil.Validate() = %v, want %v", err, errorutil.ErrInvalidArgument)
	}

	p := newTestParams()
	p.Hosts[1] = connstr.Host("bad host")
	err := p.Validate()
	if !errors.Is(err, connstr.ErrInvalidHost) {
		t.Errorf("p.Validate() = %v, want %v", err, connstr.ErrInvalidHost)
	}
	if got, want := err.Error(), `invalid connection params: invalid host: hosts[1] = "bad host"`; got != want {
		t.Errorf("p.Validate() message = %q, want %q", got, want)
	}
	if p.IsValid() {
		t.Error("p.IsValid() = true, want false")
	}

	err = (&connstr.Params{User: connstr.UserPassword("", "p")}).Validate()
	for _, kind := range []connstr.Error{connstr.ErrMissingScheme, connstr.ErrMalformedInput, connstr.ErrMissingHost} {
		if !errors.Is(err, kind) {
			t.Errorf("empty.Validate() = %v, want %v", err, kind)
		}
	}
	if got, want := err.Error(), "invalid connection params:\n  - missing scheme\n  - malformed input: password without username\n  - missing host"; got != want {
		t.Errorf("empty.Validate() message = %q, want %q", got, want)
	}
}

func TestParams_MarshalText(t *testing.T) {
	t.Parallel()

	type doc struct {
		Broker *connstr.Params `json:"broker"`
	}

	in := doc{Broker: newTestParams()}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal(in) error = %v, want nil", err)
	}
	if got, want := string(data), `{"broker":"amqp://guest:secret@h1:5672,h2:5673/vhost?heartbeat=30"}`; got != want {
		t.Errorf("json.Marshal(in) = %s, want %s", got, want)
	}

	var out doc
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal(data) error = %v, want nil", err)
	}
	if diff := cmp.Diff(out, in); diff != "" {
		t.Errorf("json round trip mismatch (-got +want):\n%s", diff)
	}

	if err := json.Unmarshal([]byte(`{"broker":"localhost"}`), &out); !errors.Is(err, connstr.ErrMissingScheme) {
		t.Errorf("json.Unmarshal(localhost) error = %v, want %v", err, connstr.ErrMissingScheme)
	}
}
