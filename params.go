package connstr

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"braces.dev/errtrace"
	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/connstr/internal/errorutil"
	"github.com/ghettovoice/connstr/internal/grammar"
	"github.com/ghettovoice/connstr/internal/ioutil"
	"github.com/ghettovoice/connstr/internal/util"
)

// Params is the structured form of a connection string:
//
//	scheme://[username[:password]@]host1[:port1][,host2[:port2],...][/endpoint][?key1=value1&key2=value2...]
//
// All string fields hold decoded values.
type Params struct {
	Scheme   string
	User     UserInfo // zero when there is no credentials segment
	Hosts    []Addr   // first entry is the primary address
	Endpoint string
	// HasEndpoint reports that the endpoint segment is present, even if it is empty.
	HasEndpoint bool
	Options     Values // nil when there is no options segment
}

// Clone returns a deep copy of the params.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	p2 := *p
	p2.Hosts = slices.Clone(p.Hosts)
	p2.Options = p.Options.Clone()
	return &p2
}

// WithHosts returns a deep copy of the params with the host list replaced by hosts.
// The receiver is not modified.
func (p *Params) WithHosts(hosts ...Addr) *Params {
	if p == nil {
		return nil
	}
	p2 := p.Clone()
	p2.Hosts = slices.Clone(hosts)
	return p2
}

// Primary returns the first host.
func (p *Params) Primary() (Addr, bool) {
	if p == nil || len(p.Hosts) == 0 {
		return Addr{}, false
	}
	return p.Hosts[0], true
}

// RenderOptions controls how [Params] are rendered.
type RenderOptions struct {
	// Redact replaces a non-empty password with "xxxxx".
	Redact bool
}

// RenderTo writes the connection string to w.
// The params scheme is used as is, or [DefaultScheme] if it is empty.
// No validation is done, use [Parser.Format] to get a checked result.
func (p *Params) RenderTo(w io.Writer, opts *RenderOptions) (num int, err error) {
	if p == nil {
		return 0, nil
	}
	scheme := p.Scheme
	if scheme == "" {
		scheme = DefaultScheme
	}
	if opts != nil && opts.Redact {
		p2 := *p
		p2.User = p.User.redacted()
		p = &p2
	}
	return errtrace.Wrap2(p.renderTo(w, scheme))
}

func (p *Params) renderTo(w io.Writer, scheme string) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(scheme, grammar.SchemeSep)
	if p.User.IsValid() {
		cw.WriteString(p.User.String(), "@")
	}
	for i, h := range p.Hosts {
		if i > 0 {
			cw.WriteString(",")
		}
		cw.WriteString(h.String())
	}
	if p.hasEndpoint() {
		cw.WriteString("/", grammar.Escape(p.Endpoint, nil))
	}
	if len(p.Options) > 0 {
		cw.WriteString("?").Call(p.Options.renderTo)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the connection string rendered with opts.
func (p *Params) Render(opts *RenderOptions) string {
	if p == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	p.RenderTo(sb, opts) //nolint:errcheck
	return sb.String()
}

// String returns the connection string. Use [Params.Redacted] for logging.
func (p *Params) String() string {
	return p.Render(nil)
}

// Redacted is like [Params.String] but replaces a non-empty password with "xxxxx".
func (p *Params) Redacted() string {
	return p.Render(&RenderOptions{Redact: true})
}

// Format implements fmt.Formatter.
// The "%+v" verb prints the struct fields, every other verb prints the connection string.
func (p *Params) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, p.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(p.String()))
	case 'v':
		if f.Flag('+') || f.Flag('#') {
			type hideMethods Params
			type Params hideMethods
			fmt.Fprintf(f, fmt.FormatString(f, verb), (*Params)(p))
			return
		}
		fmt.Fprint(f, p.String())
	default:
		fmt.Fprintf(f, "%%!%c(*connstr.Params=%s)", verb, p.String())
	}
}

// LogValue implements [slog.LogValuer]; credentials are redacted.
func (p *Params) LogValue() slog.Value {
	return slog.StringValue(p.Redacted())
}

// Equal compares the params with another *Params or Params value.
// Schemes and host names are compared case-insensitively, everything else exactly.
// A non-empty Endpoint counts as present whether or not HasEndpoint is set.
// A nil Options map does not equal an empty one.
func (p *Params) Equal(val any) bool {
	var other *Params
	switch v := val.(type) {
	case Params:
		other = &v
	case *Params:
		other = v
	default:
		return false
	}

	if p == other {
		return true
	} else if p == nil || other == nil {
		return false
	}

	return util.EqFold(p.Scheme, other.Scheme) &&
		p.User.Equal(other.User) &&
		slices.EqualFunc(p.Hosts, other.Hosts, func(a, b Addr) bool { return a.Equal(b) }) &&
		p.Endpoint == other.Endpoint &&
		p.hasEndpoint() == other.hasEndpoint() &&
		cmp.Equal(p.Options, other.Options)
}

// hasEndpoint reports whether the endpoint segment is rendered.
func (p *Params) hasEndpoint() bool { return p.HasEndpoint || p.Endpoint != "" }

// IsValid reports whether [Params.Validate] passes.
func (p *Params) IsValid() bool { return p.Validate() == nil }

// Validate checks that the params form a usable connection string:
// a scheme, at least one host, and syntactically valid host names.
// Hosts are not resolved.
func (p *Params) Validate() error {
	if p == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil params"))
	}

	var errs []error
	if p.Scheme == "" {
		errs = append(errs, newErr(ErrMissingScheme))
	}
	if !p.User.IsZero() && !p.User.IsValid() {
		errs = append(errs, newErr(ErrMalformedInput, "password without username"))
	}
	if len(p.Hosts) == 0 {
		errs = append(errs, newErr(ErrMissingHost))
	}
	for i, h := range p.Hosts {
		if !h.IsValid() {
			errs = append(errs, newErr(ErrInvalidHost, "hosts[%d] = %q", i, h.Host()))
		}
	}
	return errtrace.Wrap(errorutil.JoinPrefix("invalid connection params:", errs...))
}

// MarshalText implements [encoding.TextMarshaler].
func (p *Params) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// Any scheme is accepted.
func (p *Params) UnmarshalText(text []byte) error {
	p1, err := NewParser(WithScheme("")).Parse(string(text))
	if err != nil {
		*p = Params{}
		return errtrace.Wrap(err)
	}
	*p = *p1
	return nil
}
