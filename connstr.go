package connstr

//go:generate go tool errtrace -w .

import (
	"strings"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/connstr/internal/grammar"
	"github.com/ghettovoice/connstr/internal/util"
)

// DefaultScheme is the scheme a [Parser] expects when none is configured.
const DefaultScheme = "db"

// Parser parses and formats connection strings, optionally constrained to one scheme.
// It is an immutable value, safe for concurrent use.
// The zero value expects [DefaultScheme].
type Parser struct {
	scheme    string
	hasScheme bool
}

// ParserOption configures a [Parser].
type ParserOption func(p *Parser)

// WithScheme sets the scheme the parser expects, compared case-insensitively.
// An empty scheme disables the check, so any scheme is accepted.
func WithScheme(scheme string) ParserOption {
	return func(p *Parser) {
		p.scheme = scheme
		p.hasScheme = true
	}
}

// NewParser returns a parser configured with opts.
func NewParser(opts ...ParserOption) Parser {
	var p Parser
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Scheme returns the expected scheme. An empty result means any scheme is accepted.
func (p Parser) Scheme() string {
	if !p.hasScheme {
		return DefaultScheme
	}
	return p.scheme
}

// Parse parses a connection string of the form
//
//	scheme://[username[:password]@]host1[:port1][,host2[:port2],...][/endpoint][?key1=value1&key2=value2...]
//
// Surrounding whitespace is ignored. Reserved chars inside values must be percent-encoded;
// the returned [Params] holds decoded values.
// Option tokens without '=' are dropped.
// On failure no params are returned and the error wraps one of the Err* kinds.
func (p Parser) Parse(s string) (*Params, error) {
	s = util.TrimSP(s)

	i := strings.Index(s, grammar.SchemeSep)
	if i < 0 {
		return nil, errtrace.Wrap(newErr(ErrMissingScheme, "no scheme found in URI %q", Redact(s)))
	}
	scheme := s[:i]
	if scheme == "" {
		return nil, errtrace.Wrap(newErr(ErrMissingScheme, "empty scheme in URI %q", Redact(s)))
	}
	if strings.IndexByte(scheme, ':') >= 0 {
		return nil, errtrace.Wrap(newErr(ErrMalformedInput, "scheme %q contains ':'", scheme))
	}
	if exp := p.Scheme(); exp != "" && !util.EqFold(exp, scheme) {
		return nil, errtrace.Wrap(newErr(ErrSchemeMismatch, "URI must start with '%s://'", exp))
	}

	node, err := grammar.ParseConnString(s)
	if err != nil {
		return nil, errtrace.Wrap(newErr(ErrMalformedInput, err))
	}

	params := &Params{Scheme: scheme}
	if err := params.setAuthority(node); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if ep, ok := node.GetNode(grammar.KeyEndpoint); ok {
		params.Endpoint, params.HasEndpoint = grammar.Unescape(ep.String()), true
	}
	if opts, ok := node.GetNode(grammar.KeyOptions); ok {
		params.Options = optionsFromNode(opts)
	}
	return params, nil
}

func (p *Params) setAuthority(node *abnf.Node) error {
	if ui, ok := node.GetNode(grammar.KeyUserinfo); ok {
		usr, err := userInfoFromNode(ui)
		if err != nil {
			return errtrace.Wrap(err)
		}
		p.User = usr
	}
	for _, he := range node.GetNodes(grammar.KeyHostEntry) {
		addr, err := addrFromNode(he)
		if err != nil {
			return errtrace.Wrap(err)
		}
		p.Hosts = append(p.Hosts, addr)
	}
	return nil
}

// Format renders params as a connection string, the inverse of [Parser.Parse].
//
// The expected scheme is rendered when configured, otherwise params.Scheme, otherwise [DefaultScheme].
// A non-empty params.Scheme that differs from the expected one is an [ErrSchemeMismatch] error.
// Nil params render as "scheme://localhost". params is not modified.
func (p Parser) Format(params *Params) (string, error) {
	scheme := p.Scheme()
	if params == nil {
		if scheme == "" {
			scheme = DefaultScheme
		}
		return scheme + grammar.SchemeSep + "localhost", nil
	}

	if scheme != "" && params.Scheme != "" && !util.EqFold(scheme, params.Scheme) {
		return "", errtrace.Wrap(newErr(ErrSchemeMismatch, "scheme not supported: %s", params.Scheme))
	}
	if scheme == "" {
		scheme = params.Scheme
	}
	if scheme == "" {
		scheme = DefaultScheme
	}

	if len(params.Hosts) == 0 {
		return "", errtrace.Wrap(newErr(ErrMissingHost, "no hosts to format"))
	}
	for i, h := range params.Hosts {
		if h.Host() == "" {
			return "", errtrace.Wrap(newErr(ErrMissingHost, "hosts[%d] is empty", i))
		}
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if _, err := params.renderTo(sb, scheme); err != nil {
		return "", errtrace.Wrap(err)
	}
	return sb.String(), nil
}

// Redact masks the password of a raw connection string with "xxxxx".
// Credentials end at the first '@' of the authority, the same way [Parser.Parse] splits them.
// It works on malformed input as well and leaves strings without credentials unchanged.
func Redact(s string) string {
	i := strings.Index(s, grammar.SchemeSep)
	if i < 0 {
		return s
	}
	start := i + len(grammar.SchemeSep)
	auth := s[start:]
	if end := strings.IndexAny(auth, "/?"); end >= 0 {
		auth = auth[:end]
	}
	creds, _, ok := strings.Cut(auth, "@")
	if !ok {
		return s
	}
	usr, passwd, ok := strings.Cut(creds, ":")
	if !ok || passwd == "" {
		return s
	}
	pos := start + len(usr) + 1
	return s[:pos] + util.Mask(passwd) + s[pos+len(passwd):]
}
