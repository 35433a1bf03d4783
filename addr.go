package connstr

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"
	"github.com/miekg/dns"

	"github.com/ghettovoice/connstr/internal/grammar"
	"github.com/ghettovoice/connstr/internal/util"
)

// Addr is a container for a host and an optional port.
type Addr struct {
	host    string
	port    uint16
	hasPort bool
}

// Host returns an [Addr] containing the provided host and no port.
func Host(host string) Addr {
	return Addr{host: strings.Trim(host, "[]")}
}

// HostPort returns an [Addr] containing the provided host and port.
func HostPort(host string, port uint16) Addr {
	return Addr{
		host:    strings.Trim(host, "[]"),
		port:    port,
		hasPort: true,
	}
}

// ParseAddr parses a single "host[:port]" entry of a host list.
// The host part may be percent-encoded or be a bracketed IPv6 literal.
func ParseAddr(s string) (Addr, error) {
	if s == "" {
		return Addr{}, errtrace.Wrap(newErr(ErrMissingHost, "empty host entry"))
	}
	node, err := grammar.ParseHostEntry(s)
	if err != nil {
		return Addr{}, errtrace.Wrap(newErr(ErrMalformedInput, err))
	}
	return errtrace.Wrap2(addrFromNode(node))
}

func addrFromNode(node *abnf.Node) (Addr, error) {
	if node.IsEmpty() {
		return Addr{}, errtrace.Wrap(newErr(ErrMissingHost, "empty host entry"))
	}

	host, ok := node.GetNode(grammar.KeyIPv6)
	if !ok {
		host, _ = node.GetNode(grammar.KeyHost)
	}
	if host.IsEmpty() {
		return Addr{}, errtrace.Wrap(newErr(ErrMissingHost, "empty host in %q", node.String()))
	}

	addr := Addr{host: grammar.Unescape(host.String())}
	if port, ok := node.GetNode(grammar.KeyPort); ok {
		p, err := strconv.ParseUint(port.String(), 10, 16)
		if err != nil {
			return Addr{}, errtrace.Wrap(newErr(ErrInvalidPort, "%q in host %q", port.String(), node.String()))
		}
		addr.port, addr.hasPort = uint16(p), true
	}
	return addr, nil
}

// Host returns the decoded host name.
func (addr Addr) Host() string { return addr.host }

// Port returns the port, in case it is set, and bool flag indicating whether it is set.
func (addr Addr) Port() (uint16, bool) { return addr.port, addr.hasPort }

// String renders the address as it appears in a connection string:
// the escaped host, IPv6 literals in brackets, and the ":port" suffix if set.
func (addr Addr) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	if isIPv6(addr.host) {
		sb.WriteString("[")
		sb.WriteString(addr.host)
		sb.WriteString("]")
	} else {
		sb.WriteString(grammar.Escape(addr.host, nil))
	}
	if addr.hasPort {
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(int(addr.port)))
	}
	return sb.String()
}

func isIPv6(host string) bool {
	return strings.Contains(host, ":") && net.ParseIP(host) != nil
}

// Format implements fmt.Formatter to support custom formatting verbs for Addr values.
func (addr Addr) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		if verb == 'v' && (f.Flag('+') || f.Flag('#')) {
			type hideMethods Addr
			type Addr hideMethods
			fmt.Fprintf(f, fmt.FormatString(f, verb), Addr(addr))
			return
		}
		fmt.Fprint(f, addr.String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(addr.String()))
	default:
		fmt.Fprintf(f, "%%!%c(connstr.Addr=%s)", verb, addr.String())
	}
}

// Equal reports whether the address equals the provided value, accepting Addr and *Addr.
// Host names are compared case-insensitively.
func (addr Addr) Equal(val any) bool {
	var other Addr
	switch v := val.(type) {
	case Addr:
		other = v
	case *Addr:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return util.EqFold(addr.host, other.host) && addr.port == other.port && addr.hasPort == other.hasPort
}

// IsValid reports whether the host is an IP address or a syntactically valid domain name.
// No name resolution is performed.
func (addr Addr) IsValid() bool {
	if addr.host == "" {
		return false
	}
	if net.ParseIP(addr.host) != nil {
		return true
	}
	for i := 0; i < len(addr.host); i++ {
		if c := addr.host[i]; !grammar.IsAlphanumChar(c) && c != '-' && c != '.' && c != '_' {
			return false
		}
	}
	_, ok := dns.IsDomainName(addr.host)
	return ok
}

// IsZero reports whether the address has zero host and port information.
func (addr Addr) IsZero() bool { return addr.host == "" && !addr.hasPort }

// MarshalText implements [encoding.TextMarshaler].
func (addr Addr) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (addr *Addr) UnmarshalText(text []byte) error {
	a, err := ParseAddr(string(text))
	if err != nil {
		*addr = Addr{}
		return errtrace.Wrap(err)
	}
	*addr = a
	return nil
}
