package grammar

import (
	"strings"

	"github.com/ghettovoice/abnf"
)

// SchemeSep separates the scheme from the rest of a connection string.
const SchemeSep = "://"

// Keys of the nodes produced by the connection string rules.
const (
	KeyScheme      = "scheme"
	KeyUserinfo    = "userinfo"
	KeyUsername    = "username"
	KeyPassword    = "password"
	KeyHostEntry   = "host-entry"
	KeyHost        = "host"
	KeyIPv6        = "ipv6"
	KeyPort        = "port"
	KeyEndpoint    = "endpoint"
	KeyOptions     = "options"
	KeyOption      = "option"
	KeyOptionKey   = "option-key"
	KeyOptionValue = "option-value"
)

// Chars that may not appear unescaped inside a component value.
// Structural chars of the component itself (':' between host and port,
// '=' and '&' in options) are matched by the rules.
const (
	userinfoDelims = ":@,/?=&"
	hostDelims     = ":@,/?=&[]"
	ipv6Delims     = "[]@,/?=&"
	portDelims     = "@,/?=&"
	endpointDelims = ":@,/?=&"
	optKeyDelims   = ":@,/?=&"
	optValueDelims = ":@,/?&"
)

//	conn-string  = scheme "://" authority [ "/" endpoint ] [ "?" options ]
//	scheme       = 1*( %x00-FF except ":" )
//	authority    = [ userinfo "@" ] host-entry *( "," host-entry )
//	userinfo     = username [ ":" password ]
//	host-entry   = ( "[" ipv6 "]" / host ) [ ":" port ]
//	options      = option *( "&" option )
//	option       = option-key [ "=" option-value ]
//
// Every value rule is a repetition of the bytes not listed in its delimiter set.
// Ports are matched loosely so that the caller can tell a bad port from a broken structure.
var (
	scheme = abnf.Repeat1Inf(KeyScheme, charsExcept("scheme-char", ":"))

	userinfo = abnf.Concat(KeyUserinfo,
		abnf.Repeat0Inf(KeyUsername, charsExcept("username-char", userinfoDelims)),
		abnf.Optional("password-part", abnf.Concat("password-sep",
			abnf.Literal("colon", []byte(":")),
			abnf.Repeat0Inf(KeyPassword, charsExcept("password-char", userinfoDelims)),
		)),
	)

	hostEntry = abnf.Concat(KeyHostEntry,
		abnf.AltFirst("host-name",
			abnf.Concat("ip-literal",
				abnf.Literal("lbracket", []byte("[")),
				abnf.Repeat0Inf(KeyIPv6, charsExcept("ipv6-char", ipv6Delims)),
				abnf.Literal("rbracket", []byte("]")),
			),
			abnf.Repeat0Inf(KeyHost, charsExcept("host-char", hostDelims)),
		),
		abnf.Optional("port-part", abnf.Concat("port-sep",
			abnf.Literal("colon", []byte(":")),
			abnf.Repeat0Inf(KeyPort, charsExcept("port-char", portDelims)),
		)),
	)

	authority = abnf.Concat("authority",
		abnf.Optional("userinfo-part", abnf.Concat("userinfo-sep",
			userinfo,
			abnf.Literal("at", []byte("@")),
		)),
		hostEntry,
		abnf.Repeat0Inf("host-list", abnf.Concat("host-sep",
			abnf.Literal("comma", []byte(",")),
			hostEntry,
		)),
	)

	endpoint = abnf.Optional("endpoint-part", abnf.Concat("endpoint-sep",
		abnf.Literal("slash", []byte("/")),
		abnf.Repeat0Inf(KeyEndpoint, charsExcept("endpoint-char", endpointDelims)),
	))

	option = abnf.Concat(KeyOption,
		abnf.Repeat0Inf(KeyOptionKey, charsExcept("option-key-char", optKeyDelims)),
		abnf.Optional("option-value-part", abnf.Concat("option-value-sep",
			abnf.Literal("equals", []byte("=")),
			abnf.Repeat0Inf(KeyOptionValue, charsExcept("option-value-char", optValueDelims)),
		)),
	)

	options = abnf.Optional("options-part", abnf.Concat("options-sep",
		abnf.Literal("qmark", []byte("?")),
		abnf.Concat(KeyOptions,
			option,
			abnf.Repeat0Inf("option-list", abnf.Concat("option-sep",
				abnf.Literal("amp", []byte("&")),
				option,
			)),
		),
	))

	connString = abnf.Concat("conn-string",
		scheme,
		abnf.Literal("scheme-sep", []byte(SchemeSep)),
		authority,
		endpoint,
		options,
	)
)

// ConnString matches a whole connection string.
func ConnString(s []byte, ns *abnf.Nodes) error {
	return connString(s, 0, ns) //errtrace:skip
}

// HostEntry matches a single "host[:port]" or "[ipv6][:port]" entry.
func HostEntry(s []byte, ns *abnf.Nodes) error {
	return hostEntry(s, 0, ns) //errtrace:skip
}

// charsExcept matches any single byte not listed in delims.
func charsExcept(key, delims string) abnf.Operator {
	var ops []abnf.Operator
	lo := 0
	for c := 0; c <= 0x100; c++ {
		if c < 0x100 && strings.IndexByte(delims, byte(c)) < 0 {
			continue
		}
		if lo < c {
			ops = append(ops, abnf.Range(key, []byte{byte(lo)}, []byte{byte(c - 1)}))
		}
		lo = c + 1
	}
	return abnf.AltFirst(key, ops[0], ops[1:]...)
}
