package grammar

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/connstr/internal/constraints"
	"github.com/ghettovoice/connstr/internal/errorutil"
)

// ErrSyntax is returned when the input does not match a rule.
const ErrSyntax errorutil.Error = "syntax error"

func newSyntaxErr(args ...any) error {
	return errorutil.NewWrapperError(ErrSyntax, args...) //errtrace:skip
}

// ParseConnString parses a connection string into the node tree.
// The whole input must match.
func ParseConnString[T constraints.Byteseq](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(ConnString, s))
}

// ParseHostEntry parses a single host entry into the node tree.
// The whole input must match.
func ParseHostEntry[T constraints.Byteseq](s T) (*abnf.Node, error) {
	return errtrace.Wrap2(parse(HostEntry, s))
}

func parse[T constraints.Byteseq](rule abnf.Rule, s T) (*abnf.Node, error) {
	ns := abnf.NewNodes()
	defer ns.Free()
	if err := rule([]byte(s), ns); err != nil {
		return nil, errtrace.Wrap(newSyntaxErr(err))
	}
	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newSyntaxErr("unexpected %q at position %d", s[nl], nl))
	}
	return n, nil
}
