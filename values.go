package connstr

import (
	"io"
	"maps"
	"slices"

	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/connstr/internal/grammar"
	"github.com/ghettovoice/connstr/internal/ioutil"
)

// Values maps option keys to values.
// Keys are case-sensitive; a nil Values means no options segment.
type Values map[string]string

// Get returns the value associated with the key and whether it is present.
func (vals Values) Get(key string) (string, bool) {
	v, ok := vals[key]
	return v, ok
}

// Set sets the key to value. It replaces any existing value.
func (vals Values) Set(key, value string) Values {
	vals[key] = value
	return vals
}

// Has checks whether a given key is in the map.
func (vals Values) Has(key string) bool {
	_, ok := vals[key]
	return ok
}

// Keys returns the keys in sorted order.
func (vals Values) Keys() []string {
	return slices.Sorted(maps.Keys(vals))
}

// Clone returns a copy of the map. A nil map stays nil.
func (vals Values) Clone() Values {
	return maps.Clone(vals)
}

func optionsFromNode(node *abnf.Node) Values {
	if node.IsEmpty() {
		return nil
	}
	opts := make(Values)
	for _, opt := range node.GetNodes(grammar.KeyOption) {
		// tokens without '=' are dropped
		val, ok := opt.GetNode(grammar.KeyOptionValue)
		if !ok {
			continue
		}
		key, _ := opt.GetNode(grammar.KeyOptionKey)
		opts[grammar.Unescape(key.String())] = grammar.Unescape(val.String())
	}
	return opts
}

// renderTo writes "k1=v1&k2=v2..." sorted by key.
func (vals Values) renderTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i, k := range vals.Keys() {
		if i > 0 {
			cw.WriteString("&")
		}
		cw.WriteString(grammar.Escape(k, nil), "=", grammar.Escape(vals[k], nil))
	}
	return errtrace.Wrap2(cw.Result())
}
