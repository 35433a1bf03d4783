// Package cluster registers the hosts of a multi-host connection string on a broker transport.
//
// The first host of the connection string is the primary broker: the transport gets
// a connection string restricted to it. Every other host is added as a secondary
// cluster node, in the order of the connection string.
package cluster

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination ../internal/testutil/clustermock/transport.go -package clustermock . Transport

import (
	"fmt"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/connstr"
	"github.com/ghettovoice/connstr/internal/errorutil"
	"github.com/ghettovoice/connstr/internal/log"
)

// Transport is a broker transport that accepts a primary connection string and secondary nodes.
type Transport interface {
	// SetConnectionString sets the connection string of the primary broker.
	SetConnectionString(connStr string) error
	// AddClusterNode adds a secondary broker node.
	AddClusterNode(addr connstr.Addr, useTLS bool) error
}

// Topology is a connection string split into the primary broker and secondary nodes.
type Topology struct {
	// Primary holds the parsed params restricted to the first host.
	Primary *connstr.Params
	// Nodes holds the remaining hosts in order.
	Nodes []connstr.Addr
}

// Split splits params into the primary broker and secondary nodes.
// params is not modified.
func Split(params *connstr.Params) (Topology, error) {
	if params == nil {
		return Topology{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil params"))
	}
	primary, ok := params.Primary()
	if !ok {
		return Topology{}, errtrace.Wrap(errorutil.NewWrapperError(connstr.ErrMissingHost, "no hosts to split"))
	}
	var nodes []connstr.Addr
	if len(params.Hosts) > 1 {
		nodes = append(nodes, params.Hosts[1:]...)
	}
	return Topology{
		Primary: params.WithHosts(primary),
		Nodes:   nodes,
	}, nil
}

// LogValue implements [slog.LogValuer]; credentials are redacted.
func (top Topology) LogValue() slog.Value {
	nodes := make([]string, len(top.Nodes))
	for i, n := range top.Nodes {
		nodes[i] = n.String()
	}
	return slog.GroupValue(
		slog.Any("primary", top.Primary),
		slog.Any("nodes", nodes),
	)
}

// Options are [Configure] options.
type Options struct {
	// UseTLS is passed to [Transport.AddClusterNode] for every secondary node.
	UseTLS bool
	// Log is the logger.
	// If nil, the [log.Noop] is used.
	Log *slog.Logger
}

func (o *Options) useTLS() bool { return o != nil && o.UseTLS }

func (o *Options) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Noop
	}
	return o.Log
}

// Configure parses connStr with parser and registers its hosts on tp:
// the connection string of the first host goes to [Transport.SetConnectionString],
// every other host to [Transport.AddClusterNode].
// It stops at the first transport error.
// Options are optional, if nil, default values are used (see [Options]).
func Configure(parser connstr.Parser, connStr string, tp Transport, opts *Options) (Topology, error) {
	if tp == nil {
		return Topology{}, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid transport"))
	}

	logger := opts.log()

	params, err := parser.Parse(connStr)
	if err != nil {
		logger.Error("failed to parse connection string",
			slog.String(log.ConnStringKey, connStr),
			slog.Any("error", err),
		)
		return Topology{}, errtrace.Wrap(err)
	}

	top, err := Split(params)
	if err != nil {
		return Topology{}, errtrace.Wrap(err)
	}

	primary, err := parser.Format(top.Primary)
	if err != nil {
		return Topology{}, errtrace.Wrap(err)
	}
	if err := tp.SetConnectionString(primary); err != nil {
		return Topology{}, errtrace.Wrap(fmt.Errorf("set primary connection string: %w", err))
	}
	logger.Debug("primary broker configured", slog.Any("primary", top.Primary))

	useTLS := opts.useTLS()
	for _, node := range top.Nodes {
		if err := tp.AddClusterNode(node, useTLS); err != nil {
			return Topology{}, errtrace.Wrap(fmt.Errorf("add cluster node %s: %w", node, err))
		}
		logger.Debug("cluster node added", slog.String("node", node.String()), slog.Bool("tls", useTLS))
	}

	logger.Info("broker topology configured", slog.Any("topology", top))
	return top, nil
}
