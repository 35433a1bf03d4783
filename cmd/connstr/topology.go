package main

import (
	"fmt"
	"io"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/connstr"
	"github.com/ghettovoice/connstr/cluster"
)

// printTransport is a [cluster.Transport] that prints the registered broker topology.
type printTransport struct {
	w      io.Writer
	render func(string) string
}

func (t printTransport) SetConnectionString(connStr string) error {
	_, err := fmt.Fprintf(t.w, "primary: %s\n", t.render(connStr))
	return errtrace.Wrap(err)
}

func (t printTransport) AddClusterNode(addr connstr.Addr, useTLS bool) error {
	_, err := fmt.Fprintf(t.w, "node: %s tls=%t\n", addr, useTLS)
	return errtrace.Wrap(err)
}

func (a *app) topologyCmd() *cobra.Command {
	var useTLS bool

	cmd := &cobra.Command{
		Use:   "topology [connection-string]",
		Short: "Split a multi-host connection string into the primary broker and cluster nodes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.connString(args)
			if err != nil {
				return errtrace.Wrap(err)
			}
			tp := printTransport{w: cmd.OutOrStdout(), render: a.render}
			_, err = cluster.Configure(a.parser, s, tp, &cluster.Options{UseTLS: useTLS, Log: a.log})
			return errtrace.Wrap(err)
		},
	}
	cmd.Flags().BoolVar(&useTLS, "tls", false, "connect to cluster nodes over TLS")
	return cmd
}
