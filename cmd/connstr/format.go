package main

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/connstr"
	"github.com/ghettovoice/connstr/internal/errorutil"
)

func (a *app) formatCmd() *cobra.Command {
	var (
		hosts, opts            []string
		user, passwd, endpoint string
	)

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Build a connection string from its components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params := &connstr.Params{Endpoint: endpoint}
			for _, h := range hosts {
				addr, err := connstr.ParseAddr(h)
				if err != nil {
					return errtrace.Wrap(err)
				}
				params.Hosts = append(params.Hosts, addr)
			}

			flags := cmd.Flags()
			if flags.Changed("password") {
				params.User = connstr.UserPassword(user, passwd)
			} else if user != "" {
				params.User = connstr.User(user)
			}
			params.HasEndpoint = flags.Changed("endpoint")

			if len(opts) > 0 {
				params.Options = make(connstr.Values, len(opts))
			}
			for _, opt := range opts {
				k, v, ok := strings.Cut(opt, "=")
				if !ok {
					return errtrace.Wrap(errorutil.NewInvalidArgumentError("option %q is not in key=value form", opt))
				}
				params.Options.Set(k, v)
			}

			s, err := a.parser.Format(params)
			if err != nil {
				return errtrace.Wrap(err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.render(s))
			return errtrace.Wrap(err)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&hosts, "host", nil, "host[:port] or [ipv6][:port], the first one is primary; may be repeated")
	flags.StringVar(&user, "user", "", "username")
	flags.StringVar(&passwd, "password", "", "password, an explicit empty value renders as \"user:\"")
	flags.StringVar(&endpoint, "endpoint", "", "endpoint, like a virtual host or database name")
	flags.StringArrayVar(&opts, "option", nil, "key=value option; may be repeated")
	cmd.MarkFlagRequired("host") //nolint:errcheck
	return cmd
}
