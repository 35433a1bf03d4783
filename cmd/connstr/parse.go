package main

import (
	"encoding/json"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/connstr"
	"github.com/ghettovoice/connstr/internal/util"
)

type paramsView struct {
	Scheme           string         `json:"scheme"`
	Username         string         `json:"username,omitempty"`
	Password         *string        `json:"password,omitempty"`
	Hosts            []connstr.Addr `json:"hosts"`
	Endpoint         *string        `json:"endpoint,omitempty"`
	Options          connstr.Values `json:"options,omitempty"`
	ConnectionString string         `json:"connection_string"`
}

func (a *app) newParamsView(p *connstr.Params) paramsView {
	v := paramsView{
		Scheme:   p.Scheme,
		Username: p.User.Username(),
		Hosts:    p.Hosts,
		Options:  p.Options,
	}
	if pwd, ok := p.User.Password(); ok {
		if !a.showSecrets {
			pwd = util.Mask(pwd)
		}
		v.Password = &pwd
	}
	if p.HasEndpoint || p.Endpoint != "" {
		v.Endpoint = &p.Endpoint
	}
	if a.showSecrets {
		v.ConnectionString = p.String()
	} else {
		v.ConnectionString = p.Redacted()
	}
	return v
}

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [connection-string]",
		Short: "Parse a connection string and print its components as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.connString(args)
			if err != nil {
				return errtrace.Wrap(err)
			}
			params, err := a.parser.Parse(s)
			if err != nil {
				return errtrace.Wrap(err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return errtrace.Wrap(enc.Encode(a.newParamsView(params)))
		},
	}
}
