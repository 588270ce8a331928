package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"braces.dev/errtrace"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/connuri"
	"github.com/ghettovoice/connuri/postgres"
)

const maskedPassword = "xxxxx"

type paramsView struct {
	Kind      string            `json:"kind" yaml:"kind"`
	User      string            `json:"user,omitempty" yaml:"user,omitempty"`
	Password  string            `json:"password,omitempty" yaml:"password,omitempty"`
	Endpoints []endpointView    `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	DBName    string            `json:"dbname,omitempty" yaml:"dbname,omitempty"`
	Options   map[string]string `json:"options,omitempty" yaml:"options,omitempty"`
}

type endpointView struct {
	Host     string  `json:"host" yaml:"host"`
	Hostaddr *string `json:"hostaddr,omitempty" yaml:"hostaddr,omitempty"`
	Port     uint16  `json:"port" yaml:"port"`
}

func newParamsView(params connuri.Params, showPasswd bool) paramsView {
	view := paramsView{Kind: params.Kind()}

	p, ok := params.(*postgres.Params)
	if !ok {
		return view
	}

	view.User = p.User
	view.Password = p.Password
	if !showPasswd && view.Password != "" {
		view.Password = maskedPassword
	}
	view.Endpoints = make([]endpointView, len(p.Endpoints))
	for i, ep := range p.Endpoints {
		view.Endpoints[i] = endpointView{Host: ep.Host, Port: ep.Port}
		if ep.HasHostaddr {
			view.Endpoints[i].Hostaddr = &ep.Hostaddr
		}
	}
	view.DBName = p.DBName
	view.Options = p.Options
	return view
}

// printer writes parsed parameters in one of output formats.
type printer interface {
	Print(params connuri.Params) error
	Close() error
}

func newPrinter(format string, w io.Writer, showPasswd bool) printer {
	switch format {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlPrinter{enc, showPasswd}
	case OutputURI:
		return &uriPrinter{w, showPasswd}
	default:
		return &jsonPrinter{json.NewEncoder(w), showPasswd}
	}
}

type jsonPrinter struct {
	enc        *json.Encoder
	showPasswd bool
}

func (p *jsonPrinter) Print(params connuri.Params) error {
	return errtrace.Wrap(p.enc.Encode(newParamsView(params, p.showPasswd)))
}

func (*jsonPrinter) Close() error { return nil }

type yamlPrinter struct {
	enc        *yaml.Encoder
	showPasswd bool
}

func (p *yamlPrinter) Print(params connuri.Params) error {
	return errtrace.Wrap(p.enc.Encode(newParamsView(params, p.showPasswd)))
}

func (p *yamlPrinter) Close() error { return errtrace.Wrap(p.enc.Close()) }

type uriPrinter struct {
	w          io.Writer
	showPasswd bool
}

func (p *uriPrinter) Print(params connuri.Params) error {
	format := "%v\n"
	if p.showPasswd {
		format = "%+s\n"
	}
	_, err := fmt.Fprintf(p.w, format, params)
	return errtrace.Wrap(err)
}

func (*uriPrinter) Close() error { return nil }
