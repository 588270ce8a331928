package postgres

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/connuri/internal/grammar"
	"github.com/ghettovoice/connuri/internal/ioutil"
	"github.com/ghettovoice/connuri/internal/util"
)

// Kind is the kind tag of PostgreSQL connection parameters.
const Kind = "postgresql"

// Params represents resolved connection parameters of a PostgreSQL connection URI.
type Params struct {
	User      string
	Password  string
	Endpoints []Endpoint // never empty after [Parse]
	DBName    string
	Options   Options // options except user, password, host, port and dbname
}

// Kind returns the kind tag "postgresql".
func (*Params) Kind() string { return Kind }

// Clone returns a deep copy of the parameters.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	p2 := *p
	p2.Endpoints = slices.Clone(p.Endpoints)
	p2.Options = p.Options.Clone()
	return &p2
}

// RenderTo writes the canonical connection URI of the parameters to w.
//
// Components are percent-encoded, every endpoint carries an explicit port and options are sorted by key.
// Parsing the rendered URI gives back equal parameters, unless a host contains a comma.
func (p *Params) RenderTo(w io.Writer) (num int, err error) {
	if p == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint(Kind, "://")
	if p.User != "" || p.Password != "" {
		cw.Fprint(grammar.Escape(p.User, shouldEscapeUserChar))
		if p.Password != "" {
			cw.Fprint(":", grammar.Escape(p.Password, shouldEscapePasswordChar))
		}
		cw.Fprint("@")
	}
	for i, ep := range p.Endpoints {
		if i > 0 {
			cw.Fprint(",")
		}
		cw.Call(ep.renderTarget)
	}
	if p.DBName != "" {
		cw.Fprint("/", grammar.Escape(p.DBName, shouldEscapeDBNameChar))
	}
	cw.Call(p.renderOptions)
	return errtrace.Wrap2(cw.Result())
}

func (p *Params) renderOptions(w io.Writer) (num int, err error) {
	opts := maps.Clone(p.Options)
	for k := range opts {
		if isReservedOpt(k) {
			delete(opts, k)
		}
	}
	if _, ok := opts[OptHostaddr]; !ok && slices.ContainsFunc(p.Endpoints, func(ep Endpoint) bool { return ep.HasHostaddr }) {
		addrs := make([]string, len(p.Endpoints))
		for i, ep := range p.Endpoints {
			addrs[i] = ep.Hostaddr
		}
		if opts == nil {
			opts = make(Options, 1)
		}
		opts[OptHostaddr] = strings.Join(addrs, ",")
	}
	if len(opts) == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.Fprint("?")
	for i, k := range slices.Sorted(maps.Keys(opts)) {
		if i > 0 {
			cw.Fprint("&")
		}
		cw.Fprint(
			grammar.Escape(k, shouldEscapeOptionKeyChar),
			"=",
			grammar.Escape(opts[k], shouldEscapeOptionValueChar),
		)
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the canonical connection URI of the parameters.
// See [Params.RenderTo].
func (p *Params) Render() string {
	if p == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	p.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the canonical connection URI of the parameters, the password is included as is.
func (p *Params) String() string {
	if p == nil {
		return ""
	}
	return p.Render()
}

// Format implements [fmt.Formatter]. Verbs "s" and "v" print the URI with the password masked,
// verb "q" prints the quoted URI, "%+s" prints the URI with the password.
func (p *Params) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		if f.Flag('+') && verb == 's' {
			p.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, p.redacted().String())
	case 'q':
		fmt.Fprint(f, strconv.Quote(p.redacted().String()))
	default:
		type hideMethods Params
		type Params hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Params)(p))
	}
}

const redactedPassword = "xxxxx"

func (p *Params) redacted() *Params {
	if p == nil || p.Password == "" {
		return p
	}
	p2 := *p
	p2.Password = redactedPassword
	return &p2
}

// MarshalText implements [encoding.TextMarshaler].
func (p *Params) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Params) UnmarshalText(text []byte) error {
	p1, err := Parse(string(text))
	if err != nil {
		*p = Params{}
		return errtrace.Wrap(err)
	}
	*p = *p1
	return nil
}

// LogValue implements [slog.LogValuer]. The password is masked.
func (p *Params) LogValue() slog.Value {
	if p == nil {
		return slog.Value{}
	}

	attrs := make([]slog.Attr, 0, 5)
	attrs = append(attrs, slog.String("user", p.User))
	if p.Password != "" {
		attrs = append(attrs, slog.String("password", redactedPassword))
	}
	eps := make([]string, len(p.Endpoints))
	for i, ep := range p.Endpoints {
		eps[i] = ep.String()
	}
	attrs = append(attrs,
		slog.Any("endpoints", eps),
		slog.String("dbname", p.DBName),
	)
	if len(p.Options) > 0 {
		attrs = append(attrs, slog.Any("options", p.Options))
	}
	return slog.GroupValue(attrs...)
}

// Endpoint represents a single connection target.
type Endpoint struct {
	Host        string // empty means the client default
	Hostaddr    string
	HasHostaddr bool
	Port        uint16
}

// Addr returns the "host:port" address of the endpoint. The numeric Hostaddr is preferred over Host if set.
func (ep Endpoint) Addr() string {
	host := ep.Host
	if ep.HasHostaddr && ep.Hostaddr != "" {
		host = ep.Hostaddr
	}
	return joinHostPort(host, ep.Port)
}

func joinHostPort(host string, port uint16) string {
	if isIPv6Host(host) {
		host = "[" + host + "]"
	}
	return host + ":" + strconv.FormatUint(uint64(port), 10)
}

func isIPv6Host(host string) bool {
	return strings.Contains(host, ":") && !strings.Contains(host, "]")
}

// String returns the "host:port" form of the endpoint.
func (ep Endpoint) String() string { return joinHostPort(ep.Host, ep.Port) }

// LogValue implements [slog.LogValuer].
func (ep Endpoint) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 3)
	attrs = append(attrs, slog.String("host", ep.Host))
	if ep.HasHostaddr {
		attrs = append(attrs, slog.String("hostaddr", ep.Hostaddr))
	}
	attrs = append(attrs, slog.Int("port", int(ep.Port)))
	return slog.GroupValue(attrs...)
}

func (ep Endpoint) renderTarget(w io.Writer) (num int, err error) {
	var host string
	if isIPv6Host(ep.Host) {
		host = "[" + grammar.Escape(ep.Host, shouldEscapeIPLiteralChar) + "]"
	} else {
		host = grammar.Escape(ep.Host, shouldEscapeHostChar)
	}
	return errtrace.Wrap2(fmt.Fprint(w, host, ":", ep.Port))
}

// Options represents extra connection options. Keys are unique.
type Options map[string]string

// Clone returns a copy of the options.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	return maps.Clone(o)
}

// Keys returns sorted option keys.
func (o Options) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}

func shouldEscapeUserChar(c byte) bool        { return !grammar.IsUserCharUnreserved(c) }
func shouldEscapePasswordChar(c byte) bool    { return !grammar.IsPasswordCharUnreserved(c) }
func shouldEscapeHostChar(c byte) bool        { return !grammar.IsHostCharUnreserved(c) }
func shouldEscapeIPLiteralChar(c byte) bool   { return !grammar.IsIPLiteralCharUnreserved(c) }
func shouldEscapeDBNameChar(c byte) bool      { return !grammar.IsDBNameCharUnreserved(c) }
func shouldEscapeOptionKeyChar(c byte) bool   { return !grammar.IsOptionKeyCharUnreserved(c) }
func shouldEscapeOptionValueChar(c byte) bool { return !grammar.IsOptionValueCharUnreserved(c) }
