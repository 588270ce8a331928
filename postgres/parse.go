package postgres

//go:generate go tool errtrace -w .

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/connuri/internal/errorutil"
	"github.com/ghettovoice/connuri/internal/grammar"
)

// DefaultPort is the port used for hosts without an explicit one.
const DefaultPort uint16 = 5432

// Names of the options that override positional URI components.
const (
	OptUser     = "user"
	OptPassword = "password"
	OptHost     = "host"
	OptHostaddr = "hostaddr"
	OptPort     = "port"
	OptDBName   = "dbname"
)

var reservedOpts = [...]string{OptUser, OptPassword, OptHost, OptPort, OptDBName}

func isReservedOpt(k string) bool {
	for _, r := range reservedOpts {
		if k == r {
			return true
		}
	}
	return false
}

// Parse parses a PostgreSQL connection URI s.
//
// The scheme must be "postgresql" or "postgres". On failure, the returned error matches
// one of [ErrMalformedURI], [ErrMalformedOption], [ErrInvalidPort], [ErrPortCountMismatch] or
// [ErrHostaddrCountMismatch] with [errors.Is].
//
// Targets are validated strictly: "host:abc" and "a:1:2" fail with [ErrMalformedURI],
// while "1x" and "99999" in a port option fail with [ErrInvalidPort].
func Parse(s string) (*Params, error) {
	raw, err := decompose(s)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(raw.resolve())
}

// rawFields holds decoded but not yet validated URI components.
type rawFields struct {
	user, password string
	host, port     string // comma-joined target lists
	dbname         string
	opts           Options
}

func decompose(s string) (*rawFields, error) {
	parts, err := grammar.ParseURI(s)
	if err != nil {
		return nil, errtrace.Wrap(newMalformedURIErr(err))
	}

	var raw rawFields
	if parts.HasUser {
		if raw.user, err = unescapeComponent("user", parts.User); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	if parts.HasPassword {
		if raw.password, err = unescapeComponent("password", parts.Password); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	if raw.host, raw.port, err = resolveTargets(parts.Targets); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if parts.HasDBName {
		if raw.dbname, err = unescapeComponent("dbname", parts.DBName); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	if raw.opts, err = decodeQuery(parts.Query); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &raw, nil
}

func unescapeComponent(name, s string) (string, error) {
	v, err := grammar.Unescape(s)
	if err != nil {
		return "", errtrace.Wrap(newMalformedURIErr(fmt.Errorf("%s: %w", name, err)))
	}
	return v, nil
}

// resolveTargets splits the comma-separated targets s and returns comma-joined lists of decoded hosts and ports.
// An empty s is a single empty target.
func resolveTargets(s string) (hosts, ports string, err error) {
	var hsb, psb strings.Builder
	for i, t := range strings.Split(s, ",") {
		tp, err := grammar.ParseTarget(t)
		if err != nil {
			return "", "", errtrace.Wrap(newMalformedURIErr(fmt.Errorf("target %q: %w", t, err)))
		}

		host, err := grammar.Unescape(tp.Host)
		if err != nil {
			return "", "", errtrace.Wrap(newMalformedURIErr(fmt.Errorf("target %q: %w", t, err)))
		}

		if i > 0 {
			hsb.WriteByte(',')
			psb.WriteByte(',')
		}
		hsb.WriteString(stripBrackets(host))
		psb.WriteString(tp.Port)
	}
	return hsb.String(), psb.String(), nil
}

// stripBrackets removes enclosing brackets of an IP literal host like "[::1]".
func stripBrackets(host string) string {
	if len(host) >= 2 && host[0] == '[' && host[len(host)-1] == ']' &&
		!strings.Contains(host[1:len(host)-1], "]") {
		return host[1 : len(host)-1]
	}
	return host
}

// decodeQuery splits the query s into decoded options, the last occurrence of a key wins.
func decodeQuery(s string) (Options, error) {
	opts := make(Options)
	if s == "" {
		return opts, nil
	}

	for pair := range strings.SplitSeq(s, "&") {
		k, v, err := grammar.ParseOption(pair)
		if err != nil {
			return nil, errtrace.Wrap(newMalformedOptionErr(fmt.Errorf("%q: %w", pair, err)))
		}
		if k, err = grammar.Unescape(k); err != nil {
			return nil, errtrace.Wrap(newMalformedOptionErr(fmt.Errorf("key %q: %w", pair, err)))
		}
		if v, err = grammar.Unescape(v); err != nil {
			return nil, errtrace.Wrap(newMalformedOptionErr(fmt.Errorf("value %q: %w", pair, err)))
		}
		opts[k] = v
	}
	return opts, nil
}

// merge returns positional components overridden by query options.
func (r *rawFields) merge() map[string]string {
	m := make(map[string]string, len(r.opts)+len(reservedOpts))
	m[OptUser] = r.user
	m[OptPassword] = r.password
	m[OptHost] = r.host
	m[OptPort] = r.port
	m[OptDBName] = r.dbname
	maps.Copy(m, r.opts)
	return m
}

func (r *rawFields) resolve() (*Params, error) {
	m := r.merge()

	hosts := strings.Split(m[OptHost], ",")

	var hostaddrs []string
	if v := m[OptHostaddr]; v != "" {
		hostaddrs = strings.Split(v, ",")
	}

	ports, err := parsePorts(m[OptPort])
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	if len(ports) != 1 && len(ports) != len(hosts) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(
			ErrPortCountMismatch,
			"got %d ports for %d hosts", len(ports), len(hosts),
		))
	}
	if len(hostaddrs) != 0 && len(hostaddrs) != len(hosts) {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(
			ErrHostaddrCountMismatch,
			"got %d hostaddrs for %d hosts", len(hostaddrs), len(hosts),
		))
	}

	eps := make([]Endpoint, len(hosts))
	for i, h := range hosts {
		eps[i] = Endpoint{Host: h, Port: ports[0]}
		if len(ports) != 1 {
			eps[i].Port = ports[i]
		}
		if len(hostaddrs) != 0 {
			eps[i].Hostaddr = hostaddrs[i]
			eps[i].HasHostaddr = true
		}
	}

	p := &Params{
		User:      m[OptUser],
		Password:  m[OptPassword],
		Endpoints: eps,
		DBName:    m[OptDBName],
		Options:   make(Options, len(m)),
	}
	if p.DBName == "" {
		p.DBName = p.User
	}
	for k, v := range m {
		if !isReservedOpt(k) {
			p.Options[k] = v
		}
	}
	return p, nil
}

// parsePorts parses the comma-separated port list s, an empty item is [DefaultPort].
func parsePorts(s string) ([]uint16, error) {
	items := strings.Split(s, ",")
	ports := make([]uint16, len(items))
	for i, item := range items {
		if item == "" {
			ports[i] = DefaultPort
			continue
		}
		port, err := strconv.ParseUint(item, 10, 16)
		if err != nil {
			return nil, errtrace.Wrap(newInvalidPortErr("%q", item))
		}
		ports[i] = uint16(port)
	}
	return ports, nil
}
