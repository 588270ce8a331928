// Package grammar implements the ABNF grammar of PostgreSQL connection URIs.
//
//	postgresql-uri = scheme "://" authority [ "/" dbname ] [ "?" query ]
//	scheme         = "postgresql" / "postgres"
//	authority      = userinfo "@" targets / bare-targets
//	userinfo       = user [ ":" password ]
//	user           = *( %x00-2E / %x30-39 / %x3B-3E / %x41-FF )
//	password       = *( %x00-2E / %x30-3E / %x41-FF )
//	targets        = *( %x00-2E / %x30-3E / %x40-FF )
//	bare-targets   = *( %x00-2E / %x30-3E / %x41-FF )
//	dbname         = *( %x00-3E / %x40-FF )
//	query          = *OCTET
//
//	target         = [ host ] [ ":" port ]
//	host           = IP-literal / reg-host
//	IP-literal     = "[" *( %x00-5C / %x5E-FF ) "]"
//	reg-host       = 1*( %x00-39 / %x3B-FF )
//	port           = *DIGIT
//
//	option         = key "=" value
//	key            = *( %x00-3C / %x3E-FF )
//	value          = *OCTET
//
// The userinfo alternative wins whenever the authority contains "@".
// Percent-decoding is not part of the grammar, see [Unescape].
package grammar

//go:generate go tool errtrace -w .

import (
	"braces.dev/errtrace"
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/connuri/internal/errorutil"
)

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
)

func newMalformedInputErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedInput, args...) //errtrace:skip
}

// parse matches the whole input s against the operator op and returns the longest match.
func parse(op abnf.Operator, s []byte) (*abnf.Node, error) {
	if len(s) == 0 {
		return nil, errtrace.Wrap(ErrEmptyInput)
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op(s, 0, ns); err != nil {
		return nil, errtrace.Wrap(newMalformedInputErr(err))
	}

	n := ns.Best()
	if nl, il := n.Len(), len(s); nl < il {
		return nil, errtrace.Wrap(newMalformedInputErr("node length %d < input length %d", nl, il))
	}
	return n, nil
}

// nodeValue returns the string value of the first node with key k and a flag indicating whether it was found.
func nodeValue(n *abnf.Node, k string) (string, bool) {
	if n.Key == k {
		return n.String(), true
	}
	sn, ok := n.GetNode(k)
	if !ok {
		return "", false
	}
	return sn.String(), true
}

// Schemes accepted by [ParseURI], matched case-sensitively.
const (
	SchemePostgres   = "postgres"
	SchemePostgresql = "postgresql"
)

// URIParts holds raw (not decoded) components of a connection URI.
// Has* flags distinguish absent components from present but empty ones.
type URIParts struct {
	Scheme      string
	User        string
	HasUser     bool
	Password    string
	HasPassword bool
	Targets     string
	DBName      string
	HasDBName   bool
	Query       string
	HasQuery    bool
}

// ParseURI decomposes a PostgreSQL connection URI s into raw components.
func ParseURI[T ~string | ~[]byte](s T) (URIParts, error) {
	n, err := parse(pgURI, []byte(s))
	if err != nil {
		return URIParts{}, errtrace.Wrap(err)
	}

	var parts URIParts
	parts.Scheme, _ = nodeValue(n, "scheme")
	if parts.Scheme != SchemePostgres && parts.Scheme != SchemePostgresql {
		return URIParts{}, errtrace.Wrap(newMalformedInputErr("unexpected scheme %q", parts.Scheme))
	}
	if _, ok := n.GetNode("userinfo"); ok {
		parts.User, _ = nodeValue(n, "user")
		parts.HasUser = true
		if _, ok := n.GetNode(keyColonPassword); ok {
			parts.Password, _ = nodeValue(n, "password")
			parts.HasPassword = true
		}
	}
	parts.Targets, _ = nodeValue(n, "targets")
	if _, ok := n.GetNode(keySlashDBName); ok {
		parts.DBName, _ = nodeValue(n, "dbname")
		parts.HasDBName = true
	}
	if _, ok := n.GetNode(keyQmarkQuery); ok {
		parts.Query, _ = nodeValue(n, "query")
		parts.HasQuery = true
	}
	return parts, nil
}

// TargetParts holds raw (not decoded) components of a single connection target.
type TargetParts struct {
	Host    string
	HasHost bool
	Port    string
	HasPort bool
}

// ParseTarget decomposes a single "host:port" target s.
// An empty target is valid and has neither host nor port.
func ParseTarget[T ~string | ~[]byte](s T) (TargetParts, error) {
	if len(s) == 0 {
		return TargetParts{}, nil
	}

	n, err := parse(target, []byte(s))
	if err != nil {
		return TargetParts{}, errtrace.Wrap(err)
	}

	var parts TargetParts
	parts.Host, parts.HasHost = nodeValue(n, "host")
	if _, ok := n.GetNode(keyColonPort); ok {
		parts.Port, _ = nodeValue(n, "port")
		parts.HasPort = true
	}
	return parts, nil
}

// ParseOption splits a single "key=value" query component s.
func ParseOption[T ~string | ~[]byte](s T) (key, value string, err error) {
	n, err := parse(option, []byte(s))
	if err != nil {
		return "", "", errtrace.Wrap(err)
	}
	key, _ = nodeValue(n, "key")
	value, _ = nodeValue(n, "value")
	return key, value, nil
}
