package grammar

import "github.com/ghettovoice/abnf"

// octetSet is a lookup table of octets accepted by a run.
type octetSet [256]bool

// octetsExcept returns a set of all octets except the given ones.
func octetsExcept(excl ...byte) *octetSet {
	var set octetSet
	for i := range set {
		set[i] = true
	}
	for _, c := range excl {
		set[c] = false
	}
	return &set
}

func octetsRange(lo, hi byte) *octetSet {
	var set octetSet
	for c := int(lo); c <= int(hi); c++ {
		set[c] = true
	}
	return &set
}

// run returns an operator that matches the longest run of octets from the set
// and emits it as a single node.
// Every run in this grammar is followed either by the end of input or by an octet
// outside its set, so shorter alternatives could never complete a match.
func run(key string, minLen uint, set *octetSet) abnf.Operator {
	return func(in []byte, pos uint, ns *abnf.Nodes) error {
		end := pos
		for end < uint(len(in)) && set[in[end]] {
			end++
		}
		if end-pos < minLen {
			return abnf.ErrNotMatched //errtrace:skip
		}
		ns.Append(&abnf.Node{Key: key, Pos: pos, Value: in[pos:end]})
		return nil
	}
}

func literal(s string) abnf.Operator {
	return abnf.Literal(`"`+s+`"`, []byte(s))
}

// Keys of the optional sequences, used to tell absent components from empty ones.
const (
	keyColonPassword = `":" password`
	keySlashDBName   = `"/" dbname`
	keyQmarkQuery    = `"?" query`
	keyColonPort     = `":" port`
)

var (
	scheme = abnf.Alt(
		"scheme",
		literal("postgresql"),
		literal("postgres"),
	)

	user     = run("user", 0, octetsExcept(':', '@', '/', '?'))
	password = run("password", 0, octetsExcept('@', '/', '?'))
	userinfo = abnf.Concat(
		"userinfo",
		user,
		abnf.Optional(`[ ":" password ]`, abnf.Concat(keyColonPassword, literal(":"), password)),
	)

	targets     = run("targets", 0, octetsExcept('/', '?'))
	bareTargets = run("targets", 0, octetsExcept('/', '?', '@'))
	authority   = abnf.Alt(
		"authority",
		abnf.Concat(`userinfo "@" targets`, userinfo, literal("@"), targets),
		bareTargets,
	)

	dbname = run("dbname", 0, octetsExcept('?'))
	query  = run("query", 0, octetsExcept())

	pgURI = abnf.Concat(
		"postgresql-uri",
		scheme,
		literal("://"),
		authority,
		abnf.Optional(`[ "/" dbname ]`, abnf.Concat(keySlashDBName, literal("/"), dbname)),
		abnf.Optional(`[ "?" query ]`, abnf.Concat(keyQmarkQuery, literal("?"), query)),
	)

	ipLiteral = abnf.Concat(
		"IP-literal",
		literal("["),
		run("*ip-literal-char", 0, octetsExcept(']')),
		literal("]"),
	)
	regHost = run("reg-host", 1, octetsExcept(':'))
	host    = abnf.Alt("host", ipLiteral, regHost)
	port    = run("port", 0, octetsRange('0', '9'))
	target  = abnf.Concat(
		"target",
		abnf.Optional("[ host ]", host),
		abnf.Optional(`[ ":" port ]`, abnf.Concat(keyColonPort, literal(":"), port)),
	)

	optKey   = run("key", 0, octetsExcept('='))
	optValue = run("value", 0, octetsExcept())
	option   = abnf.Concat("option", optKey, literal("="), optValue)
)
