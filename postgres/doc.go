// Package postgres implements parsing of PostgreSQL multi-host connection URIs.
//
// A connection URI has the form
//
//	postgresql://[user[:password]@][host][:port][,...][/dbname][?key=value[&...]]
//
// where every component is optional and percent-encoded. The scheme may also be spelled "postgres".
// Query options named user, password, host, port or dbname override the positional components.
// Hosts, ports and the hostaddr option are comma-separated lists which are paired into [Endpoint]s:
// the port list must hold one port (shared by all hosts) or one port per host, the hostaddr list
// must be empty or hold one address per host.
//
// See https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-CONNSTRING-URIS.
package postgres
