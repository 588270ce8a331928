package connuri

//go:generate go tool errtrace -w .
//go:generate go tool mockgen -destination mock_test.go -package connuri_test . Parser,Params

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/connuri/internal/errorutil"
	"github.com/ghettovoice/connuri/internal/log"
	"github.com/ghettovoice/connuri/postgres"
)

// Params represents parsed connection parameters.
// Concrete types are defined by parsers, e.g. [postgres.Params].
type Params interface {
	// Kind returns the fixed kind tag of the parameters, e.g. "postgresql".
	Kind() string
}

// Parser parses a connection URI of a specific scheme.
type Parser interface {
	Parse(s string) (Params, error)
}

// ParserFunc is an adapter to use ordinary functions as a [Parser].
type ParserFunc func(s string) (Params, error)

// Parse calls f(s).
func (f ParserFunc) Parse(s string) (Params, error) { return errtrace.Wrap2(f(s)) }

// PostgresParser returns a [Parser] of PostgreSQL connection URIs, see [postgres.Parse].
func PostgresParser() Parser {
	return ParserFunc(func(s string) (Params, error) {
		p, err := postgres.Parse(s)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return p, nil
	})
}

// DefaultParsers returns a new scheme table with parsers for "postgres" and "postgresql" schemes.
func DefaultParsers() map[string]Parser {
	pg := PostgresParser()
	return map[string]Parser{
		"postgres":   pg,
		"postgresql": pg,
	}
}

// DispatcherOptions are the options for a [Dispatcher].
type DispatcherOptions struct {
	// Log is the logger for debug records about dispatching.
	// If nil, the [log.Noop] is used.
	Log *slog.Logger
}

func (o *DispatcherOptions) log() *slog.Logger {
	if o == nil || o.Log == nil {
		return log.Noop
	}
	return o.Log
}

// Dispatcher routes connection URIs to parsers by scheme.
// It is safe for concurrent use.
type Dispatcher struct {
	parsers map[string]Parser
	log     *slog.Logger
}

// NewDispatcher creates a new [Dispatcher] over the scheme table parsers.
// The table is copied, scheme keys are matched exactly and must be non-empty and contain no ":".
// Options are optional, if nil, default values are used (see [DispatcherOptions]).
func NewDispatcher(parsers map[string]Parser, opts *DispatcherOptions) (*Dispatcher, error) {
	if len(parsers) == 0 {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("empty scheme table"))
	}
	for scheme, p := range parsers {
		if scheme == "" || strings.Contains(scheme, ":") {
			return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid scheme %q", scheme))
		}
		if p == nil {
			return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("nil parser for scheme %q", scheme))
		}
	}
	return &Dispatcher{
		parsers: maps.Clone(parsers),
		log:     opts.log(),
	}, nil
}

// Schemes returns sorted schemes known by the dispatcher.
func (d *Dispatcher) Schemes() []string {
	return slices.Sorted(maps.Keys(d.parsers))
}

// Parse parses the connection URI s with the parser registered for its scheme.
// The scheme is the part of s before the first ":".
// The whole s is passed to the parser and its result is returned unchanged.
func (d *Dispatcher) Parse(s string) (Params, error) {
	scheme, _, ok := strings.Cut(s, ":")
	if !ok {
		d.log.LogAttrs(context.Background(), slog.LevelDebug, "connection URI without scheme")
		return nil, errtrace.Wrap(ErrNoSchemeSeparator)
	}

	p, ok := d.parsers[scheme]
	if !ok {
		d.log.LogAttrs(context.Background(), slog.LevelDebug,
			"no parser for connection URI scheme",
			slog.String("scheme", scheme),
		)
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownScheme, "%q", scheme))
	}

	params, err := p.Parse(s)
	if err != nil {
		d.log.LogAttrs(context.Background(), slog.LevelDebug,
			"failed to parse connection URI",
			slog.String("scheme", scheme),
			slog.Any("error", err),
		)
		return nil, errtrace.Wrap(err)
	}

	d.log.LogAttrs(context.Background(), slog.LevelDebug,
		"connection URI parsed",
		slog.String("scheme", scheme),
		slog.Any("params", params),
	)
	return params, nil
}

// Parse parses the connection URI s with [DefaultParsers].
func Parse(s string) (Params, error) {
	d, err := NewDispatcher(DefaultParsers(), nil)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return errtrace.Wrap2(d.Parse(s))
}
