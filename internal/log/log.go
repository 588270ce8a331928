// Package log provides logging utilities.
package log

//go:generate go tool errtrace -w .

import (
	"context"
	"io"
	"log/slog"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/connuri/internal/errorutil"
)

const masked = "xxxxx"

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByKey("password", func(v slog.Value) slog.Value {
		if v.Kind() == slog.KindString && v.String() == "" {
			return v
		}
		return slog.StringValue(masked)
	}),
)

// Format names accepted by [New].
const (
	FormatConsole = "console"
	FormatDev     = "dev"
	FormatJSON    = "json"
	FormatNone    = "none"
)

// ErrUnknownFormat is returned by [New] for an unsupported format name.
const ErrUnknownFormat errorutil.Error = "unknown log format"

// New creates a logger writing records of the given format to w.
func New(format string, w io.Writer, level slog.Leveler) (*slog.Logger, error) {
	switch format {
	case FormatConsole, "":
		return slog.New(newHandler(
			console.NewHandler(w, &console.HandlerOptions{
				Level:      level,
				TimeFormat: time.RFC3339Nano,
			}),
		)), nil
	case FormatDev:
		return slog.New(newHandler(
			devslog.NewHandler(w, &devslog.Options{
				HandlerOptions: &slog.HandlerOptions{
					AddSource: true,
					Level:     level,
				},
				SortKeys:   true,
				TimeFormat: time.RFC3339Nano,
			}),
		)), nil
	case FormatJSON:
		return slog.New(newHandler(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
		)), nil
	case FormatNone:
		return Noop, nil
	default:
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrUnknownFormat, "%q", format))
	}
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// ParseLevel parses a level name like "debug" or "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return lvl, nil
}
