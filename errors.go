package connuri

import (
	"github.com/ghettovoice/connuri/internal/errorutil"
	"github.com/ghettovoice/connuri/postgres"
)

// Error is a string-typed sentinel error.
type Error = errorutil.Error

const (
	// ErrNoSchemeSeparator is returned when the input contains no ":".
	ErrNoSchemeSeparator Error = "missing scheme separator"
	// ErrUnknownScheme is returned when no parser is registered for the input scheme.
	ErrUnknownScheme Error = "unknown scheme"

	ErrMalformedURI          = postgres.ErrMalformedURI
	ErrMalformedOption       = postgres.ErrMalformedOption
	ErrPortCountMismatch     = postgres.ErrPortCountMismatch
	ErrHostaddrCountMismatch = postgres.ErrHostaddrCountMismatch
	ErrInvalidPort           = postgres.ErrInvalidPort

	ErrInvalidArgument = errorutil.ErrInvalidArgument
)

// IsGrammarErr reports whether err is caused by input not matching a URI grammar.
func IsGrammarErr(err error) bool { return errorutil.IsGrammarErr(err) }
