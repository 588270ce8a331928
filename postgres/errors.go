package postgres

import (
	"github.com/ghettovoice/connuri/internal/errorutil"
)

const (
	// ErrMalformedURI is returned when the input does not match the connection URI grammar
	// or a component contains an invalid percent-encoded sequence.
	ErrMalformedURI errorutil.Error = "malformed connection URI"
	// ErrMalformedOption is returned when a query component is not of the form "key=value".
	ErrMalformedOption errorutil.Error = "malformed query option"
	// ErrPortCountMismatch is returned when the number of ports is neither 1 nor the number of hosts.
	ErrPortCountMismatch errorutil.Error = "number of ports must match number of hosts or be 1"
	// ErrHostaddrCountMismatch is returned when the number of host addresses is neither 0 nor the number of hosts.
	ErrHostaddrCountMismatch errorutil.Error = "number of hostaddrs must match number of hosts or be 0"
	// ErrInvalidPort is returned when a non-empty port is not a decimal number in range 0-65535.
	ErrInvalidPort errorutil.Error = "invalid port"
)

func newMalformedURIErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedURI, args...) //errtrace:skip
}

func newMalformedOptionErr(args ...any) error {
	return errorutil.NewWrapperError(ErrMalformedOption, args...) //errtrace:skip
}

func newInvalidPortErr(args ...any) error {
	return errorutil.NewWrapperError(ErrInvalidPort, args...) //errtrace:skip
}
