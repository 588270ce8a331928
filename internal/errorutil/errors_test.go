package errorutil_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/connuri/internal/errorutil"
)

const errSentinel errorutil.Error = "sentinel"

type grammarErr string

func (e grammarErr) Error() string { return string(e) }

func (grammarErr) Grammar() bool { return true }

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")

	cases := []struct {
		name    string
		args    []any
		wantMsg string
		wantIs  []error
	}{
		{"no args", nil, "sentinel", []error{errSentinel}},
		{"error", []any{cause}, "sentinel: cause", []error{errSentinel, cause}},
		{"already wrapped", []any{errorutil.NewWrapperError(errSentinel, "x")}, "sentinel: x", []error{errSentinel}},
		{"message", []any{"bad input"}, "sentinel: bad input", []error{errSentinel}},
		{"format", []any{"port %q", "x"}, `sentinel: port "x"`, []error{errSentinel}},
		{"unsupported arg", []any{42}, "sentinel", []error{errSentinel}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewWrapperError(errSentinel, c.args...)
			if got := err.Error(); got != c.wantMsg {
				t.Errorf("err.Error() = %q, want %q", got, c.wantMsg)
			}
			for _, want := range c.wantIs {
				if !errors.Is(err, want) {
					t.Errorf("errors.Is(%v, %v) = false, want true", err, want)
				}
			}
		})
	}
}

func TestIsGrammarErr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("x"), false},
		{"sentinel", errSentinel, false},
		{"grammar", grammarErr("x"), true},
		{"wrapped grammar", errorutil.NewWrapperError(errSentinel, grammarErr("x")), true},
	}

	for _, c := range cases {
		if got := errorutil.IsGrammarErr(c.err); got != c.want {
			t.Errorf("%s: errorutil.IsGrammarErr(%v) = %v, want %v", c.name, c.err, got, c.want)
		}
	}
}

func TestIsInvalidArgumentErr(t *testing.T) {
	t.Parallel()

	if !errorutil.IsInvalidArgumentErr(errorutil.NewInvalidArgumentError("scheme %q", "")) {
		t.Error("errorutil.IsInvalidArgumentErr(NewInvalidArgumentError()) = false, want true")
	}
	if errorutil.IsInvalidArgumentErr(errSentinel) {
		t.Error("errorutil.IsInvalidArgumentErr(sentinel) = true, want false")
	}
	if got, want := errorutil.Errorf("a %d", 1).Error(), "a 1"; got != want {
		t.Errorf("errorutil.Errorf() = %q, want %q", got, want)
	}
}
