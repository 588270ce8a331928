package ioutil_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/ghettovoice/connuri/internal/ioutil"
)

var errWriteFailed = errors.New("write failed")

type limitWriter struct {
	limit   int
	written int
}

func (lw *limitWriter) Write(p []byte) (int, error) {
	n := min(len(p), lw.limit-lw.written)
	lw.written += n
	if n < len(p) {
		return n, errWriteFailed
	}
	return n, nil
}

func TestCountingWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cw := ioutil.GetCountingWriter(&buf)
	defer ioutil.FreeCountingWriter(cw)

	cw.Fprint("postgresql", "://")
	cw.Write([]byte("host")) //nolint:errcheck
	cw.Call(func(w io.Writer) (int, error) { return fmt.Fprint(w, ":", 5432) })

	num, err := cw.Result()
	if err != nil {
		t.Fatalf("cw.Result() error = %v, want nil", err)
	}
	if got, want := buf.String(), "postgresql://host:5432"; got != want {
		t.Errorf("buf = %q, want %q", got, want)
	}
	if num != buf.Len() {
		t.Errorf("cw.Result() num = %d, want %d", num, buf.Len())
	}
}

func TestCountingWriter_Error(t *testing.T) {
	t.Parallel()

	lw := &limitWriter{limit: 6}
	cw := ioutil.GetCountingWriter(lw)
	defer ioutil.FreeCountingWriter(cw)

	if _, err := cw.Fprint("abc"); err != nil {
		t.Fatalf("cw.Fprint() error = %v, want nil", err)
	}
	if _, err := cw.Fprint("defgh"); !errors.Is(err, errWriteFailed) {
		t.Fatalf("cw.Fprint() error = %v, want %v", err, errWriteFailed)
	}

	var called bool
	cw.Call(func(io.Writer) (int, error) {
		called = true
		return 0, nil
	})
	if called {
		t.Error("cw.Call() ran fn after a write error")
	}
	if n, err := cw.Write([]byte("x")); n != 0 || !errors.Is(err, errWriteFailed) {
		t.Errorf("cw.Write() = (%d, %v), want (0, %v)", n, err, errWriteFailed)
	}

	num, err := cw.Result()
	if !errors.Is(err, errWriteFailed) {
		t.Errorf("cw.Result() error = %v, want %v", err, errWriteFailed)
	}
	if num != 6 {
		t.Errorf("cw.Result() num = %d, want 6", num)
	}
}
