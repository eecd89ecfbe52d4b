package vm

import (
	"log/slog"
	"testing"

	"github.com/dcrodman/clockwork/internal/log"
)

// testLogger returns a logger that writes into t.Log, so `go test -v`
// interleaves engine trace output with test assertions in the right order.
func testLogger(t *testing.T) *log.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, nil))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(b []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(b))

	return len(b), nil
}
