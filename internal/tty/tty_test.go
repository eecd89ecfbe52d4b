// Package tty_test tries to test ttys.
//
// The test is skipped when stdin is not a terminal (ErrNoTTY). Notably, this includes when run with
// "go test" because it redirects tests' standard input/output streams. You can test it by building
// a test binary and running it directly:
//
//	$ go test -c && ./tty.test
package tty_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dcrodman/clockwork/internal/tty"
)

const timeout = 100 * time.Millisecond

func TestConsole(tt *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ctx, console, restore := tty.ConsoleContext(ctx)
	defer restore()

	if err := context.Cause(ctx); errors.Is(err, tty.ErrNoTTY) {
		tt.Skipf("error: %s", context.Cause(ctx))
	}

	key, err := console.ReadKey(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		tt.Errorf("read key: %s", err)
	}

	_ = key
}
