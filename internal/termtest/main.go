// Termtest is a testing tool for Unix terminal I/O. Lacking simple PTY support, running this tool
// manually is easier than writing automated tests.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dcrodman/clockwork/internal/log"
	"github.com/dcrodman/clockwork/internal/tty"
)

var logger = log.DefaultLogger()

func main() {
	ctx := context.Background()

	ctx, console, cancel := tty.ConsoleContext(ctx)
	defer cancel()

	select {
	case <-ctx.Done():
		logger.Debug("cause", "err", context.Cause(ctx))
	default:
	}

	logger.Info("Reading keys. Press q to quit.")

	ctx, stop := context.WithTimeout(ctx, 5*time.Second)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			cause := context.Cause(ctx)
			if cause != nil {
				logger.Error(cause.Error())
			} else {
				logger.Info("done")
			}

			return
		default:
		}

		key, err := console.ReadKey(ctx)
		if err != nil {
			logger.Error(err.Error())
			return
		}

		fmt.Fprintf(console.Writer(), "key: %c (%#02x)\r\n", key, key)

		if key == 'q' {
			cancel()
			return
		}
	}
}
