package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dcrodman/clockwork/internal/cli"
	"github.com/dcrodman/clockwork/internal/encoding"
	"github.com/dcrodman/clockwork/internal/log"
	"github.com/dcrodman/clockwork/internal/vm"
)

func Executor() cli.Command {
	exec := &executor{log: log.DefaultLogger()}
	return exec
}

type executor struct {
	logLevel slog.Level
	timeout  time.Duration
	log      *log.Logger
}

func (executor) Description() string {
	return "run a program"
}

func (executor) Usage(out io.Writer) error {
	var err error
	_, err = fmt.Fprintln(out, `run program.hex

Loads an object-code file and runs it to completion, printing the final
register and flag state.`)

	return err
}

func (ex *executor) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.Func("loglevel", "set log `level`", func(s string) error {
		return ex.logLevel.UnmarshalText([]byte(s))
	})
	fs.DurationVar(&ex.timeout, "timeout", 10*time.Second, "maximum run `duration`")

	return fs
}

// Run loads and executes the program named by args[0].
func (ex *executor) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger,
) int {
	log.LogLevel.Set(ex.logLevel)

	if len(args) == 0 {
		logger.Error("missing program file")
		return -1
	}

	code, err := ex.loadCode(args[0])
	if err != nil {
		logger.Error("error loading code", "err", err)
		return -1
	}

	ctx, cancel := context.WithTimeout(ctx, ex.timeout)
	defer cancel()

	logger.Debug("building engine")

	eng, err := vm.NewBuilder().WithLogger(logger).Build()
	if err != nil {
		logger.Error("build failed", "err", err)
		return 1
	}

	loader := vm.NewLoader(eng)
	count := 0

	for i := range code {
		n, err := loader.Load(code[i])
		count += n

		if err != nil {
			logger.Error(err.Error())
			return 1
		}
	}

	logger.Debug("loaded program", "file", args[0], "loaded", count)
	logger.Info("starting machine")

	err = eng.Run(ctx)

	switch {
	case err == nil:
		fmt.Fprintf(stdout, "%s\n", eng)
		logger.Info("program completed")

		return 0
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("run timed out")
		return 2
	default:
		logger.Error("program error", "err", err)
		fmt.Fprintf(stdout, "%s\n", eng)

		return 2
	}
}

func (ex executor) loadCode(fn string) ([]vm.ObjectCode, error) {
	ex.log.Debug("loading executable", "file", fn)

	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	code, err := io.ReadAll(file)
	if err != nil {
		ex.log.Error(err.Error())
		return nil, err
	}

	ex.log.Debug("loaded file", "bytes", len(code))

	hex := encoding.HexEncoding{}

	if err = hex.UnmarshalText(code); err != nil {
		ex.log.Error(err.Error())
		return nil, err
	}

	return hex.Code, nil
}
