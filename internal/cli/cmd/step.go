package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dcrodman/clockwork/internal/cli"
	"github.com/dcrodman/clockwork/internal/encoding"
	"github.com/dcrodman/clockwork/internal/log"
	"github.com/dcrodman/clockwork/internal/tty"
	"github.com/dcrodman/clockwork/internal/vm"
)

func Stepper() cli.Command {
	return new(stepper)
}

type stepper struct{}

func (stepper) Description() string {
	return "run a program under the interactive step debugger"
}

func (stepper) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `step program.hex

Loads an object-code file and steps through it interactively.

Keys:
  s  step one instruction
  c  run to completion (or the next error)
  d  dump register, flag and instruction pointer state
  q  quit`)

	return err
}

func (stepper) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("step", flag.ExitOnError)
}

func (s stepper) Run(ctx context.Context, args []string, _ io.Writer, logger *log.Logger) int {
	if len(args) == 0 {
		logger.Error("missing program file")
		return -1
	}

	code, err := s.loadCode(args[0])
	if err != nil {
		logger.Error("error loading code", "err", err)
		return -1
	}

	eng, err := vm.NewBuilder().WithLogger(logger).Build()
	if err != nil {
		logger.Error("build failed", "err", err)
		return 1
	}

	loader := vm.NewLoader(eng)

	for i := range code {
		if _, err := loader.Load(code[i]); err != nil {
			logger.Error(err.Error())
			return 1
		}
	}

	ctx, console, restore := tty.ConsoleContext(ctx)
	defer restore()

	if errors.Is(context.Cause(ctx), tty.ErrNoTTY) {
		logger.Error("step requires an interactive terminal")
		return 1
	}

	out := console.Writer()
	fmt.Fprintf(out, "loaded %s, %d words\r\n", args[0], len(code))
	s.dump(out, eng)

	for {
		fmt.Fprint(out, "(s)tep, (c)ontinue, (d)ump, (q)uit> ")

		key, err := console.ReadKey(ctx)
		if err != nil {
			fmt.Fprintf(out, "\r\n%s\r\n", err)
			return 0
		}

		fmt.Fprintf(out, "%c\r\n", key)

		switch key {
		case 's':
			if err := eng.Step(); err != nil {
				fmt.Fprintf(out, "fault: %s\r\n", err)
			}

			s.dump(out, eng)
		case 'c':
			err := eng.Run(ctx)
			s.dump(out, eng)

			if err != nil {
				fmt.Fprintf(out, "halted: %s\r\n", err)
			}
		case 'd':
			s.dump(out, eng)
		case 'q':
			return 0
		default:
			fmt.Fprintln(out, "unrecognized key")
		}
	}
}

func (stepper) dump(out io.Writer, eng *vm.Engine) {
	fmt.Fprintf(out, "%s\r\n", eng)
}

func (stepper) loadCode(fn string) ([]vm.ObjectCode, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	bs, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	hex := encoding.HexEncoding{}
	if err := hex.UnmarshalText(bs); err != nil {
		return nil, err
	}

	return hex.Code, nil
}
