package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dcrodman/clockwork/internal/cli"
	"github.com/dcrodman/clockwork/internal/log"
	"github.com/dcrodman/clockwork/internal/vm"
)

// Demo is a demonstration command: it runs a small fixed set of embedded
// example programs and prints the machine state after each.
func Demo() cli.Command {
	return new(demo)
}

type demo struct {
	debug bool
	quiet bool
}

func (demo) Description() string {
	return "run built-in example programs"
}

func (d demo) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `
demo [ -debug | -quiet ]

Run each built-in example program to completion and print the final
register and flag state.`)

	return err
}

func (d *demo) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)

	fs.BoolVar(&d.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&d.quiet, "quiet", false, "enable quiet output, final state only")

	return fs
}

// fixture names a built-in example program, grounded on the concrete
// scenarios the core's test suite exercises.
type fixture struct {
	name    string
	program []vm.Word
}

// field packs a width-bit value into the operand region of an instruction
// word at the given offset from bit 10, mirroring vm.Decode's extraction
// exactly. There is no assembler in this repository; fixtures are encoded
// by hand, the same way a hand-written object file would be.
func field(width, offset uint, value vm.Word) vm.Word {
	mask := vm.Word(1)<<width - 1
	return (value & mask) << (10 + offset)
}

func encodeLoad(value vm.Word, dest vm.RegIndex) vm.Word {
	return vm.Word(vm.OpLoad) | field(46, 0, value) | field(8, 46, vm.Word(dest))
}

func encodeCopy(src, dest vm.RegIndex) vm.Word {
	return vm.Word(vm.OpCopy) | field(27, 0, vm.Word(src)) | field(27, 27, vm.Word(dest))
}

func encodeCmp(src1, src2 vm.RegIndex) vm.Word {
	return vm.Word(vm.OpCmp) | field(27, 0, vm.Word(src1)) | field(27, 27, vm.Word(src2))
}

func encodeJnz(src vm.RegIndex) vm.Word {
	return vm.Word(vm.OpJnz) | field(54, 0, vm.Word(src))
}

func encodeDiv(src1, src2, quot, rem vm.RegIndex) vm.Word {
	return vm.Word(vm.OpDiv) |
		field(13, 0, vm.Word(src1)) | field(13, 13, vm.Word(src2)) |
		field(13, 26, vm.Word(quot)) | field(13, 39, vm.Word(rem))
}

func encodeLoadMem(addr vm.Word, dest vm.RegIndex) vm.Word {
	return vm.Word(vm.OpLoadMem) | field(27, 0, addr) | field(27, 27, vm.Word(dest))
}

func encodeStoreMem(src vm.RegIndex, addr vm.Word) vm.Word {
	return vm.Word(vm.OpStoreMem) | field(27, 0, vm.Word(src)) | field(27, 27, addr)
}

// fixtures are the built-in example programs, taken from three of the
// concrete scenarios in the core's test suite.
var fixtures = []fixture{
	{
		name: "load cascade",
		program: []vm.Word{
			encodeLoad(13, vm.D0),
			encodeLoad(100, vm.D1),
			encodeLoad(99, vm.D2),
			encodeLoad(12948, vm.D3),
			vm.Word(vm.OpHalt),
		},
	},
	{
		name: "gcd(230, 449)",
		program: []vm.Word{
			encodeLoad(230, vm.D1),
			encodeLoad(449, vm.D0),
			encodeLoad(0, vm.D2),
			encodeLoad(0, vm.D3),
			encodeDiv(vm.D0, vm.D1, vm.D0, vm.D2),
			encodeCopy(vm.D1, vm.D0),
			encodeCopy(vm.D2, vm.D1),
			encodeCmp(vm.D2, vm.D3),
			encodeLoad(2, vm.D3),
			encodeJnz(vm.D3),
			vm.Word(vm.OpHalt),
		},
	},
	{
		name: "memory round-trip",
		program: []vm.Word{
			encodeLoad(449, vm.D0),
			encodeStoreMem(vm.D0, 0),
			encodeLoadMem(0, vm.D1),
			vm.Word(vm.OpHalt),
		},
	},
}

func (d demo) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if d.quiet {
		log.LogLevel.Set(log.Error)
	}

	if d.debug {
		log.LogLevel.Set(log.Debug)
	}

	for _, fx := range fixtures {
		logger.Info("running fixture", "name", fx.name)

		eng, err := vm.NewBuilder().
			WithLogger(logger).
			WithProgram(fx.program).
			Build()
		if err != nil {
			logger.Error("build failed", "name", fx.name, "err", err)
			return 2
		}

		err = eng.Run(ctx)

		switch {
		case err == nil:
			fmt.Fprintf(out, "%s: %s\n", fx.name, eng)
		case errors.Is(err, context.DeadlineExceeded):
			logger.Warn("fixture timed out", "name", fx.name)
			fmt.Fprintf(out, "%s: timed out\n", fx.name)
		default:
			logger.Error("fixture failed", "name", fx.name, "err", err)
			fmt.Fprintf(out, "%s: error: %s\n", fx.name, err)
		}
	}

	return 0
}
