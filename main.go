// clockwork is the command-line interface to the register-based virtual machine and tool suite.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/dcrodman/clockwork/internal/cli"
	"github.com/dcrodman/clockwork/internal/cli/cmd"
	"github.com/dcrodman/clockwork/internal/log"
)

var (
	commands = []cli.Command{
		cmd.Demo(),
		cmd.Executor(),
		cmd.Stepper(),
	}
)

// Entry point.
func main() {
	set := getopt.New()
	loglevel := set.StringLong("loglevel", 'l', "info", "set log `level`")
	help := set.BoolLong("help", 'h', false, "display this help and exit")
	set.SetParameters("<command> [option]... [arg]...")

	// Global options must precede the sub-command name; everything from the sub-command
	// onward is left for the sub-command's own flag set.
	split := len(os.Args)

	for i, arg := range os.Args[1:] {
		if len(arg) > 0 && arg[0] != '-' {
			split = i + 1
			break
		}
	}

	if err := set.Getopt(os.Args[:split], nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		set.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	if *help {
		set.PrintUsage(os.Stdout)
		os.Exit(0)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(*loglevel)); err == nil {
		log.LogLevel.Set(level)
	}

	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[split:])

	os.Exit(result)
}
