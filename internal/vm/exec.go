package vm

// exec.go defines the engine's fetch-decode-execute cycle.

import (
	"context"
	"fmt"

	"github.com/dcrodman/clockwork/internal/log"
)

// Run drives the fetch-decode-execute loop until the program executes a
// Halt instruction or a step returns a fatal error. It returns nil on a
// normal halt and the originating error otherwise; the context is checked
// between steps, so a cancelled context stops the loop promptly but never
// mid-instruction.
func (e *Engine) Run(ctx context.Context) error {
	e.state = stateRunning

	e.log.Info("START", log.Group("STATE", e))

	for {
		select {
		case <-ctx.Done():
			e.log.Warn("CANCELLED")
			return ctx.Err()
		default:
		}

		if err := e.Step(); err != nil {
			e.state = stateFaulted
			e.log.Error("HALTED (fault)", "ERR", err, log.Group("STATE", e))

			return err
		}

		if e.state != stateRunning {
			e.log.Info("HALTED", log.Group("STATE", e))
			return nil
		}
	}
}

// Step performs a single instruction cycle:
//
//  1. word ← memory.read(IP), bounds-checked.
//  2. IP ← IP + 1.
//  3. instr ← decode(word).
//  4. dispatch instr to its handler.
//
// The IP increment happens before the handler runs, so a handler that
// jumps overwrites the already-incremented value. A failed handler leaves
// IP post-incremented while the error it returns carries the
// pre-increment address, i.e. the address that sourced the instruction.
func (e *Engine) Step() error {
	ip := e.Reg.ip()

	word, err := e.Mem.Read(ip)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	e.Reg.setIP(ip + 1)

	instr := Decode(word)

	e.log.Debug("decoded", "IP", ip, "INSTR", instr)

	if err := e.dispatch(instr, ip); err != nil {
		e.log.Error("step failed", "IP", ip, "INSTR", instr, "ERR", err)
		return fmt.Errorf("step: %w", err)
	}

	return nil
}
