package vm

// ops.go implements the handler semantics for each decoded instruction
// variant: the execution engine's dispatch table.

import "fmt"

// dispatch runs the handler for instr, which was fetched from address ip
// (the pre-increment instruction pointer). It implements the handler
// semantics from the core design exactly; see the per-case comments below.
func (e *Engine) dispatch(instr Instruction, ip Word) error {
	switch ins := instr.(type) {
	case Halt:
		// Transitions the engine to not-running; no register or memory
		// change.
		e.state = stateHalted
		return nil

	case Illegal:
		return &IllegalOpcodeError{Instruction: ins.Word, InstrPointer: ip}

	case Load:
		// The value field is unsigned and 46 bits wide at the codec layer;
		// large values appear non-negative once stored in a 64-bit
		// register. This is intentional: Load cannot express a negative
		// immediate directly.
		return e.regErr(e.Reg.Write(ins.DestReg, ins.Value), ip)

	case Copy:
		src, err := e.Reg.Read(ins.Src)
		if err != nil {
			return e.regErr(err, ip)
		}

		return e.regErr(e.Reg.Write(ins.Dest, src), ip)

	case Add:
		return e.arith(ins.Src1, ins.Src2, ins.Dest, ip, func(a, b Word) Word { return a + b })

	case Sub:
		return e.arith(ins.Src1, ins.Src2, ins.Dest, ip, func(a, b Word) Word { return a - b })

	case Mult:
		return e.arith(ins.Src1, ins.Src2, ins.Dest, ip, func(a, b Word) Word { return a * b })

	case Div:
		return e.div(ins, ip)

	case Cmp:
		a, err := e.Reg.Read(ins.Src1)
		if err != nil {
			return e.regErr(err, ip)
		}

		b, err := e.Reg.Read(ins.Src2)
		if err != nil {
			return e.regErr(err, ip)
		}

		e.Flags.Zero = a == b
		e.Flags.Carry = a < b

		return nil

	case Jmp:
		return e.jumpIf(ins.Src, ip, true)

	case Jz:
		return e.jumpIf(ins.Src, ip, e.Flags.Zero)

	case Jnz:
		return e.jumpIf(ins.Src, ip, !e.Flags.Zero)

	case Jgt:
		// "Not less-than"; Cmp exposes no dedicated greater-than bit, so
		// Jgt includes the equal case.
		return e.jumpIf(ins.Src, ip, !e.Flags.Carry)

	case Jlt:
		return e.jumpIf(ins.Src, ip, e.Flags.Carry)

	case Inc:
		v, err := e.Reg.Read(ins.Dest)
		if err != nil {
			return e.regErr(err, ip)
		}

		return e.regErr(e.Reg.Write(ins.Dest, v+1), ip)

	case Dec:
		v, err := e.Reg.Read(ins.Dest)
		if err != nil {
			return e.regErr(err, ip)
		}

		return e.regErr(e.Reg.Write(ins.Dest, v-1), ip)

	case LoadMem:
		v, err := e.Mem.Read(ins.SrcAddr)
		if err != nil {
			return err
		}

		return e.regErr(e.Reg.Write(ins.DestReg, v), ip)

	case StoreMem:
		v, err := e.Reg.Read(ins.SrcReg)
		if err != nil {
			return e.regErr(err, ip)
		}

		return e.Mem.Write(ins.DestAddr, v)

	default:
		// Decode is total and only ever produces the variants handled
		// above; reaching here means the dispatcher itself is missing a
		// case, which is a bug, not a runtime condition.
		panic(fmt.Sprintf("vm: dispatch: unhandled instruction variant %T", instr))
	}
}

// arith reads src1 and src2, applies op, and writes the result to dest.
// Add, Sub, and Mult share this shape exactly.
func (e *Engine) arith(src1, src2, dest RegIndex, ip Word, op func(a, b Word) Word) error {
	a, err := e.Reg.Read(src1)
	if err != nil {
		return e.regErr(err, ip)
	}

	b, err := e.Reg.Read(src2)
	if err != nil {
		return e.regErr(err, ip)
	}

	return e.regErr(e.Reg.Write(dest, op(a, b)), ip)
}

// div implements Div's truncate-toward-zero quotient/remainder semantics.
// Both destinations are written before returning success; neither is
// touched if the divisor is zero.
func (e *Engine) div(ins Div, ip Word) error {
	a, err := e.Reg.Read(ins.Src1)
	if err != nil {
		return e.regErr(err, ip)
	}

	b, err := e.Reg.Read(ins.Src2)
	if err != nil {
		return e.regErr(err, ip)
	}

	if b == 0 {
		return &DivisionByZeroError{InstrPointer: ip}
	}

	// Go's / and % already truncate toward zero for signed integers, so
	// the remainder's sign matches the dividend's, as required.
	quot, rem := a/b, a%b

	if err := e.Reg.Write(ins.QuotDest, quot); err != nil {
		return e.regErr(err, ip)
	}

	return e.regErr(e.Reg.Write(ins.RemDest, rem), ip)
}

// jumpIf sets IP to registers[src] when cond is true. The IP write goes
// through setIP, the engine's privileged path, overwriting the
// auto-increment Step already performed.
func (e *Engine) jumpIf(src RegIndex, ip Word, cond bool) error {
	if !cond {
		return nil
	}

	target, err := e.Reg.Read(src)
	if err != nil {
		return e.regErr(err, ip)
	}

	e.Reg.setIP(target)

	return nil
}

// regErr annotates an *InvalidRegisterError with the instruction pointer
// that sourced the failing instruction. err is returned unchanged (and may
// be nil) if it is not an *InvalidRegisterError.
func (e *Engine) regErr(err error, ip Word) error {
	if rerr, ok := err.(*InvalidRegisterError); ok { //nolint:errorlint
		rerr.InstrPointer = ip
	}

	return err
}
