/*
Package vm implements a small register-based virtual machine that executes
programs encoded as sequences of fixed-width 64-bit instruction words.

The package is split leaves-first, matching the four cooperating components
the machine is built from:

  - Word, the base data type (words.go), and the register index type.
  - RegisterFile, a small fixed bank of signed 64-bit cells: four
    general-purpose data registers (D0-D3) and an instruction pointer (IP)
    (registers.go).
  - Memory, a flat, bounds-checked array of signed 64-bit cells, sized at
    construction (mem.go).
  - Decode, a total function from a 64-bit Word to a tagged Instruction
    value (instr.go), and Engine, which composes the three above into a
    fetch-decode-execute loop (vm.go, exec.go, ops.go).

# Registers and Memory #

D0-D3 are readable and writable through RegisterFile.Read and
RegisterFile.Write. IP is readable as index 4 but not writable through
Write; only the engine moves it, via an unexported, privileged path, when
fetching the next instruction and when a jump instruction executes. This
keeps the write restriction enforced by the register file itself rather
than by caller discipline elsewhere.

Memory is a single flat address space: no system/user split, no
memory-mapped devices, no vector tables. A program and its data share the
one array; once loaded, the engine does not distinguish them.

# Instruction cycle #

One step performs, in order: fetch the word at IP, increment IP, decode the
word, and dispatch the decoded instruction to its handler. The increment
happens before the handler runs, so a jump handler overwrites the
already-incremented IP rather than being overwritten by it.

# Errors #

Four kinds of error can end a run: IllegalOpcodeError (decode produced a
variant not in the opcode table), InvalidRegisterError (an access named a
register index out of range), DivisionByZeroError (a Div instruction's
divisor was zero), and InvalidAddressError (a memory access named an
out-of-range address). Each wraps a package-level sentinel so callers can
use errors.Is regardless of how the concrete error arrived.

# Construction #

Build an Engine with Builder: NewBuilder returns one configured with
default memory (2 MiB) and zeroed registers; WithMemory, WithRegisters, and
WithProgram override the defaults before Build assembles the Engine in its
Ready state. An Engine is not designed to be reset and reused; construct a
fresh one for each run.
*/
package vm
