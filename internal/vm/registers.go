package vm

// registers.go holds the register file.

import (
	"fmt"
)

// RegisterFile is the machine's small, fixed bank of signed 64-bit cells: four
// general-purpose data registers, D0-D3, and the instruction pointer, IP.
//
// D0-D3 are readable and writable through Read and Write. IP is readable as
// index 4 but Write rejects it: only the engine may move IP, and it does so
// through setIP, a privileged path that bypasses the write-index check
// entirely. This keeps invariant I4 (spec.md §3) enforced by the register
// file itself rather than by caller discipline.
type RegisterFile struct {
	cells [numRegisters]Word
}

// Read returns the value at index, or InvalidRegisterError if index is not one
// of D0, D1, D2, D3, IP.
func (rf *RegisterFile) Read(index RegIndex) (Word, error) {
	if uint8(index) >= numRegisters {
		return 0, &InvalidRegisterError{Number: index}
	}

	return rf.cells[index], nil
}

// Write stores value at index, or InvalidRegisterError if index is not one of
// D0, D1, D2, D3. IP cannot be written through Write; see setIP.
func (rf *RegisterFile) Write(index RegIndex, value Word) error {
	if uint8(index) >= numWritable {
		return &InvalidRegisterError{Number: index}
	}

	rf.cells[index] = value

	return nil
}

// setIP moves the instruction pointer directly, bypassing the write-index
// check in Write. Only the engine calls this, from the fetch auto-increment
// and from jump handlers.
func (rf *RegisterFile) setIP(value Word) {
	rf.cells[IP] = value
}

// ip reads the instruction pointer without going through the public,
// error-returning Read path; the engine uses this on every fetch.
func (rf *RegisterFile) ip() Word {
	return rf.cells[IP]
}

func (rf *RegisterFile) String() string {
	return fmt.Sprintf("D0: %s D1: %s D2: %s D3: %s IP: %s",
		rf.cells[D0], rf.cells[D1], rf.cells[D2], rf.cells[D3], rf.cells[IP])
}

// InvalidRegisterError is returned when a register access names an index
// outside the valid range for the operation (read: {0..4}, write: {0..3}).
type InvalidRegisterError struct {
	Number       RegIndex
	InstrPointer Word
}

func (e *InvalidRegisterError) Error() string {
	return fmt.Sprintf("%s: register %s, ip %s", ErrInvalidRegister, e.Number, e.InstrPointer)
}

func (e *InvalidRegisterError) Is(err error) bool {
	if err == ErrInvalidRegister { //nolint:errorlint
		return true
	}

	_, ok := err.(*InvalidRegisterError)

	return ok
}

func (e *InvalidRegisterError) Unwrap() error {
	return ErrInvalidRegister
}
