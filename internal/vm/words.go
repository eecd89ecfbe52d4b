package vm

// words.go defines the basic data type the machine operates on.

import (
	"fmt"
)

// Word is the base data type on which the machine operates. Registers, memory cells, instruction
// words, and addresses are all a Word.
type Word int64

func (w Word) String() string {
	return fmt.Sprintf("%#016x", int64(w))
}

// RegIndex identifies a register in a RegisterFile.
type RegIndex uint8

// Register indices. D0-D3 are general-purpose data registers; IP is the instruction pointer.
// Indices beyond IP are invalid and rejected by RegisterFile.
const (
	D0 RegIndex = iota
	D1
	D2
	D3
	IP

	numRegisters = 5 // D0-D3, IP.
	numWritable  = 4 // D0-D3; IP is not externally writable.
)

func (r RegIndex) String() string {
	switch r {
	case D0:
		return "D0"
	case D1:
		return "D1"
	case D2:
		return "D2"
	case D3:
		return "D3"
	case IP:
		return "IP"
	default:
		return fmt.Sprintf("R%d", uint8(r))
	}
}
