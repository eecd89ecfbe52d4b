package vm

// vm.go defines the engine and assembles it from its smaller parts: a
// register file, memory, and a pair of condition flags.

import (
	"fmt"

	"github.com/dcrodman/clockwork/internal/log"
)

// state is the engine's lifecycle: Ready, Running, Halted, Faulted.
type state uint8

const (
	stateReady state = iota
	stateRunning
	stateHalted
	stateFaulted
)

func (s state) String() string {
	switch s {
	case stateReady:
		return "ready"
	case stateRunning:
		return "running"
	case stateHalted:
		return "halted"
	case stateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// Flags holds the engine's two boolean condition flags, set by the last
// Cmp instruction executed. zero is true when the compared operands were
// equal; carry is true when the first operand was strictly less than the
// second (the name is historical).
type Flags struct {
	Zero  bool
	Carry bool
}

func (f Flags) String() string {
	return fmt.Sprintf("zero:%t carry:%t", f.Zero, f.Carry)
}

// Engine owns the register file, memory, and condition flags, and drives
// the fetch-decode-execute cycle until a Halt instruction or a fatal error.
// Construct one with Builder; it is not designed to be reset and reused.
type Engine struct {
	Reg   RegisterFile
	Mem   Memory
	Flags Flags

	state state
	log   *log.Logger
}

func (e *Engine) String() string {
	return fmt.Sprintf("%s [%s] %s", &e.Reg, e.Flags, e.state)
}

func (e *Engine) LogValue() log.Value {
	return log.GroupValue(
		log.String("REG", e.Reg.String()),
		log.String("FLAGS", e.Flags.String()),
		log.String("STATE", e.state.String()),
	)
}

// Builder assembles an Engine, installing optional custom memory, initial
// register state, and a program image before the machine transitions to
// Ready.
type Builder struct {
	mem     Memory
	reg     RegisterFile
	program []Word
	err     error
	log     *log.Logger
}

// NewBuilder returns a Builder configured with default memory (2 MiB),
// default registers (all zero), and no program.
func NewBuilder() *Builder {
	return &Builder{
		mem: NewDefaultMemory(),
		log: log.DefaultLogger(),
	}
}

// WithMemory installs custom initial memory, replacing the default.
func (b *Builder) WithMemory(mem Memory) *Builder {
	b.mem = mem
	return b
}

// WithRegisters installs custom initial register state, replacing the
// default all-zero registers. IP is included; it is set directly, bypassing
// the write-index restriction RegisterFile.Write enforces, since this is
// construction-time initial state rather than a register write.
func (b *Builder) WithRegisters(reg RegisterFile) *Builder {
	b.reg = reg
	return b
}

// WithProgram installs a program image, to be written into memory starting
// at address 0 when Build is called. If the program is longer than the
// memory it is to be installed in, Build fails with an ErrObjectLoader.
func (b *Builder) WithProgram(words []Word) *Builder {
	b.program = words
	return b
}

// WithLogger configures the engine to log to a particular logger.
func (b *Builder) WithLogger(logger *log.Logger) *Builder {
	b.log = logger
	return b
}

// Build assembles the Engine in state Ready, loading the program image (if
// any) into memory first.
func (b *Builder) Build() (*Engine, error) {
	eng := &Engine{
		Reg:   b.reg,
		Mem:   b.mem,
		state: stateReady,
		log:   b.log,
	}

	if eng.log == nil {
		eng.log = log.DefaultLogger()
	}

	if len(b.program) > 0 {
		loader := NewLoader(eng)

		if _, err := loader.Load(ObjectCode{Origin: 0, Code: b.program}); err != nil {
			return nil, err
		}
	}

	eng.log.Debug("built engine", log.Group("STATE", eng))

	return eng, nil
}
