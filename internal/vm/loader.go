package vm

// loader.go holds the program loader: it copies an object code image into
// an engine's memory, starting at the image's origin address.

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrObjectLoader is wrapped by errors the loader returns: an empty object,
// or one that overflows the destination memory.
var ErrObjectLoader = errors.New("loader error")

// ObjectCode holds a program image and the address it is to be loaded at.
// Code may comprise instructions, data, or both; memory does not
// distinguish them once loaded.
type ObjectCode struct {
	Origin Word
	Code   []Word
}

// Loader copies object code into an engine's memory.
type Loader struct {
	eng *Engine
}

// NewLoader creates a loader bound to eng.
func NewLoader(eng *Engine) *Loader {
	return &Loader{eng: eng}
}

// Load copies obj.Code into the engine's memory starting at obj.Origin. It
// fails, without partially applying the load's effects being undone, if any
// word falls outside the memory's bounds: the spec calls for failing the
// whole load rather than silently truncating it, so callers should treat
// any returned error as having left memory in a partially written state.
func (l *Loader) Load(obj ObjectCode) (int, error) {
	if len(obj.Code) == 0 {
		return 0, fmt.Errorf("%w: object too small", ErrObjectLoader)
	}

	var (
		addr  = obj.Origin
		count = 0
	)

	for _, word := range obj.Code {
		if err := l.eng.Mem.Write(addr, word); err != nil {
			return count, fmt.Errorf("%w: %w", ErrObjectLoader, err)
		}

		count++
		addr++
	}

	return count, nil
}

// read parses an object from its packed little-endian binary form: a
// four-byte origin address followed by 64-bit little-endian words. This is
// not the canonical program binary format (a header-less stream of words
// starting at address 0) but is used by fixtures that record an explicit
// origin alongside their code.
func (obj *ObjectCode) read(b []byte) (int, error) {
	if len(b) < 4 {
		return 0, fmt.Errorf("%w: object code too small", ErrObjectLoader)
	}

	in := bytes.NewReader(b)

	var origin int32
	if err := binary.Read(in, binary.LittleEndian, &origin); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrObjectLoader, err)
	}

	obj.Origin = Word(origin)

	count := 4
	obj.Code = make([]Word, (len(b)-4)/8)

	if err := binary.Read(in, binary.LittleEndian, obj.Code); err != nil {
		return count, fmt.Errorf("%w: %w", ErrObjectLoader, err)
	}

	count += len(obj.Code) * 8

	return count, nil
}
