package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/dcrodman/clockwork/internal/log"
	"github.com/dcrodman/clockwork/internal/vm"
)

type testHarness struct {
	*testing.T
}

// timeout is how long to wait for the machine to stop running. It is very likely to take much
// less than this.
const (
	timeout    = 1 * time.Second
	statusTick = 25 * time.Millisecond
)

// Context creates a test context. The context is cancelled after a timeout.
func (testHarness) Context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// field packs a width-bit value into an instruction word's operand region, mirroring
// vm.Decode's extraction. There is no assembler in this repository.
func field(width, offset uint, value vm.Word) vm.Word {
	mask := vm.Word(1)<<width - 1
	return (value & mask) << (10 + offset)
}

func encodeLoad(value vm.Word, dest vm.RegIndex) vm.Word {
	return vm.Word(vm.OpLoad) | field(46, 0, value) | field(8, 46, vm.Word(dest))
}

func encodeDec(dest vm.RegIndex) vm.Word {
	return vm.Word(vm.OpDec) | field(54, 0, vm.Word(dest))
}

func encodeCmp(src1, src2 vm.RegIndex) vm.Word {
	return vm.Word(vm.OpCmp) | field(27, 0, vm.Word(src1)) | field(27, 27, vm.Word(src2))
}

func encodeJnz(src vm.RegIndex) vm.Word {
	return vm.Word(vm.OpJnz) | field(54, 0, vm.Word(src))
}

func TestMain(tt *testing.T) {
	t := testHarness{tt}
	// Raise the log level to Error: otherwise every decoded instruction emits a debug record,
	// each a write to the output stream, slowing the test considerably.
	log.LogLevel.Set(log.Error)

	program := []vm.Word{
		encodeLoad(5, vm.D0), // 0: d0 = 5
		encodeLoad(0, vm.D1), // 1: d1 = 0
		encodeLoad(3, vm.D2), // 2: d2 = 3 (loop-back target)
		encodeDec(vm.D0),     // 3: d0--
		encodeCmp(vm.D0, vm.D1),
		encodeJnz(vm.D2), // 5: if d0 != 0, jump to 3 (Dec)
		vm.Word(vm.OpHalt),
	}

	eng, err := vm.NewBuilder().WithProgram(program).Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	ctx, cancel := t.Context()
	defer cancel()

	start := time.Now()

	done := make(chan error, 1)

	go func() {
		done <- eng.Run(ctx)
	}()

	select {
	case err := <-done:
		elapsed := time.Since(start)

		switch {
		case err == nil:
			t.Logf("test: ok, elapsed: %s", elapsed)
		default:
			t.Errorf("test: error: %s, elapsed: %s", err, elapsed)
		}
	case <-time.After(statusTick * 40):
		t.Errorf("test: timed out after %s", timeout)
	}

	if d0, rerr := eng.Reg.Read(vm.D0); rerr != nil || d0 != 0 {
		t.Errorf("D0 = %s, err = %v, want 0", d0, rerr)
	}
}
