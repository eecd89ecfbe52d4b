package vm

import "testing"

// fieldSpec names a width/offset/value triple to pack into an instruction
// word's operand region; buildWord is the inverse of the field/regField
// extraction functions in instr.go, used here only to construct fixture
// words for tests. There is no exported encoder: the codec is decode-only,
// per the core design.
type fieldSpec struct {
	width, offset uint
	value         Word
}

func buildWord(opcode Opcode, specs ...fieldSpec) Word {
	w := Word(opcode)

	for _, s := range specs {
		mask := Word(1)<<s.width - 1
		w |= (s.value & mask) << (10 + s.offset)
	}

	return w
}

func wordHalt() Word { return Word(OpHalt) }

func wordLoad(value Word, dest RegIndex) Word {
	return buildWord(OpLoad, fieldSpec{46, 0, value}, fieldSpec{8, 46, Word(dest)})
}

func wordAdd(src1, src2, dest RegIndex) Word {
	return buildWord(OpAdd, fieldSpec{18, 0, Word(src1)}, fieldSpec{18, 18, Word(src2)}, fieldSpec{18, 36, Word(dest)})
}

func wordSub(src1, src2, dest RegIndex) Word {
	return buildWord(OpSub, fieldSpec{18, 0, Word(src1)}, fieldSpec{18, 18, Word(src2)}, fieldSpec{18, 36, Word(dest)})
}

func wordMult(src1, src2, dest RegIndex) Word {
	return buildWord(OpMult, fieldSpec{18, 0, Word(src1)}, fieldSpec{18, 18, Word(src2)}, fieldSpec{18, 36, Word(dest)})
}

func wordCmp(src1, src2 RegIndex) Word {
	return buildWord(OpCmp, fieldSpec{27, 0, Word(src1)}, fieldSpec{27, 27, Word(src2)})
}

func wordJmp(src RegIndex) Word { return buildWord(OpJmp, fieldSpec{54, 0, Word(src)}) }
func wordJz(src RegIndex) Word  { return buildWord(OpJz, fieldSpec{54, 0, Word(src)}) }
func wordJnz(src RegIndex) Word { return buildWord(OpJnz, fieldSpec{54, 0, Word(src)}) }
func wordJgt(src RegIndex) Word { return buildWord(OpJgt, fieldSpec{54, 0, Word(src)}) }
func wordJlt(src RegIndex) Word { return buildWord(OpJlt, fieldSpec{54, 0, Word(src)}) }

func wordDiv(src1, src2, quot, rem RegIndex) Word {
	return buildWord(OpDiv,
		fieldSpec{13, 0, Word(src1)}, fieldSpec{13, 13, Word(src2)},
		fieldSpec{13, 26, Word(quot)}, fieldSpec{13, 39, Word(rem)})
}

func wordCopy(src, dest RegIndex) Word {
	return buildWord(OpCopy, fieldSpec{27, 0, Word(src)}, fieldSpec{27, 27, Word(dest)})
}

func wordInc(dest RegIndex) Word { return buildWord(OpInc, fieldSpec{54, 0, Word(dest)}) }
func wordDec(dest RegIndex) Word { return buildWord(OpDec, fieldSpec{54, 0, Word(dest)}) }

func wordLoadMem(addr Word, dest RegIndex) Word {
	return buildWord(OpLoadMem, fieldSpec{27, 0, addr}, fieldSpec{27, 27, Word(dest)})
}

func wordStoreMem(src RegIndex, addr Word) Word {
	return buildWord(OpStoreMem, fieldSpec{27, 0, Word(src)}, fieldSpec{27, 27, addr})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name string
		word Word
		want Instruction
	}{
		{"halt", wordHalt(), Halt{}},
		{"load", wordLoad(13, D0), Load{Value: 13, DestReg: D0}},
		{"copy", wordCopy(D0, D1), Copy{Src: D0, Dest: D1}},
		{"add", wordAdd(D0, D1, D3), Add{Src1: D0, Src2: D1, Dest: D3}},
		{"sub", wordSub(D0, D1, D3), Sub{Src1: D0, Src2: D1, Dest: D3}},
		{"mult", wordMult(D0, D1, D3), Mult{Src1: D0, Src2: D1, Dest: D3}},
		{"cmp", wordCmp(D0, D1), Cmp{Src1: D0, Src2: D1}},
		{"jmp", wordJmp(D2), Jmp{Src: D2}},
		{"jz", wordJz(D2), Jz{Src: D2}},
		{"jnz", wordJnz(D2), Jnz{Src: D2}},
		{"jgt", wordJgt(D2), Jgt{Src: D2}},
		{"jlt", wordJlt(D2), Jlt{Src: D2}},
		{"div", wordDiv(D0, D1, D2, D3), Div{Src1: D0, Src2: D1, QuotDest: D2, RemDest: D3}},
		{"inc", wordInc(D0), Inc{Dest: D0}},
		{"dec", wordDec(D0), Dec{Dest: D0}},
		{"loadmem", wordLoadMem(0x10, D1), LoadMem{SrcAddr: 0x10, DestReg: D1}},
		{"storemem", wordStoreMem(D1, 0x10), StoreMem{SrcReg: D1, DestAddr: 0x10}},
		{"illegal unassigned", Word(17), Illegal{Word: 17}},
		{"illegal high", Word(1023), Illegal{Word: 1023}},
	}

	for _, tc := range tcs {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Decode(tc.word)
			if got != tc.want {
				t.Errorf("Decode(%#v) = %#v, want %#v", tc.word, got, tc.want)
			}
		})
	}
}

func TestDecode_registerFieldsNarrowed(t *testing.T) {
	t.Parallel()

	// A register field wider than 8 bits must still be narrowed to its low
	// 8 bits at decode time; values outside {0..4} are reported invalid at
	// execution time, not decode time.
	word := buildWord(OpCopy, fieldSpec{27, 0, 0x1ff}, fieldSpec{27, 27, 0})
	got := Decode(word)

	want := Copy{Src: RegIndex(0x1ff & 0xff), Dest: D0}
	if got != want {
		t.Errorf("Decode(%#v) = %#v, want %#v", word, got, want)
	}
}
