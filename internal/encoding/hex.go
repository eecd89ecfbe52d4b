// Package encoding includes implementations of encoding.TextMarshaler and encoding.TextUnmarshaler
// to encode and decode binary object code. It is based on Intel Hex file-encoding, widened from
// 16-bit words to the core's 64-bit words.
//
// Each file is composed of lines composed of a prefix, length, address, type, (optional data) and a
// checksum. In shorthand:
//
//	:LLLLAAAAAAAATT[DD...]CC
//
// LLLL is a 16-bit data length in bytes (4 hex digits), AAAAAAAA a 32-bit address (8 hex digits),
// TT a 1-byte record type, DD a sequence of 8-byte words (16 hex digits each), and CC a 1-byte
// two's-complement checksum of every preceding byte on the line. See [Grammar] for a formal
// grammar.
//
// # Bugs
//
// This is not a complete implementation of Intel Hex encoding; it is for internal use, only. It
// supports minimal record types, specifically just the data and end-of-file record types.
package encoding

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/dcrodman/clockwork/internal/vm"
)

const Grammar = `
file  = { line } ;
line  = ':' len addr type data check nl ;
len   = byte byte ;
addr  = byte byte byte byte ;
type  = byte ;
data  = { word } ;
word  = byte byte byte byte byte byte byte byte ;
byte  = hex hex ;
hex   = '0' | '1' | '2' | '3' | '4' | '5' | '6' | '7' | '8' | '9'
      | 'a' | 'b' | 'c' | 'd' | 'e' | 'f' | 'A' | 'B' | 'C' | 'D' | 'E' | 'F' ;
nl    = '\n' ;
`

// HexEncoding implements marshalling and unmarshalling of object code as text, in the widened
// Intel-Hex-flavored format documented above.
type HexEncoding struct {
	Code []vm.ObjectCode
}

func (h *HexEncoding) MarshalText() ([]byte, error) {
	var buf bytes.Buffer

	for _, code := range h.Code {
		var check byte

		enc := hex.NewEncoder(&buf)

		buf.WriteByte(':')

		var lenField [2]byte
		binary.BigEndian.PutUint16(lenField[:], uint16(len(code.Code)*8))

		if _, err := enc.Write(lenField[:]); err != nil {
			return buf.Bytes(), err
		}

		check += lenField[0] + lenField[1]

		var addrField [4]byte
		binary.BigEndian.PutUint32(addrField[:], uint32(code.Origin))

		if _, err := enc.Write(addrField[:]); err != nil {
			return buf.Bytes(), err
		}

		for _, b := range addrField {
			check += b
		}

		buf.WriteByte('0')
		buf.WriteByte('0') // record type: data.

		for _, word := range code.Code {
			var wordField [8]byte
			binary.BigEndian.PutUint64(wordField[:], uint64(word))

			if _, err := enc.Write(wordField[:]); err != nil {
				return buf.Bytes(), err
			}

			for _, b := range wordField {
				check += b
			}
		}

		check = 1 + ^check
		if _, err := enc.Write([]byte{check}); err != nil {
			return buf.Bytes(), err
		}

		buf.WriteByte('\n')
	}

	buf.WriteString(":00000000000001ff\n")

	return buf.Bytes(), nil
}

func (h *HexEncoding) UnmarshalText(bs []byte) error {
	lines := bufio.NewScanner(bytes.NewReader(bs))

	for lines.Scan() {
		rec := lines.Bytes()

		if len(rec) == 0 {
			continue
		} else if rec[0] != ':' {
			return fmt.Errorf("%w: line does not start with ':'", ErrDecode)
		}

		const (
			lenStart, lenEnd   = 1, 5
			addrStart, addrEnd = 5, 13
			typeStart, typeEnd = 13, 15
			dataStart          = 15
		)

		if len(rec) < dataStart+2 {
			return fmt.Errorf("%w: line too short", ErrDecode)
		}

		var dec [4]byte

		if _, err := hex.Decode(dec[:2], rec[lenStart:lenEnd]); err != nil {
			return fmt.Errorf("%w: len: %s", ErrDecode, err.Error())
		}

		recLen := binary.BigEndian.Uint16(dec[:2])
		check := dec[0] + dec[1]

		if _, err := hex.Decode(dec[:4], rec[addrStart:addrEnd]); err != nil {
			return fmt.Errorf("%w: addr: %s", ErrDecode, err.Error())
		}

		recAddr := binary.BigEndian.Uint32(dec[:4])

		for _, b := range dec[:4] {
			check += b
		}

		if _, err := hex.Decode(dec[:1], rec[typeStart:typeEnd]); err != nil {
			return fmt.Errorf("%w: type: %s", ErrDecode, err.Error())
		}

		recKind := kind(dec[0])
		check += dec[0]

		if _, err := hex.Decode(dec[:1], rec[len(rec)-2:]); err != nil {
			return fmt.Errorf("%w: check: %s", ErrDecode, err.Error())
		}

		recCheck := dec[0]

		switch {
		case recKind == kindEOF:
			check = 1 + ^check
			if check != recCheck {
				return fmt.Errorf("%w: checksum invalid: %02x != %02x", ErrDecode, check, recCheck)
			}

			return finish(h)

		case recKind != kindData:
			return fmt.Errorf("%w: unexpected record type: %d", ErrDecode, recKind)

		case recLen%8 != 0:
			return fmt.Errorf("%w: data length not word-aligned", ErrDecode)
		}

		hexData := make([]byte, recLen)

		if _, err := hex.Decode(hexData, rec[dataStart:dataStart+int(recLen)*2]); err != nil {
			return fmt.Errorf("%w: data: %s", ErrDecode, err.Error())
		}

		code := make([]vm.Word, recLen/8)

		for i := range code {
			word := binary.BigEndian.Uint64(hexData[i*8 : i*8+8])
			code[i] = vm.Word(word)
		}

		for _, b := range hexData {
			check += b
		}

		check = 1 + ^check
		if check != recCheck {
			return fmt.Errorf("%w: checksum invalid: %02x != %02x", ErrDecode, check, recCheck)
		}

		h.Code = append(h.Code, vm.ObjectCode{Origin: vm.Word(recAddr), Code: code})
	}

	return finish(h)
}

func finish(h *HexEncoding) error {
	if len(h.Code) == 0 {
		return errEmpty
	}

	return nil
}

// kind represents the type of encoded record. Only the subset of record types supported by the
// encoder are supported.
type kind byte

const (
	kindData kind = 0
	kindEOF  kind = 1
)

type decodingError struct{}

func (decodingError) Error() string {
	return "decoding error"
}

func (de *decodingError) Is(err error) bool {
	if de == err {
		return true
	}

	_, ok := err.(*decodingError)

	return ok
}

var (
	// ErrDecode is a wrapped error that is returned when decoding fails.
	ErrDecode = &decodingError{}

	errEmpty = fmt.Errorf("%w: no data decoded", ErrDecode)
)
