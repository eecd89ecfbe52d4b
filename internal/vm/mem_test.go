package vm

import (
	"errors"
	"testing"
)

func TestMemory_ReadWrite(t *testing.T) {
	t.Parallel()

	mem := NewMemory(80) // 10 words

	if err := mem.Write(3, 42); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := mem.Read(3)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got != 42 {
		t.Errorf("read(3) = %s, want 42", got)
	}
}

func TestMemory_Bounds(t *testing.T) {
	t.Parallel()

	mem := NewMemory(80) // 10 words

	tcs := []struct {
		name    string
		address Word
	}{
		{"at length", 10},
		{"past length", 100},
		{"negative", -1},
	}

	for _, tc := range tcs {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := mem.Read(tc.address); !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("read(%s) err = %v, want ErrInvalidAddress", tc.address, err)
			}

			if err := mem.Write(tc.address, 1); !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("write(%s) err = %v, want ErrInvalidAddress", tc.address, err)
			}
		})
	}
}

func TestMemory_DefaultSize(t *testing.T) {
	t.Parallel()

	mem := NewDefaultMemory()
	if mem.Len() != 262_144 {
		t.Errorf("Len() = %d, want 262144", mem.Len())
	}
}
