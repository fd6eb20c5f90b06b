package params

import (
	"errors"
	"testing"
)

func TestStringsAppend(t *testing.T) {
	var p Strings
	if err := p.Append("0x40", "0xD", "0x03"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
	slots := p.Slots()
	if slots[0] != "0x40" || slots[1] != "0xD" || slots[2] != "0x03" {
		t.Errorf("slots = %v", slots[:3])
	}
}

func TestStringsOverflow(t *testing.T) {
	var p Strings
	for i := 0; i < MaxParams; i++ {
		if err := p.Append("x"); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}
	err := p.Append("one-too-many")
	if !errors.Is(err, ErrTooManyParams) {
		t.Errorf("expected ErrTooManyParams, got %v", err)
	}
	if p.Len() != MaxParams {
		t.Errorf("failed append modified list: Len() = %d", p.Len())
	}
}

func TestStringsOverflowLeavesListIntact(t *testing.T) {
	var p Strings
	if err := p.Append("a", "b"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	// 19 more would exceed the bound; nothing may be written.
	values := make([]string, MaxParams-1)
	if err := p.Append(values...); !errors.Is(err, ErrTooManyParams) {
		t.Fatalf("expected ErrTooManyParams, got %v", err)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestBytesAppend(t *testing.T) {
	var p Bytes
	if err := p.Append(0x40, 0x0D, 0x03); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
	slots := p.Slots()
	if slots[0] != 0x40 || slots[1] != 0x0D || slots[2] != 0x03 {
		t.Errorf("slots = %v", slots[:3])
	}
}

func TestBytesOverflow(t *testing.T) {
	var p Bytes
	if err := p.Append(make([]byte, MaxParams)...); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := p.Append(0xFF); !errors.Is(err, ErrTooManyParams) {
		t.Errorf("expected ErrTooManyParams, got %v", err)
	}
}
