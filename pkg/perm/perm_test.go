package perm

import "testing"

func TestLevelOrdering(t *testing.T) {
	tests := []struct {
		name     string
		held     Level
		required Level
		want     bool
	}{
		{"read-only can read", ReadOnly, ReadOnly, true},
		{"read-only cannot modify ports", ReadOnly, ModifyPorts, false},
		{"modify-ports can read", ModifyPorts, ReadOnly, true},
		{"modify-ports cannot modify system", ModifyPorts, ModifySystem, false},
		{"administrator can do everything", Administrator, ModifySystem, true},
		{"administrator can administrate", Administrator, Administrator, true},
		{"modify-system cannot administrate", ModifySystem, Administrator, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.held.Allows(tt.required); got != tt.want {
				t.Errorf("%v.Allows(%v) = %v, want %v", tt.held, tt.required, got, tt.want)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, l := range []Level{ReadOnly, ModifyPorts, ModifySystem, Administrator} {
		got, err := Parse(l.String())
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", l.String(), err)
		}
		if got != l {
			t.Errorf("Parse(%q) = %v, want %v", l.String(), got, l)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("superuser"); err == nil {
		t.Error("expected error for unknown level")
	}
}
