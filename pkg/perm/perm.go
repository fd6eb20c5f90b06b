package perm

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Level is an ordered authorization tier. Higher values carry all the rights
// of lower ones.
type Level uint8

const (
	// ReadOnly may inspect settings but change nothing.
	ReadOnly Level = iota
	// ModifyPorts may additionally change per-port settings.
	ModifyPorts
	// ModifySystem may additionally change system settings and access
	// peripherals directly.
	ModifySystem
	// Administrator has full rights, including user management.
	Administrator
)

// Allows reports whether a session holding level l may execute a command
// requiring level required.
func (l Level) Allows(required Level) bool {
	return l >= required
}

// String returns the canonical spelling used in configuration files.
func (l Level) String() string {
	switch l {
	case ReadOnly:
		return "read-only"
	case ModifyPorts:
		return "modify-ports"
	case ModifySystem:
		return "modify-system"
	case Administrator:
		return "administrator"
	default:
		return fmt.Sprintf("level(%d)", uint8(l))
	}
}

// Parse converts the canonical spelling back into a Level.
func Parse(s string) (Level, error) {
	switch s {
	case "read-only":
		return ReadOnly, nil
	case "modify-ports":
		return ModifyPorts, nil
	case "modify-system":
		return ModifySystem, nil
	case "administrator":
		return Administrator, nil
	default:
		return ReadOnly, fmt.Errorf("unknown permission level %q", s)
	}
}

// MarshalYAML encodes the level as its canonical spelling.
func (l Level) MarshalYAML() (any, error) {
	return l.String(), nil
}

// UnmarshalYAML decodes a level from its canonical spelling.
func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
