package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/misl-switch/mislswitch-go/pkg/params"
)

// Validation errors.
var (
	// ErrEmptyText indicates a node with no match token.
	ErrEmptyText = errors.New("node has empty text")

	// ErrReservedToken indicates a node whose text collides with HelpToken.
	ErrReservedToken = errors.New("node text is the reserved help token")

	// ErrNotExclusive indicates a node violating the handler/children
	// exclusivity invariant.
	ErrNotExclusive = errors.New("node must have exactly one of handler (terminal) or children (routing)")

	// ErrStaticCount indicates a static-parameter list whose length does
	// not match ParamsRequired.
	ErrStaticCount = errors.New("static parameter count does not match ParamsRequired")

	// ErrUserParamCount indicates a placeholder node not asking for
	// exactly one parameter. A single typed token populates exactly one
	// slot; asking for several has no meaning, and asking for none would
	// still bind the token and shift every later slot by one.
	ErrUserParamCount = errors.New("user-supplied node must require exactly one parameter")

	// ErrPlaceholderNotLast indicates a placeholder that would shadow
	// later literal siblings, or a table with several placeholders.
	ErrPlaceholderNotLast = errors.New("placeholder must be the last sibling and unique in its table")

	// ErrTooDeep indicates nesting beyond MaxDepth.
	ErrTooDeep = errors.New("command tree exceeds maximum depth")

	// ErrParamBudget indicates a root-to-terminal path that would bind
	// more than params.MaxParams slots.
	ErrParamBudget = errors.New("path exceeds parameter list capacity")
)

// Validate checks every structural invariant of a command tree. It is called
// once at table construction; a failure is an authoring bug, not an
// operator-triggerable state.
func Validate(root []Node) error {
	return validateTable(root, nil, 0, 0)
}

func validateTable(table []Node, path []string, depth, boundParams int) error {
	if depth >= MaxDepth {
		return fmt.Errorf("%w: %s", ErrTooDeep, strings.Join(path, " "))
	}
	for i := range table {
		n := &table[i]
		at := strings.Join(append(path, n.Text), " ")

		if n.Text == "" {
			return fmt.Errorf("%w: %q", ErrEmptyText, strings.Join(path, " "))
		}
		if n.Text == HelpToken {
			return fmt.Errorf("%w: %q", ErrReservedToken, at)
		}
		if n.Terminal != (n.Handler != nil) || n.Terminal == (len(n.Children) > 0) {
			return fmt.Errorf("%w: %q", ErrNotExclusive, at)
		}
		if n.UserSupplied {
			if n.ParamsRequired != 1 {
				return fmt.Errorf("%w: %q requires %d", ErrUserParamCount, at, n.ParamsRequired)
			}
			if i != len(table)-1 {
				return fmt.Errorf("%w: %q", ErrPlaceholderNotLast, at)
			}
		} else if len(n.StaticParams) != n.ParamsRequired {
			return fmt.Errorf("%w: %q has %d static values for %d slots",
				ErrStaticCount, at, len(n.StaticParams), n.ParamsRequired)
		}

		bound := boundParams + n.ParamsRequired
		if bound > params.MaxParams {
			return fmt.Errorf("%w: %q binds %d", ErrParamBudget, at, bound)
		}
		if !n.Terminal {
			if err := validateTable(n.Children, append(path, n.Text), depth+1, bound); err != nil {
				return err
			}
		}
	}
	return nil
}
