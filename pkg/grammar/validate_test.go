package grammar

import (
	"errors"
	"testing"

	"github.com/misl-switch/mislswitch-go/pkg/params"
)

func noop(*[params.MaxParams]string) bool { return true }

func TestValidateAcceptsWellFormedTree(t *testing.T) {
	tree := []Node{
		{Text: "port", Help: "port settings", Children: []Node{
			{Text: "f0", Help: "fast-ethernet0", ParamsRequired: 1, StaticParams: []string{"0x40"}, Children: []Node{
				{Text: "status", Help: "port state", Terminal: true, Handler: noop},
				{Text: "<vlan-id>", Help: "assign vlan", Terminal: true, ParamsRequired: 1, UserSupplied: true, Handler: noop},
			}},
		}},
		{Text: "logout", Help: "end session", Terminal: true, Handler: noop},
	}
	if err := Validate(tree); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		tree []Node
		want error
	}{
		{
			name: "empty text",
			tree: []Node{{Text: "", Terminal: true, Handler: noop}},
			want: ErrEmptyText,
		},
		{
			name: "reserved help token",
			tree: []Node{{Text: "?", Terminal: true, Handler: noop}},
			want: ErrReservedToken,
		},
		{
			name: "terminal without handler",
			tree: []Node{{Text: "x", Terminal: true}},
			want: ErrNotExclusive,
		},
		{
			name: "routing without children",
			tree: []Node{{Text: "x"}},
			want: ErrNotExclusive,
		},
		{
			name: "terminal with children",
			tree: []Node{{Text: "x", Terminal: true, Handler: noop,
				Children: []Node{{Text: "y", Terminal: true, Handler: noop}}}},
			want: ErrNotExclusive,
		},
		{
			name: "static count mismatch",
			tree: []Node{{Text: "x", Terminal: true, Handler: noop,
				ParamsRequired: 2, StaticParams: []string{"only-one"}}},
			want: ErrStaticCount,
		},
		{
			name: "multi-slot user-supplied",
			tree: []Node{{Text: "<v>", Terminal: true, Handler: noop,
				ParamsRequired: 2, UserSupplied: true}},
			want: ErrUserParamCount,
		},
		{
			// a zero-slot placeholder would still bind its token and
			// shift every later static parameter by one
			name: "zero-slot user-supplied",
			tree: []Node{{Text: "<v>", UserSupplied: true,
				Children: []Node{{Text: "go", Terminal: true, Handler: noop,
					ParamsRequired: 1, StaticParams: []string{"0x40"}}}}},
			want: ErrUserParamCount,
		},
		{
			name: "placeholder shadows later siblings",
			tree: []Node{
				{Text: "<v>", Terminal: true, Handler: noop, ParamsRequired: 1, UserSupplied: true},
				{Text: "unreachable", Terminal: true, Handler: noop},
			},
			want: ErrPlaceholderNotLast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.tree)
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateDepthBound(t *testing.T) {
	leaf := []Node{{Text: "leaf", Terminal: true, Handler: noop}}
	tree := leaf
	for i := 0; i < MaxDepth; i++ {
		tree = []Node{{Text: "level", Children: tree}}
	}
	if err := Validate(tree); !errors.Is(err, ErrTooDeep) {
		t.Errorf("expected ErrTooDeep, got %v", err)
	}
}

func TestValidateParamBudget(t *testing.T) {
	// Three nodes of 7 static params each would bind 21 slots.
	sp := func(n int) []string { return make([]string, n) }
	tree := []Node{{Text: "a", ParamsRequired: 7, StaticParams: sp(7), Children: []Node{
		{Text: "b", ParamsRequired: 7, StaticParams: sp(7), Children: []Node{
			{Text: "c", ParamsRequired: 7, StaticParams: sp(7), Terminal: true, Handler: noop},
		}},
	}}}
	if err := Validate(tree); !errors.Is(err, ErrParamBudget) {
		t.Errorf("expected ErrParamBudget, got %v", err)
	}
}
