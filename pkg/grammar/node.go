package grammar

import (
	"github.com/misl-switch/mislswitch-go/pkg/params"
	"github.com/misl-switch/mislswitch-go/pkg/perm"
)

// HelpToken is reserved at every depth to request help for the current menu.
const HelpToken = "?"

// MaxDepth bounds the nesting of the command tree. Deeper tables are a
// construction error, not a runtime state.
const MaxDepth = 12

// Handler executes a terminal command with its bound parameter list.
// Handlers inspect only the slot count their grammar entry declares, and
// report success or failure; the dispatcher never retries.
type Handler func(p *[params.MaxParams]string) bool

// Node is one entry in the command tree.
type Node struct {
	// Text is the literal token that selects this node. For a
	// user-supplied placeholder it is a display hint such as
	// "<vlan-id [1-4096]>" and never matched literally.
	Text string

	// Help is shown by the help renderer for this entry.
	Help string

	// Terminal marks an executable command. A terminal node carries a
	// Handler and no Children; a routing node carries Children and no
	// Handler.
	Terminal bool

	// ParamsRequired is the number of parameters this node contributes to
	// the invocation's parameter list.
	ParamsRequired int

	// UserSupplied selects where those parameters come from: the literal
	// token the operator typed (true) or StaticParams (false).
	UserSupplied bool

	// Handler runs when this node terminates a dispatch.
	Handler Handler

	// StaticParams are the fixed values bound when UserSupplied is false.
	// len(StaticParams) must equal ParamsRequired.
	StaticParams []string

	// Children is the next sibling table for a routing node.
	Children []Node

	// Permission gates execution of this node at the terminal step.
	Permission perm.Level
}

// IsPlaceholder reports whether this node accepts any operator token.
func (n *Node) IsPlaceholder() bool { return n.UserSupplied }
