package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/misl-switch/mislswitch-go/pkg/grammar"
	"github.com/misl-switch/mislswitch-go/pkg/params"
	"github.com/misl-switch/mislswitch-go/pkg/session"
)

// Outcome classifies the result of one dispatch.
type Outcome int

const (
	// OutcomeEmpty means the line held no tokens; nothing was printed.
	OutcomeEmpty Outcome = iota

	// OutcomeRejected means the line itself was refused before any
	// grammar matching, e.g. an oversized line.
	OutcomeRejected

	// OutcomeUnrecognized means the first token matched no root entry.
	OutcomeUnrecognized

	// OutcomeIncomplete means a valid prefix stopped short of a terminal.
	OutcomeIncomplete

	// OutcomeTooManyParameters means tokens trailed a terminal match.
	OutcomeTooManyParameters

	// OutcomeUnauthorized means the session's permission level fell short
	// of the terminal node's requirement.
	OutcomeUnauthorized

	// OutcomeHelp means a "?" token rendered the current menu.
	OutcomeHelp

	// OutcomeExecuted means the terminal handler ran; Result.Success
	// carries its verdict.
	OutcomeExecuted
)

// Result is the outcome of one dispatched line.
type Result struct {
	Outcome Outcome

	// Success is the handler's verdict; meaningful only for
	// OutcomeExecuted.
	Success bool

	// Prefix is the matched token prefix, echoed for OutcomeIncomplete
	// and OutcomeTooManyParameters.
	Prefix string
}

// Walker dispatches console lines against a validated command tree.
// Diagnostics for the operator go to out; handlers print through their own
// writer.
type Walker struct {
	root []grammar.Node
	out  io.Writer
}

// NewWalker returns a walker over root, which must already have passed
// grammar.Validate.
func NewWalker(root []grammar.Node, out io.Writer) *Walker {
	return &Walker{root: root, out: out}
}

// Dispatch tokenizes line and walks the tree, one token per depth.
// Authorization is checked only at the terminal node; the operator may
// navigate freely into subtrees they cannot execute.
func (w *Walker) Dispatch(line string, sess *session.Session) Result {
	tokens, err := Tokenize(line)
	if err != nil {
		if errors.Is(err, ErrTooManyTokens) {
			fmt.Fprintf(w.out, "Input line rejected: too many words. Maximum is %d.\n", MaxTokens)
		} else {
			fmt.Fprintf(w.out, "Input line rejected: too long. Maximum is %d characters.\n", MaxLineBytes)
		}
		return Result{Outcome: OutcomeRejected}
	}
	if len(tokens) == 0 {
		return Result{Outcome: OutcomeEmpty}
	}

	table := w.root
	var bound params.Strings
	matched := make([]string, 0, len(tokens))

	for d := 0; ; d++ {
		if d >= grammar.MaxDepth {
			fmt.Fprintln(w.out, "Command table error.")
			return Result{Outcome: OutcomeRejected}
		}
		if d >= len(tokens) {
			return w.incomplete(matched)
		}
		tok := tokens[d]
		if tok == grammar.HelpToken {
			RenderHelp(w.out, table, sess.Permission())
			return Result{Outcome: OutcomeHelp}
		}

		node := match(table, tok)
		if node == nil {
			if len(matched) == 0 {
				fmt.Fprintln(w.out, "Command Not Recognized. Enter '?' for Assistance.")
				return Result{Outcome: OutcomeUnrecognized}
			}
			return w.incomplete(matched)
		}

		if node.UserSupplied {
			err = bound.Append(tok)
		} else {
			err = bound.Append(node.StaticParams...)
		}
		if err != nil {
			fmt.Fprintln(w.out, "Command table error.")
			return Result{Outcome: OutcomeRejected}
		}
		matched = append(matched, tok)

		if node.Terminal {
			prefix := strings.Join(matched, " ")
			if d+1 < len(tokens) {
				fmt.Fprintf(w.out, "Too many parameters after '%s'.\n", prefix)
				return Result{Outcome: OutcomeTooManyParameters, Prefix: prefix}
			}
			if !sess.Permission().Allows(node.Permission) {
				fmt.Fprintln(w.out, "[UNAUTHORIZED] This account is not authorized to execute this command.")
				return Result{Outcome: OutcomeUnauthorized, Prefix: prefix}
			}
			ok := node.Handler(bound.Slots())
			return Result{Outcome: OutcomeExecuted, Success: ok, Prefix: prefix}
		}
		table = node.Children
	}
}

func (w *Walker) incomplete(matched []string) Result {
	prefix := strings.Join(matched, " ")
	fmt.Fprintf(w.out, "Incomplete Command: '%s'. Enter '%s ?' for Assistance.\n", prefix, prefix)
	return Result{Outcome: OutcomeIncomplete, Prefix: prefix}
}

// match returns the first sibling accepting tok: a literal text match, or
// any placeholder node.
func match(table []grammar.Node, tok string) *grammar.Node {
	for i := range table {
		n := &table[i]
		if n.Text == tok || n.IsPlaceholder() {
			return n
		}
	}
	return nil
}
