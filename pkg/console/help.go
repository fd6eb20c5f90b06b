package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/misl-switch/mislswitch-go/pkg/grammar"
	"github.com/misl-switch/mislswitch-go/pkg/perm"
)

// restrictedMarker flags entries the current session cannot execute. It
// consumes one column of the padding so the help text stays aligned.
const restrictedMarker = "*"

// RenderHelp lists every entry of a sibling table, one per line, with the
// help text aligned two columns past the longest command word. Entries the
// session's permission level cannot execute get a marker, and a single
// summary line follows the listing when any entry was marked.
func RenderHelp(w io.Writer, table []grammar.Node, level perm.Level) {
	width := 0
	for i := range table {
		if len(table[i].Text) > width {
			width = len(table[i].Text)
		}
	}

	flagged := false
	for i := range table {
		n := &table[i]
		pad := width + 2 - len(n.Text)
		if level.Allows(n.Permission) {
			fmt.Fprintf(w, "%s%s%s\n", n.Text, strings.Repeat(" ", pad), n.Help)
		} else {
			flagged = true
			fmt.Fprintf(w, "%s%s%s%s\n", n.Text, restrictedMarker, strings.Repeat(" ", pad-1), n.Help)
		}
	}
	if flagged {
		fmt.Fprintf(w, "\n[%s] Command requires elevated priviledges!\n", restrictedMarker)
	}
}
