package console

import (
	"strings"
	"testing"

	"github.com/misl-switch/mislswitch-go/pkg/grammar"
	"github.com/misl-switch/mislswitch-go/pkg/params"
	"github.com/misl-switch/mislswitch-go/pkg/perm"
	"github.com/misl-switch/mislswitch-go/pkg/session"
	"github.com/misl-switch/mislswitch-go/pkg/users"
)

func adminSession() *session.Session {
	s := session.New()
	s.Bind(users.User{Username: "root", Permission: perm.Administrator})
	return s
}

func operatorSession() *session.Session {
	s := session.New()
	s.Bind(users.User{Username: "op", Permission: perm.ReadOnly})
	return s
}

// testTree mirrors the shape of the real grammar: a routing level, a port
// selector contributing a static base address, and terminals below it.
func testTree(captured *[]string) []grammar.Node {
	capture := func(n int) grammar.Handler {
		return func(p *[params.MaxParams]string) bool {
			*captured = append([]string(nil), p[:n]...)
			return true
		}
	}
	return []grammar.Node{
		{
			Text: "port", Help: "Configure a switch port.",
			Children: []grammar.Node{
				{
					Text: "f0", Help: "Fast Ethernet 0.",
					ParamsRequired: 1, StaticParams: []string{"0x40"},
					Children: []grammar.Node{
						{
							Text: "status", Help: "Show port status.",
							Terminal: true, Handler: capture(1),
						},
						{
							Text: "toggle-tx", Help: "Transmitter control.",
							ParamsRequired: 2, StaticParams: []string{"0x2", "0x02"},
							Children: []grammar.Node{
								{
									Text: "enable", Help: "Enable the transmitter.",
									Terminal: true, Permission: perm.ModifyPorts,
									ParamsRequired: 1,
									StaticParams:   []string{"Enabling Feature..."},
									Handler:        capture(4),
								},
							},
						},
					},
				},
			},
		},
		{
			Text: "system", Help: "System administration.",
			Children: []grammar.Node{
				{
					Text: "reset", Help: "Restart the switch.",
					Terminal: true, Permission: perm.Administrator,
					Handler: capture(0),
				},
			},
		},
		{
			Text: "vlan", Help: "VLAN table.",
			Children: []grammar.Node{
				{
					Text: "<vlan-id [1-4095]>", Help: "VLAN to configure.",
					UserSupplied: true, ParamsRequired: 1,
					Terminal: true, Handler: capture(1),
				},
			},
		},
	}
}

func dispatch(t *testing.T, line string, sess *session.Session) (Result, string, []string) {
	t.Helper()
	var captured []string
	tree := testTree(&captured)
	if err := grammar.Validate(tree); err != nil {
		t.Fatalf("test tree invalid: %v", err)
	}
	var out strings.Builder
	res := NewWalker(tree, &out).Dispatch(line, sess)
	return res, out.String(), captured
}

func TestDispatchUnrecognized(t *testing.T) {
	res, out, _ := dispatch(t, "bogus", adminSession())
	if res.Outcome != OutcomeUnrecognized {
		t.Fatalf("outcome = %v, want OutcomeUnrecognized", res.Outcome)
	}
	if !strings.Contains(out, "Command Not Recognized") {
		t.Errorf("missing diagnostic, got %q", out)
	}
}

func TestDispatchIncompleteEchoesPrefix(t *testing.T) {
	res, out, _ := dispatch(t, "port f0", adminSession())
	if res.Outcome != OutcomeIncomplete {
		t.Fatalf("outcome = %v, want OutcomeIncomplete", res.Outcome)
	}
	if res.Prefix != "port f0" {
		t.Errorf("prefix = %q, want %q", res.Prefix, "port f0")
	}
	if !strings.Contains(out, "Incomplete Command: 'port f0'") {
		t.Errorf("diagnostic %q does not echo prefix", out)
	}
}

func TestDispatchIncompleteOnUnknownChildToken(t *testing.T) {
	res, _, _ := dispatch(t, "port f9", adminSession())
	if res.Outcome != OutcomeIncomplete {
		t.Fatalf("outcome = %v, want OutcomeIncomplete", res.Outcome)
	}
	if res.Prefix != "port" {
		t.Errorf("prefix = %q, want %q", res.Prefix, "port")
	}
}

func TestDispatchTooManyParameters(t *testing.T) {
	res, _, captured := dispatch(t, "port f0 status extra", adminSession())
	if res.Outcome != OutcomeTooManyParameters {
		t.Fatalf("outcome = %v, want OutcomeTooManyParameters", res.Outcome)
	}
	if captured != nil {
		t.Error("handler must not run on trailing tokens")
	}
}

func TestDispatchBindsStaticParamsAlongPath(t *testing.T) {
	res, _, captured := dispatch(t, "port f0 status", adminSession())
	if res.Outcome != OutcomeExecuted || !res.Success {
		t.Fatalf("result = %+v, want executed success", res)
	}
	if len(captured) != 1 || captured[0] != "0x40" {
		t.Errorf("params = %v, want [0x40]", captured)
	}
}

func TestDispatchAccumulatesParamsPerDepth(t *testing.T) {
	res, _, captured := dispatch(t, "port f0 toggle-tx enable", operatorUpgraded(perm.ModifyPorts))
	if res.Outcome != OutcomeExecuted {
		t.Fatalf("outcome = %v, want OutcomeExecuted", res.Outcome)
	}
	want := []string{"0x40", "0x2", "0x02", "Enabling Feature..."}
	if len(captured) != len(want) {
		t.Fatalf("params = %v, want %v", captured, want)
	}
	for i := range want {
		if captured[i] != want[i] {
			t.Errorf("param[%d] = %q, want %q", i, captured[i], want[i])
		}
	}
}

func operatorUpgraded(l perm.Level) *session.Session {
	s := session.New()
	s.Bind(users.User{Username: "op", Permission: l})
	return s
}

func TestDispatchUnauthorizedAtTerminalOnly(t *testing.T) {
	// descending into the restricted subtree is allowed
	res, out, _ := dispatch(t, "system reset", operatorSession())
	if res.Outcome != OutcomeUnauthorized {
		t.Fatalf("outcome = %v, want OutcomeUnauthorized", res.Outcome)
	}
	if !strings.Contains(out, "[UNAUTHORIZED]") {
		t.Errorf("missing diagnostic, got %q", out)
	}
}

func TestDispatchWildcardBindsLiteralToken(t *testing.T) {
	res, _, captured := dispatch(t, "vlan 100", adminSession())
	if res.Outcome != OutcomeExecuted {
		t.Fatalf("outcome = %v, want OutcomeExecuted", res.Outcome)
	}
	if len(captured) != 1 || captured[0] != "100" {
		t.Errorf("params = %v, want [100]", captured)
	}
}

func TestDispatchHelpAbortsWalk(t *testing.T) {
	res, out, captured := dispatch(t, "port f0 ?", adminSession())
	if res.Outcome != OutcomeHelp {
		t.Fatalf("outcome = %v, want OutcomeHelp", res.Outcome)
	}
	if captured != nil {
		t.Error("help must not execute a handler")
	}
	if !strings.Contains(out, "status") || !strings.Contains(out, "toggle-tx") {
		t.Errorf("help output %q missing sibling entries", out)
	}
}

func TestDispatchRootHelp(t *testing.T) {
	res, out, _ := dispatch(t, "?", adminSession())
	if res.Outcome != OutcomeHelp {
		t.Fatalf("outcome = %v, want OutcomeHelp", res.Outcome)
	}
	for _, entry := range []string{"port", "system", "vlan"} {
		if strings.Count(out, entry+" ") != 1 {
			t.Errorf("root help should list %q exactly once:\n%s", entry, out)
		}
	}
}

func TestDispatchEmptyLine(t *testing.T) {
	res, out, _ := dispatch(t, "   ", adminSession())
	if res.Outcome != OutcomeEmpty {
		t.Fatalf("outcome = %v, want OutcomeEmpty", res.Outcome)
	}
	if out != "" {
		t.Errorf("blank line should print nothing, got %q", out)
	}
}

func TestDispatchOversizedLineRejected(t *testing.T) {
	res, out, _ := dispatch(t, strings.Repeat("a", MaxLineBytes+1), adminSession())
	if res.Outcome != OutcomeRejected {
		t.Fatalf("outcome = %v, want OutcomeRejected", res.Outcome)
	}
	if !strings.Contains(out, "too long") {
		t.Errorf("missing diagnostic, got %q", out)
	}
}

func TestDispatchOverTokenizedLineRejected(t *testing.T) {
	// short enough for the buffer but one word past the token limit
	line := strings.TrimSpace(strings.Repeat("a ", MaxTokens+1))
	res, out, _ := dispatch(t, line, adminSession())
	if res.Outcome != OutcomeRejected {
		t.Fatalf("outcome = %v, want OutcomeRejected", res.Outcome)
	}
	if !strings.Contains(out, "too many words") {
		t.Errorf("missing diagnostic, got %q", out)
	}
	if strings.Contains(out, "too long") {
		t.Errorf("wrong diagnostic for a token overflow, got %q", out)
	}
}
