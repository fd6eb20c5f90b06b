package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/misl-switch/mislswitch-go/pkg/audit"
	"github.com/misl-switch/mislswitch-go/pkg/bus"
	"github.com/misl-switch/mislswitch-go/pkg/controller"
	"github.com/misl-switch/mislswitch-go/pkg/session"
	"github.com/misl-switch/mislswitch-go/pkg/users"
)

// Set binds the command handlers to their collaborators. One Set serves one
// console session; the bus handlers share it through the descriptor table.
type Set struct {
	Regs  controller.RegisterIO
	VLANs controller.VLANTable
	MACs  controller.MACTables
	ROM   controller.EEPROM

	Users *users.Store
	Sess  *session.Session

	// Log receives audit events; Filter and Ring are the same chain's
	// knobs, exposed to the event management commands.
	Log    audit.Logger
	Filter *audit.Filter
	Ring   *audit.Ring

	// Assembler and Responder wire the console's bus loopback: frames
	// pushed into the assembler come back out through the responder.
	Assembler *bus.Assembler
	Responder *bus.Recorder

	Out io.Writer

	resetArmed bool
}

func (s *Set) printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format+"\n", args...)
}

func (s *Set) task(message string) {
	s.printf("[RUNNING TASK]: %s", message)
}

func (s *Set) done(err error) bool {
	if err != nil {
		s.printf("An error occurred while executing this task.")
		return false
	}
	s.printf("Command Executed Successfully")
	return true
}

func (s *Set) audit(code audit.Code, detail string) {
	var user string
	if s.Sess != nil {
		user = s.Sess.User().Username
	}
	var sid string
	if s.Sess != nil {
		sid = s.Sess.ID()
	}
	s.Log.Log(audit.Event{
		Timestamp: time.Now(),
		SessionID: sid,
		Code:      code,
		User:      user,
		Detail:    detail,
	})
}

// parseByte accepts the register notation the console and the static
// parameter scheme use: "0x4e", "0b101", plain decimal.
func parseByte(tok string) (uint8, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(tok), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("bad byte value %q: %w", tok, err)
	}
	return uint8(v), nil
}

func parseUint16(tok string) (uint16, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(tok), 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad value %q: %w", tok, err)
	}
	return uint16(v), nil
}

// parseFrame reads a comma-separated list of byte values, e.g.
// "0x00,0x6e,0x01,0x00".
func parseFrame(tok string) ([]byte, error) {
	parts := strings.Split(tok, ",")
	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		b, err := parseByte(p)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
