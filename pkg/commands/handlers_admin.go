package commands

import (
	"strconv"

	"github.com/misl-switch/mislswitch-go/pkg/audit"
	"github.com/misl-switch/mislswitch-go/pkg/params"
	"github.com/misl-switch/mislswitch-go/pkg/perm"
	"github.com/misl-switch/mislswitch-go/pkg/users"
	"github.com/olekukonko/tablewriter"
)

// ListUsers renders the user store.
func (s *Set) ListUsers(p *[params.MaxParams]string) bool {
	table := tablewriter.NewWriter(s.Out)
	table.SetHeader([]string{"Username", "First Name", "Last Name", "Permission"})
	for _, u := range s.Users.List() {
		table.Append([]string{u.Username, u.FirstName, u.LastName, u.Permission.String()})
	}
	table.Render()
	s.printf("%d of %d user slots in use.", s.Users.Len(), users.MaxUsers)
	return true
}

// AddUser creates an account. Slots: username, password, permission.
func (s *Set) AddUser(p *[params.MaxParams]string) bool {
	level, err := perm.Parse(p[2])
	if err != nil {
		s.printf("Unknown permission level '%s'.", p[2])
		return false
	}
	s.task("Creating User Account...")
	return s.done(s.Users.Add(users.User{Username: p[0], Permission: level}, p[1]))
}

// DeleteUser removes an account by username.
func (s *Set) DeleteUser(p *[params.MaxParams]string) bool {
	s.task("Deleting User Account...")
	return s.done(s.Users.Delete(p[0]))
}

// EventsStatus lists every event code with its filter state.
func (s *Set) EventsStatus(p *[params.MaxParams]string) bool {
	table := tablewriter.NewWriter(s.Out)
	table.SetHeader([]string{"Code", "Event", "Logging"})
	for _, code := range audit.Codes() {
		state := "disabled"
		if s.Filter.Enabled(code) {
			state = "enabled"
		}
		table.Append([]string{strconv.Itoa(int(code)), code.String(), state})
	}
	table.Render()
	return true
}

// ManageEvent flips logging for one event code. Slot 0 is the code, slot 1
// the static "enable"/"disable" the terminal node contributed.
func (s *Set) ManageEvent(p *[params.MaxParams]string) bool {
	code, err := strconv.Atoi(p[0])
	if err != nil || code < 0 || code >= audit.MaxCodes {
		s.printf("Unknown event code '%s'.", p[0])
		return false
	}
	s.Filter.SetEnabled(audit.Code(code), p[1] == "enable")
	return s.done(nil)
}

// ListEvents dumps the in-memory event ring, oldest first.
func (s *Set) ListEvents(p *[params.MaxParams]string) bool {
	events := s.Ring.Events()
	if len(events) == 0 {
		s.printf("No events recorded.")
		return true
	}
	for _, e := range events {
		line := e.Timestamp.Format("2006-01-02 15:04:05") + "  " + e.Code.String()
		if e.User != "" {
			line += "  user=" + e.User
		}
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		s.printf("%s", line)
	}
	s.printf("%d event(s).", len(events))
	return true
}

// ClearEvents empties the event ring.
func (s *Set) ClearEvents(p *[params.MaxParams]string) bool {
	s.Ring.Clear()
	return s.done(nil)
}

// Logout drops the session's identity; the console loop re-enters login.
func (s *Set) Logout(p *[params.MaxParams]string) bool {
	if s.Sess.Authenticated() {
		s.audit(audit.UserLoggedOut, "")
	}
	s.Sess.Reset()
	s.printf("Logged out.")
	return true
}
