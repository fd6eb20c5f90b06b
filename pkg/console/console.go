package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/misl-switch/mislswitch-go/pkg/audit"
	"github.com/misl-switch/mislswitch-go/pkg/grammar"
	"github.com/misl-switch/mislswitch-go/pkg/session"
	"github.com/misl-switch/mislswitch-go/pkg/users"
)

// Authenticator verifies operator credentials against the user store.
type Authenticator interface {
	Authenticate(username, password string) (users.User, error)
}

// Console is the interactive operator task: it gates on login, then reads
// lines and dispatches them until logout or end of input.
type Console struct {
	walker   *Walker
	src      LineSource
	out      io.Writer
	sess     *session.Session
	auth     Authenticator
	log      audit.Logger
	hostname string
}

// New assembles a console. root must already have passed grammar.Validate.
func New(root []grammar.Node, src LineSource, out io.Writer, sess *session.Session, auth Authenticator, log audit.Logger, hostname string) *Console {
	return &Console{
		walker:   NewWalker(root, out),
		src:      src,
		out:      out,
		sess:     sess,
		auth:     auth,
		log:      log,
		hostname: hostname,
	}
}

// Run drives the console until the context ends or the input source is
// exhausted. A logged-out session falls back into the login machine rather
// than ending the loop.
func (c *Console) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		if !c.sess.Authenticated() {
			if err := c.Login(ctx); err != nil {
				return c.eof(err)
			}
		}
		line, err := c.src.ReadLine(c.Prompt())
		if err != nil {
			if errors.Is(err, io.EOF) {
				// the operator hung up mid-session; close it out so
				// the audit trail pairs every login with a logout
				c.Logout()
				return nil
			}
			return err
		}
		c.walker.Dispatch(line, c.sess)
	}
	return nil
}

// Login runs the authentication state machine: username, then password,
// looping on failure without lockout until a credential pair verifies.
func (c *Console) Login(ctx context.Context) error {
	fmt.Fprintln(c.out, "=== AUTHENTICATION REQUIRED ===")
	for ctx.Err() == nil {
		username, err := c.src.ReadLine("Username: ")
		if err != nil {
			return err
		}
		password, err := c.src.ReadPassword("Password: ")
		if err != nil {
			return err
		}
		u, err := c.auth.Authenticate(username, password)
		if err != nil {
			fmt.Fprintln(c.out, "AUTHENTICATION FAILED!")
			continue
		}
		c.sess.Bind(u)
		c.log.Log(audit.Event{
			Timestamp: time.Now(),
			SessionID: c.sess.ID(),
			Code:      audit.UserLoggedIn,
			User:      u.Username,
		})
		fmt.Fprintf(c.out, "Welcome, %s %s!\n", u.FirstName, u.LastName)
		fmt.Fprintln(c.out, "Enter '?' at any time for assistance.")
		return nil
	}
	return ctx.Err()
}

// Logout emits the session-end event and drops the bound identity. The
// session value itself survives; the next Run iteration re-enters login.
func (c *Console) Logout() {
	if !c.sess.Authenticated() {
		return
	}
	c.log.Log(audit.Event{
		Timestamp: time.Now(),
		SessionID: c.sess.ID(),
		Code:      audit.UserLoggedOut,
		User:      c.sess.User().Username,
	})
	c.sess.Reset()
}

// Prompt is the bold hostname followed by ">".
func (c *Console) Prompt() string {
	return color.New(color.Bold).Sprint(c.hostname) + ">"
}

// Dispatch runs one line outside the interactive loop.
func (c *Console) Dispatch(line string) Result {
	return c.walker.Dispatch(line, c.sess)
}

func (c *Console) eof(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
