package console

import (
	"github.com/chzyer/readline"
)

// ReadlineSource adapts a readline instance to LineSource.
type ReadlineSource struct {
	rl *readline.Instance
}

// NewReadlineSource opens a readline instance for the interactive console.
func NewReadlineSource() (*ReadlineSource, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "logout",
	})
	if err != nil {
		return nil, err
	}
	return &ReadlineSource{rl: rl}, nil
}

func (s *ReadlineSource) ReadLine(prompt string) (string, error) {
	s.rl.SetPrompt(prompt)
	return s.rl.Readline()
}

func (s *ReadlineSource) ReadPassword(prompt string) (string, error) {
	b, err := s.rl.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Close releases the terminal.
func (s *ReadlineSource) Close() error { return s.rl.Close() }
