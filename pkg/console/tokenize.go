package console

import (
	"errors"
	"strings"
)

// MaxLineBytes is the longest console line accepted. Longer lines are
// rejected whole, never truncated.
const MaxLineBytes = 127

// MaxTokens bounds the token sequence of one line.
const MaxTokens = 16

var (
	ErrLineTooLong   = errors.New("line exceeds input buffer")
	ErrTooManyTokens = errors.New("too many tokens")
)

// Tokenize splits a console line on whitespace.
func Tokenize(line string) ([]string, error) {
	if len(line) > MaxLineBytes {
		return nil, ErrLineTooLong
	}
	tokens := strings.Fields(line)
	if len(tokens) > MaxTokens {
		return nil, ErrTooManyTokens
	}
	return tokens, nil
}
