package console

import (
	"errors"
	"io"
)

// LineSource supplies operator input one line at a time. ReadPassword
// suppresses echo where the underlying terminal supports it.
type LineSource interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

// ErrLineQueueFull reports a pending line that was never consumed. The
// queue holds exactly one line.
var ErrLineQueueFull = errors.New("line queue full")

// LineQueue is a LineSource fed programmatically. It buffers a single
// pending line; pushing onto an unconsumed line is an error, matching the
// one-line handoff between the input driver and the console task.
type LineQueue struct {
	lines chan string
}

func NewLineQueue() *LineQueue {
	return &LineQueue{lines: make(chan string, 1)}
}

// Push queues one line of input.
func (q *LineQueue) Push(line string) error {
	select {
	case q.lines <- line:
		return nil
	default:
		return ErrLineQueueFull
	}
}

// Close ends the input stream; pending reads return io.EOF.
func (q *LineQueue) Close() { close(q.lines) }

func (q *LineQueue) ReadLine(string) (string, error) {
	line, ok := <-q.lines
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (q *LineQueue) ReadPassword(prompt string) (string, error) {
	return q.ReadLine(prompt)
}
