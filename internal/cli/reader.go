package cli

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/phrazzld/taskman/internal/activity"
)

// LineReader feeds lines from an io.Reader through a channel so callers can
// stop waiting on context cancellation. The reading goroutine lives until
// the underlying reader returns EOF or an error.
type LineReader struct {
	lines chan string
	clock *activity.Clock
	// err is written before lines is closed
	err error
}

// NewLineReader starts reading r. Each completed line touches clock.
func NewLineReader(r io.Reader, clock *activity.Clock) *LineReader {
	lr := &LineReader{
		lines: make(chan string),
		clock: clock,
	}
	go lr.scan(bufio.NewScanner(r))
	return lr
}

func (lr *LineReader) scan(sc *bufio.Scanner) {
	defer close(lr.lines)
	for sc.Scan() {
		if lr.clock != nil {
			lr.clock.Touch()
		}
		lr.lines <- strings.TrimRight(sc.Text(), "\r")
	}
	lr.err = sc.Err()
}

// ReadLine waits for the next line. It returns io.EOF once input is
// exhausted and ctx.Err() if ctx ends first.
func (lr *LineReader) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", lr.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// Normalize trims whitespace and lower-cases a command word.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
