package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/taskman/internal/console"
	"github.com/phrazzld/taskman/internal/domain"
)

// prompter asks questions within one console turn.
type prompter struct {
	ctx context.Context
	in  *LineReader
	t   *console.Turn
}

// ask prints label and returns the trimmed answer, or ErrCancelled when the
// answer is the cancel token.
func (p *prompter) ask(label string) (string, error) {
	p.t.Prompt(label)
	line, err := p.in.ReadLine(p.ctx)
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if strings.EqualFold(line, CancelToken) {
		return "", ErrCancelled
	}
	return line, nil
}

// askValid re-asks until parse accepts the answer.
func askValid[T any](p *prompter, label string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(answer)
		if err == nil {
			return v, nil
		}
		p.t.Warn("%v", err)
	}
}

func (p *prompter) title(label string) (string, error) {
	return askValid(p, label, func(s string) (string, error) {
		if s == "" {
			return "", domain.ErrEmptyTitle
		}
		return s, nil
	})
}

func (p *prompter) deadline(label string) (time.Time, error) {
	return askValid(p, label, domain.ParseInputDeadline)
}

func (p *prompter) priority() (domain.Priority, error) {
	return askValid(p, "Enter priority (0 = Low, 1 = Medium, 2 = High) (or 'cancel' to abort): ", domain.ParsePriority)
}

func (p *prompter) yesNo(label string) (bool, error) {
	return askValid(p, label, func(s string) (bool, error) {
		switch Normalize(s) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
		return false, errInvalidYesNo
	})
}

// index asks once for a task index. Anything that is not a number is
// reported as an invalid index by the caller's store lookup.
func (p *prompter) index(label string) (int, error) {
	answer, err := p.ask(label)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(answer)
	if err != nil {
		return -1, nil
	}
	return i, nil
}

// choice asks once for a numbered menu option in [1, n].
func (p *prompter) choice(label string, n int) (int, error) {
	answer, err := p.ask(label)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(answer)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%w: %q", errInvalidChoice, answer)
	}
	return i, nil
}
