// Package prompt implements the interactive confirmation used before
// actions that change the machine. The prompt is bounded: when the
// user walks away it resolves to the default answer after a timeout,
// so unattended runs never hang.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/benchkit/benchkit/pkg/logging"
)

// DefaultTimeout is how long Confirm waits for input before resolving
// to the default answer.
const DefaultTimeout = 30 * time.Second

// Prompter asks yes/no questions on a terminal. The zero value is not
// usable; call New.
type Prompter struct {
	in  io.Reader
	out io.Writer

	// after is the clock. Tests replace it to avoid real waits.
	after func(time.Duration) <-chan time.Time

	// interactive reports whether in is attached to a terminal.
	interactive bool

	timeout time.Duration
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithIO replaces the input and output streams.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(p *Prompter) {
		p.in = in
		p.out = out
		p.interactive = true
	}
}

// WithClock replaces the timeout clock.
func WithClock(after func(time.Duration) <-chan time.Time) Option {
	return func(p *Prompter) { p.after = after }
}

// WithTimeout overrides the default timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Prompter) { p.timeout = d }
}

// New builds a Prompter on stdin/stderr. Questions go to stderr so
// they never mix with pipeable output.
func New(opts ...Option) *Prompter {
	p := &Prompter{
		in:          os.Stdin,
		out:         os.Stderr,
		after:       time.After,
		interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
		timeout:     DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Confirm asks question and waits for a y/n answer. It returns def
// when input is not a terminal, when the timeout elapses, or when the
// user just presses enter. assumeYes short-circuits to true without
// printing anything.
func (p *Prompter) Confirm(question string, def bool, assumeYes bool) bool {
	logger := logging.GetLogger("prompt")

	if assumeYes {
		logger.Debug().Str("question", question).Msg("Confirmation assumed via --yes")
		return true
	}
	if !p.interactive {
		logger.Debug().Str("question", question).Bool("default", def).
			Msg("No terminal attached, using default answer")
		return def
	}

	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s] (auto-%s in %s): ", question, hint, answerWord(def), p.timeout)

	lines := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(p.in)
		if scanner.Scan() {
			lines <- scanner.Text()
			return
		}
		lines <- ""
	}()

	select {
	case line := <-lines:
		return parseAnswer(line, def)
	case <-p.after(p.timeout):
		fmt.Fprintf(p.out, "\ntimed out, assuming %s\n", answerWord(def))
		logger.Debug().Str("question", question).Bool("default", def).
			Msg("Confirmation timed out, using default answer")
		return def
	}
}

func parseAnswer(line string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

func answerWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
