package workflow

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// InteractivePrompter reads operator decisions from a terminal.
type InteractivePrompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// Confirm asks for one of y/n/r. Anything else, including an empty
// line, re-prompts without a state change.
func (p *InteractivePrompter) Confirm(label, candidate string) (Decision, error) {
	reader, err := p.input()
	if err != nil {
		return Reject, err
	}

	for {
		fmt.Fprintf(p.out(), "\nUse this %s? [y/n/r] (y=yes, n=no, r=regenerate): ", label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return Reject, fmt.Errorf("failed to read user input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y":
			return Accept, nil
		case "n":
			return Reject, nil
		case "r":
			return Regenerate, nil
		default:
			fmt.Fprintln(p.out(), "Please answer y, n or r.")
		}
	}
}

// RetryGeneration asks whether to retry after a generation failure.
// Only an explicit y retries.
func (p *InteractivePrompter) RetryGeneration(failure error) (bool, error) {
	reader, err := p.input()
	if err != nil {
		return false, err
	}

	fmt.Fprintf(p.out(), "Generation failed: %v\n", failure)
	fmt.Fprint(p.out(), "Try again? [y/N]: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y", nil
}

func (p *InteractivePrompter) input() (*bufio.Reader, error) {
	if p.reader != nil {
		return p.reader, nil
	}

	in := p.In
	if in == nil {
		in = os.Stdin
	}
	if f, ok := in.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return nil, errors.New("stdin is not a terminal; drop --interactive to accept the first candidate")
		}
	}

	p.reader = bufio.NewReader(in)
	return p.reader, nil
}

func (p *InteractivePrompter) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stderr
}
