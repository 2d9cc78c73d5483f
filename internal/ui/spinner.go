// Package ui holds terminal presentation helpers.
package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Spinner wraps briandowns/spinner and stays silent when stderr is not
// a terminal, so piped output is never polluted.
type Spinner struct {
	s *spinner.Spinner
}

func NewSpinner(message string) *Spinner {
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return &Spinner{}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	return &Spinner{s: s}
}

func (sp *Spinner) Start() {
	if sp.s != nil {
		sp.s.Start()
	}
}

func (sp *Spinner) Stop() {
	if sp.s != nil {
		sp.s.Stop()
	}
}
