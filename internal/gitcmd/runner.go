// Package gitcmd executes git subprocesses with shared output capture
// and verbose logging.
package gitcmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes git commands. The zero value runs git in the current
// directory with logging to stderr.
type Runner struct {
	Verbose bool
	Dir     string
	Logger  io.Writer
}

// Result holds the captured stdout/stderr of a finished git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

func (r Result) StdoutString(trim bool) string {
	out := string(r.Stdout)
	if trim {
		return strings.TrimSpace(out)
	}
	return out
}

func (r Result) StderrString(trim bool) string {
	out := string(r.Stderr)
	if trim {
		return strings.TrimSpace(out)
	}
	return out
}

func (r Runner) logger() io.Writer {
	if r.Logger != nil {
		return r.Logger
	}
	return os.Stderr
}

// Run executes a git command and captures its output. When Verbose is
// set the command line is echoed to the logger first.
func (r Runner) Run(args ...string) (Result, error) {
	if r.Verbose {
		fmt.Fprintf(r.logger(), "Running: git %s\n", strings.Join(args, " "))
	}

	cmd := exec.Command("git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}, err
}
