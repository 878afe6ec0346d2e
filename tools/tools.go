// Copyright (c) 2023 The KBase Project and its Contributors
// Copyright (c) 2023 Cohere Consulting, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.


// Package tools runs the external programs a pipeline depends on.
package tools

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// A Command describes one invocation of an external program.
type Command struct {
	// name or path of the executable
	Name string
	// arguments passed to the executable
	Args []string
	// working directory (optional, default: current working directory)
	Dir string
}

// returns a human-readable rendition of the command, suitable for narration
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\n'\"") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Runner is implemented by anything that executes Commands. Both methods
// block until the program exits.
type Runner interface {
	// runs the command, passing its output through to the console
	Run(ctx context.Context, cmd Command) error
	// runs the command, returning its standard output as text
	Output(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner runs commands as child processes of this one.
type ExecRunner struct {
	// destinations for the children's output (default: os.Stdout/os.Stderr)
	Stdout, Stderr io.Writer
}

// creates an ExecRunner writing to the given streams
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{Stdout: stdout, Stderr: stderr}
}

func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	c := r.command(ctx, cmd)
	c.Stdout = r.stdout()
	c.Stderr = r.stderr()
	slog.Debug(fmt.Sprintf("Running %s", cmd.String()))
	return classify(cmd, c.Run(), "")
}

func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	c := r.command(ctx, cmd)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = io.MultiWriter(&stderr, r.stderr())
	slog.Debug(fmt.Sprintf("Running %s (capturing output)", cmd.String()))
	err := c.Run()
	return stdout.String(), classify(cmd, err, stderr.String())
}

func (r *ExecRunner) command(ctx context.Context, cmd Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	return c
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

// converts an error from os/exec into one of this package's error types
func classify(cmd Command, err error, stderr string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return &NotFoundError{Tool: cmd.Name, Err: err}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Command:  cmd.String(),
			ExitCode: exitErr.ExitCode(),
			Stderr:   strings.TrimSpace(stderr),
			Err:      exitErr,
		}
	}
	return fmt.Errorf("running %s: %w", cmd.Name, err)
}
