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


package commands

import (
	"context"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/kbase/singlegenome/tools"
)

// Executor runs expanded templates as external processes.
type Executor struct {
	Runner      tools.Runner
	Shell       string // used for shell commands, invoked as <Shell> -c <command>
	Interpreter string // used for code, invoked as <Interpreter> -c <code>
}

// RunShellTemplate runs the given command. If useShell is set, the command
// is handed to the shell as-is, which allows pipes, redirections and command
// sequences; otherwise it is split into words and run directly.
func (e Executor) RunShellTemplate(ctx context.Context, command string, useShell bool) error {
	if useShell {
		return e.Runner.Run(ctx, tools.Command{Name: e.Shell, Args: []string{"-c", command}})
	}
	if strings.ContainsAny(command, "\r\n") {
		// one command per line is a sequence
		return &CommandSyntaxError{Command: command, Err: ErrNeedsShell}
	}
	parser := shellwords.NewParser()
	words, err := parser.Parse(command)
	if err != nil {
		return &CommandSyntaxError{Command: command, Err: err}
	}
	if parser.Position >= 0 {
		// pipes, redirections and separators need a shell
		return &CommandSyntaxError{Command: command, Err: ErrNeedsShell}
	}
	if len(words) == 0 {
		return &CommandSyntaxError{Command: command}
	}
	return e.Runner.Run(ctx, tools.Command{Name: words[0], Args: words[1:]})
}

// RunCodeTemplate hands the given code to the interpreter.
func (e Executor) RunCodeTemplate(ctx context.Context, code string) error {
	return e.Runner.Run(ctx, tools.Command{Name: e.Interpreter, Args: []string{"-c", code}})
}
