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
	"errors"
	"fmt"
)

// reported for commands using shell syntax when no shell was requested
var ErrNeedsShell = errors.New("shell operators and multi-line commands require -sh")

// indicates that a template refers to a placeholder that doesn't exist
type UnknownPlaceholderError struct {
	Name string
}

func (e UnknownPlaceholderError) Error() string {
	return fmt.Sprintf("Unknown placeholder '{%s}' (valid: {accession}, {genomefile}, {taxid}, {species}, {mspecies})", e.Name)
}

// indicates that a template has unbalanced braces
type TemplateSyntaxError struct {
	Template, Message string
	Position          int
}

func (e TemplateSyntaxError) Error() string {
	return fmt.Sprintf("Invalid template at position %d (%s): %s", e.Position, e.Message, e.Template)
}

// indicates that a command could not be split into words
type CommandSyntaxError struct {
	Command string
	Err     error
}

func (e CommandSyntaxError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("Empty command: '%s'", e.Command)
	}
	return fmt.Sprintf("Can't parse command '%s': %s", e.Command, e.Err.Error())
}

func (e CommandSyntaxError) Unwrap() error {
	return e.Err
}
