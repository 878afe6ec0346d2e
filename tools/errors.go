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


package tools

import (
	"fmt"
)

// indicates that an external program could not be located
type NotFoundError struct {
	Tool string
	Err  error
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("The program '%s' was not found: %s", e.Tool, e.Err.Error())
}

func (e NotFoundError) Unwrap() error {
	return e.Err
}

// indicates that an external program exited with a non-zero status
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string // captured error output (if any)
	Err      error
}

func (e ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("Command '%s' failed with exit status %d: %s", e.Command, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("Command '%s' failed with exit status %d", e.Command, e.ExitCode)
}

func (e ExitError) Unwrap() error {
	return e.Err
}
