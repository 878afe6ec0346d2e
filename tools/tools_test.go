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
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandString(t *testing.T) {
	assert := assert.New(t)
	cmd := Command{Name: "datasets", Args: []string{"rehydrate", "--match", "/GCA_1/"}}
	assert.Equal("datasets rehydrate --match /GCA_1/", cmd.String())
	cmd = Command{Name: "sh", Args: []string{"-c", "echo hi > out"}}
	assert.Equal(`sh -c "echo hi > out"`, cmd.String())
}

func TestExecRunnerRun(t *testing.T) {
	assert := assert.New(t)
	var stdout, stderr bytes.Buffer
	runner := NewExecRunner(&stdout, &stderr)

	err := runner.Run(context.Background(), Command{Name: "/bin/sh", Args: []string{"-c", "echo hello; echo oops >&2"}})
	assert.Nil(err)
	assert.Equal("hello\n", stdout.String())
	assert.Equal("oops\n", stderr.String())
}

func TestExecRunnerOutput(t *testing.T) {
	assert := assert.New(t)
	var stderr bytes.Buffer
	runner := NewExecRunner(&bytes.Buffer{}, &stderr)

	out, err := runner.Output(context.Background(),
		Command{Name: "/bin/sh", Args: []string{"-c", "printf 'tax_id\\torganism\\n'"}})
	assert.Nil(err)
	assert.Equal("tax_id\torganism\n", out)
}

func TestExecRunnerReportsExitStatus(t *testing.T) {
	assert := assert.New(t)
	runner := NewExecRunner(&bytes.Buffer{}, &bytes.Buffer{})

	_, err := runner.Output(context.Background(),
		Command{Name: "/bin/sh", Args: []string{"-c", "echo broken >&2; exit 3"}})
	var exitErr *ExitError
	assert.True(errors.As(err, &exitErr))
	assert.Equal(3, exitErr.ExitCode)
	assert.Equal("broken", exitErr.Stderr)
	var cause *exec.ExitError
	assert.True(errors.As(err, &cause))
	assert.Equal(3, cause.ExitCode())
}

func TestExecRunnerReportsMissingProgram(t *testing.T) {
	runner := NewExecRunner(&bytes.Buffer{}, &bytes.Buffer{})
	err := runner.Run(context.Background(), Command{Name: "no-such-program-for-single-genome"})
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, "no-such-program-for-single-genome", notFound.Tool)
}
