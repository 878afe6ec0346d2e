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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kbase/singlegenome/genometest"
)

var drosophila = Placeholders{
	Accession:     "GCF_000001215.4",
	GenomeFile:    "out/dataset.GCF_000001215.4/ncbi_dataset/data/GCF_000001215.4/GCF_000001215.4.fasta",
	TaxId:         "7227",
	Species:       "Drosophila melanogaster",
	MaskedSpecies: "Drosophila_melanogaster",
}

func TestExpandReplacesEveryPlaceholder(t *testing.T) {
	assert := assert.New(t)
	text, err := Expand("cp {genomefile} {mspecies}.{taxid}.fa # {species} {accession} {taxid}", drosophila)
	assert.Nil(err)
	assert.Equal("cp "+drosophila.GenomeFile+" Drosophila_melanogaster.7227.fa # Drosophila melanogaster GCF_000001215.4 7227", text)

	text, err = Expand("no placeholders here", drosophila)
	assert.Nil(err)
	assert.Equal("no placeholders here", text)
}

func TestExpandEscapesBraces(t *testing.T) {
	text, err := Expand("awk '{{print $1, \"{taxid}\"}}' {genomefile}", drosophila)
	assert.Nil(t, err)
	assert.Equal(t, "awk '{print $1, \"7227\"}' "+drosophila.GenomeFile, text)
}

func TestExpandRejectsBadTemplates(t *testing.T) {
	assert := assert.New(t)

	_, err := Expand("echo {genus}", drosophila)
	var unknown *UnknownPlaceholderError
	assert.True(errors.As(err, &unknown))
	assert.Equal("genus", unknown.Name)

	var syntax *TemplateSyntaxError
	_, err = Expand("echo {taxid", drosophila)
	assert.True(errors.As(err, &syntax))
	_, err = Expand("echo taxid}", drosophila)
	assert.True(errors.As(err, &syntax))
}

func TestRunShellTemplate(t *testing.T) {
	assert := assert.New(t)
	runner := genometest.NewRunner(nil)
	executor := Executor{Runner: runner, Shell: "/bin/bash", Interpreter: "python3"}
	ctx := context.Background()

	err := executor.RunShellTemplate(ctx, `grep -c ">" "/tmp/my genome.fasta"`, false)
	assert.Nil(err)
	cmd := runner.Commands[0]
	assert.Equal("grep", cmd.Name)
	assert.Equal([]string{"-c", ">", "/tmp/my genome.fasta"}, cmd.Args)

	err = executor.RunShellTemplate(ctx, "grep -c '>' g.fa > counts.txt", true)
	assert.Nil(err)
	cmd = runner.Commands[1]
	assert.Equal("/bin/bash", cmd.Name)
	assert.Equal([]string{"-c", "grep -c '>' g.fa > counts.txt"}, cmd.Args)
}

func TestRunShellTemplateRequiresShellForOperators(t *testing.T) {
	assert := assert.New(t)
	runner := genometest.NewRunner(nil)
	executor := Executor{Runner: runner, Shell: "/bin/sh", Interpreter: "python3"}

	err := executor.RunShellTemplate(context.Background(), "gzip -c g.fa > g.fa.gz", false)
	assert.True(errors.Is(err, ErrNeedsShell))
	err = executor.RunShellTemplate(context.Background(), "echo first\nrm -f second", false)
	assert.True(errors.Is(err, ErrNeedsShell))
	err = executor.RunShellTemplate(context.Background(), "   ", false)
	var syntax *CommandSyntaxError
	assert.True(errors.As(err, &syntax))
	assert.Empty(runner.Commands)
}

func TestRunCodeTemplate(t *testing.T) {
	assert := assert.New(t)
	runner := genometest.NewRunner(nil)
	runner.Failures["python3"] = errors.New("NameError")
	executor := Executor{Runner: runner, Shell: "/bin/sh", Interpreter: "python3"}

	err := executor.RunCodeTemplate(context.Background(), "print('7227')")
	assert.NotNil(err)
	assert.Equal("python3", runner.Commands[0].Name)
	assert.Equal([]string{"-c", "print('7227')"}, runner.Commands[0].Args)
}
