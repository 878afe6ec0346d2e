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


// This package contains testing utilities for single-genome runs.
package genometest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kbase/singlegenome/tools"
)

// Enables DEBUG log messages for the structured log (slog).
func EnableDebugLogging() {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelDebug)
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(h))
}

// the taxonomy text emitted by the fixture's dataformat by default
const DrosophilaTaxonomy = "Taxonomic ID\tOrganism name\n7227\tDrosophila melanogaster\n"

// Runner is a tools.Runner test fixture that imitates the NCBI datasets,
// dataformat and unzip programs by creating the files they would create. All
// commands are recorded, including ones it doesn't recognize.
type Runner struct {
	// names under which the imitated programs are invoked
	Datasets, Dataformat, Unzip string
	// standard output of dataformat
	TaxonomyText string
	// sequence files (name -> content) created by rehydration
	Chromosomes map[string]string
	// errors returned for commands with the given program name
	Failures map[string]error
	// every command received, in order
	Commands []tools.Command
}

// creates a Runner with the default program names, Drosophila taxonomy and
// the given sequence files
func NewRunner(chromosomes map[string]string) *Runner {
	return &Runner{
		Datasets:     "datasets",
		Dataformat:   "dataformat",
		Unzip:        "unzip",
		TaxonomyText: DrosophilaTaxonomy,
		Chromosomes:  chromosomes,
		Failures:     make(map[string]error),
	}
}

// returns the recorded commands invoking the named program
func (r *Runner) CommandsFor(name string) []tools.Command {
	cmds := make([]tools.Command, 0)
	for _, cmd := range r.Commands {
		if cmd.Name == name {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (r *Runner) Run(ctx context.Context, cmd tools.Command) error {
	r.Commands = append(r.Commands, cmd)
	if err, found := r.Failures[cmd.Name]; found {
		return err
	}
	switch cmd.Name {
	case r.Datasets:
		if len(cmd.Args) > 0 && cmd.Args[0] == "rehydrate" {
			return r.rehydrate(cmd)
		}
		return r.download(cmd)
	case r.Unzip:
		return r.unzip(cmd)
	}
	return nil
}

func (r *Runner) Output(ctx context.Context, cmd tools.Command) (string, error) {
	r.Commands = append(r.Commands, cmd)
	if err, found := r.Failures[cmd.Name]; found {
		return "", err
	}
	if cmd.Name == r.Dataformat {
		return r.TaxonomyText, nil
	}
	return "", nil
}

// returns the argument following the given option
func optionValue(cmd tools.Command, option string) (string, error) {
	for i, arg := range cmd.Args {
		if arg == option && i+1 < len(cmd.Args) {
			return cmd.Args[i+1], nil
		}
	}
	return "", fmt.Errorf("%s: missing %s", cmd.String(), option)
}

func (r *Runner) download(cmd tools.Command) error {
	archive, err := optionValue(cmd, "--filename")
	if err != nil {
		return err
	}
	return os.WriteFile(archive, []byte("PK dehydrated package"), 0644)
}

func (r *Runner) unzip(cmd tools.Command) error {
	dir, err := optionValue(cmd, "-d")
	if err != nil {
		return err
	}
	archive := cmd.Args[len(cmd.Args)-1]
	if _, err := os.Stat(archive); err != nil {
		return err
	}
	dataDir := filepath.Join(dir, "ncbi_dataset", "data")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dataDir, "fetch.txt"), []byte("fetch list\n"), 0644)
}

func (r *Runner) rehydrate(cmd tools.Command) error {
	dir, err := optionValue(cmd, "--directory")
	if err != nil {
		return err
	}
	match, err := optionValue(cmd, "--match")
	if err != nil {
		return err
	}
	seqDir := filepath.Join(dir, "ncbi_dataset", "data", strings.Trim(match, "/"))
	if err := os.MkdirAll(seqDir, 0755); err != nil {
		return err
	}
	for name, content := range r.Chromosomes {
		if err := os.WriteFile(filepath.Join(seqDir, name), []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
