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


// Package pipeline downloads, consolidates and processes a single NCBI genome.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/kbase/singlegenome/commands"
	"github.com/kbase/singlegenome/config"
	"github.com/kbase/singlegenome/fasta"
	"github.com/kbase/singlegenome/frictionless"
	"github.com/kbase/singlegenome/journal"
	"github.com/kbase/singlegenome/ncbi"
	"github.com/kbase/singlegenome/tools"
)

// Result summarizes a run.
type Result struct {
	Id           uuid.UUID     // run identifier
	Layout       ncbi.Layout   // paths used by the run
	Taxonomy     ncbi.Taxonomy // metadata of the downloaded assembly
	Summary      fasta.Summary // consolidated sequence files
	CommandError error         // error raised by user commands, if any
	Kept         bool          // true if the working directory was left in place
}

// Pipeline performs the stages of a run in strict sequence. Every stage up to
// and including consolidation aborts the run on failure, leaving any data in
// place. Failures of user commands are reported and the run continues to
// cleanup.
type Pipeline struct {
	// optional journal in which the run is recorded
	Journal *journal.Journal

	config   config.Config
	layout   ncbi.Layout
	client   *ncbi.Client
	executor commands.Executor
	console  *Console
}

// creates a pipeline for the given configuration, running external programs
// with runner and narrating to stdout/stderr
func New(conf config.Config, runner tools.Runner, stdout, stderr io.Writer) *Pipeline {
	return &Pipeline{
		config: conf,
		layout: ncbi.Layout{OutputDir: conf.OutputDir, Accession: conf.Accession},
		client: ncbi.NewClient(runner, conf.Tools.Datasets, conf.Tools.Dataformat, conf.Tools.Unzip),
		executor: commands.Executor{
			Runner:      runner,
			Shell:       conf.Tools.Shell,
			Interpreter: conf.Tools.Interpreter,
		},
		console: NewConsole(stdout, stderr),
	}
}

// returns the NCBI client, e.g. to control progress bars
func (p *Pipeline) Client() *ncbi.Client {
	return p.client
}

// Run performs the run, returning a summary and an error if any stage before
// user command execution (or cleanup) failed.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	result := Result{Id: uuid.New(), Layout: p.layout}

	// configuration errors end the run before anything else happens
	shellTemplate, codeTemplate, err := p.resolveOptions()
	if err != nil {
		return result, err
	}

	start := time.Now()
	slog.Info(fmt.Sprintf("Run %s: processing %s", result.Id.String(), p.layout.Accession))
	err = p.run(ctx, shellTemplate, codeTemplate, &result)
	p.record(result, start, err)
	if err != nil {
		slog.Error(fmt.Sprintf("Run %s: %s", result.Id.String(), err.Error()))
	} else {
		slog.Info(fmt.Sprintf("Run %s: finished in %s", result.Id.String(),
			time.Since(start).Round(time.Millisecond)))
	}
	return result, err
}

// validates options, reads templates and creates the output folder
func (p *Pipeline) resolveOptions() (string, string, error) {
	if err := p.config.Validate(); err != nil {
		return "", "", err
	}
	shellTemplate, err := p.config.ShellTemplate()
	if err != nil {
		return "", "", err
	}
	codeTemplate, err := p.config.CodeTemplate()
	if err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(p.config.OutputDir, 0755); err != nil {
		return "", "", err
	}
	return shellTemplate, codeTemplate, nil
}

func (p *Pipeline) run(ctx context.Context, shellTemplate, codeTemplate string, result *Result) error {
	options, err := p.config.YAML()
	if err != nil {
		return err
	}
	p.console.Stage("Options accepted: ")
	p.console.Printf("%s", options)

	if err := p.fetchMetadata(ctx, result); err != nil {
		return err
	}
	if err := p.hydrate(ctx); err != nil {
		return err
	}
	if err := p.consolidate(result); err != nil {
		return err
	}
	if err := p.describe(result); err != nil {
		return err
	}

	result.CommandError = p.runCommands(ctx, shellTemplate, codeTemplate, result)

	return p.cleanup(result)
}

// downloads the dehydrated package, extracts taxonomy, and unpacks it
func (p *Pipeline) fetchMetadata(ctx context.Context, result *Result) error {
	archive := p.layout.ArchiveFile()

	p.console.Stage("Download metadata (dehydrated)")
	if err := p.client.DownloadDehydrated(ctx, p.layout.Accession, archive); err != nil {
		return err
	}

	p.console.Stage("Reformatting metadata")
	taxonomy, err := p.client.Taxonomy(ctx, archive)
	if err != nil {
		return err
	}
	result.Taxonomy = taxonomy
	p.console.Printf("accession: %s", p.layout.Accession)
	p.console.Printf("taxid:     %s", taxonomy.TaxId)
	p.console.Printf("species:   %s", taxonomy.Species)
	p.console.Printf("mspecies:  %s", taxonomy.MaskedSpecies())

	p.console.Stage("Unzipping metadata, removing zipfile")
	p.console.Printf("removing %s", archive)
	return p.client.Unpack(ctx, archive, p.layout.DataDir())
}

func (p *Pipeline) hydrate(ctx context.Context) error {
	p.console.Break()
	p.console.Stage("Downloading genome data")
	return p.client.Rehydrate(ctx, p.layout.DataDir(), p.layout.Accession, p.config.Workers)
}

// concatenates the sequence files into the genome file and removes them
func (p *Pipeline) consolidate(result *Result) error {
	p.console.Break()
	p.console.Stage("Compacting chromosomes into a single fasta")
	genomeFile := p.layout.GenomeFile()
	summary, err := fasta.Concatenate(p.layout.SequencePattern(), genomeFile)
	if err != nil {
		return err
	}
	result.Summary = summary
	p.console.Printf("Concatenating %d chromosomes or contigs (%s)\n to genomefile: %s",
		summary.NumFiles, humanize.Bytes(uint64(summary.Bytes)), genomeFile)

	p.console.Stage("Removing chromosomes fasta files")
	removed, err := fasta.RemoveMatches(p.layout.SequencePattern())
	if err != nil {
		return err
	}
	slog.Debug(fmt.Sprintf("Removed %d sequence files", removed))
	return nil
}

// writes a data package descriptor for the genome file
func (p *Pipeline) describe(result *Result) error {
	pkg, err := frictionless.NewGenomePackage(p.layout.Accession, p.layout.DataDir(),
		p.layout.GenomeFile(), frictionless.Taxonomy{
			TaxId:   result.Taxonomy.TaxId,
			Species: result.Taxonomy.Species,
		})
	if err != nil {
		return err
	}
	return frictionless.Save(pkg, p.layout.ManifestFile())
}

// expands and runs the user's templates; any error is reported and returned
// without ending the run
func (p *Pipeline) runCommands(ctx context.Context, shellTemplate, codeTemplate string, result *Result) error {
	if shellTemplate == "" && codeTemplate == "" {
		p.console.Break()
		p.console.Stage("<No commands to be executed>")
		return nil
	}

	placeholders := commands.Placeholders{
		Accession:     p.layout.Accession,
		GenomeFile:    p.layout.GenomeFile(),
		TaxId:         result.Taxonomy.TaxId,
		Species:       result.Taxonomy.Species,
		MaskedSpecies: result.Taxonomy.MaskedSpecies(),
	}
	err := p.runTemplates(ctx, shellTemplate, codeTemplate, placeholders)
	if err != nil {
		p.console.Error(err)
		slog.Error(fmt.Sprintf("Run %s: user command failed: %s", result.Id.String(), err.Error()))
	}
	return err
}

// the shell template runs first; if it fails, the code template is skipped
func (p *Pipeline) runTemplates(ctx context.Context, shellTemplate, codeTemplate string,
	placeholders commands.Placeholders) error {
	if shellTemplate != "" {
		p.console.Break()
		p.console.Stage("Running bash command")
		command, err := commands.Expand(shellTemplate, placeholders)
		if err != nil {
			return err
		}
		p.console.Printf("%s", command)
		if err := p.executor.RunShellTemplate(ctx, command, p.config.UseShell); err != nil {
			return err
		}
	}
	if codeTemplate != "" {
		p.console.Break()
		p.console.Stage("Running python command")
		code, err := commands.Expand(codeTemplate, placeholders)
		if err != nil {
			return err
		}
		p.console.Printf("%s", code)
		if err := p.executor.RunCodeTemplate(ctx, code); err != nil {
			return err
		}
	}
	return nil
}

// removes the working directory unless asked to keep it
func (p *Pipeline) cleanup(result *Result) error {
	dataDir := p.layout.DataDir()
	p.console.Break()
	if p.config.Keep {
		p.console.Stage("Leaving data in place")
		p.console.Printf("check %s", dataDir)
		result.Kept = true
		return nil
	}
	p.console.Stage("Cleaning up all data")
	p.console.Printf("removing %s", dataDir)
	return os.RemoveAll(dataDir)
}

// adds the run to the journal, if there is one
func (p *Pipeline) record(result Result, start time.Time, runErr error) {
	if !p.Journal.IsOpen() {
		return
	}
	record := journal.Record{
		Id:         result.Id,
		Accession:  p.layout.Accession,
		TaxId:      result.Taxonomy.TaxId,
		Species:    result.Taxonomy.Species,
		GenomeFile: p.layout.GenomeFile(),
		NumFiles:   result.Summary.NumFiles,
		Bytes:      result.Summary.Bytes,
		Kept:       result.Kept,
		StartTime:  start,
		StopTime:   time.Now(),
		Status:     "succeeded",
	}
	if runErr != nil {
		record.Status = "failed"
		record.Message = runErr.Error()
	} else if result.CommandError != nil {
		record.Message = result.CommandError.Error()
	}
	if err := p.Journal.RecordRun(record); err != nil {
		slog.Error(fmt.Sprintf("Couldn't record run %s: %s", result.Id.String(), err.Error()))
	}
}
