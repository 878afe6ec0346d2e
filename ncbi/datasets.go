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


package ncbi

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"github.com/kbase/singlegenome/tools"
)

// Client invokes the datasets, dataformat and unzip programs.
type Client struct {
	// runs external programs
	Runner tools.Runner
	// program names or paths
	Datasets, Dataformat, Unzip string
	// if false, rehydration is asked not to draw a progress bar
	ProgressBar bool
}

// creates a Client using the given runner and program names; progress bars
// are enabled only when standard output is a terminal
func NewClient(runner tools.Runner, datasets, dataformat, unzip string) *Client {
	return &Client{
		Runner:      runner,
		Datasets:    datasets,
		Dataformat:  dataformat,
		Unzip:       unzip,
		ProgressBar: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// downloads the dehydrated package for the given accession into archive,
// excluding everything but the genomic sequence references
func (c *Client) DownloadDehydrated(ctx context.Context, accession, archive string) error {
	return c.Runner.Run(ctx, tools.Command{
		Name: c.Datasets,
		Args: []string{
			"download", "genome", "accession", accession,
			"--reference", "--dehydrated",
			"--exclude-genomic-cds", "--exclude-gff3", "--exclude-protein", "--exclude-rna",
			"--filename", archive,
		},
	})
}

// extracts the taxonomy ID and organism name from the given package
func (c *Client) Taxonomy(ctx context.Context, archive string) (Taxonomy, error) {
	out, err := c.Runner.Output(ctx, tools.Command{
		Name: c.Dataformat,
		Args: []string{
			"tsv", "genome",
			"--package", archive,
			"--fields", "tax-id,organism-name",
		},
	})
	if err != nil {
		return Taxonomy{}, err
	}
	return ParseTaxonomy(out)
}

// extracts the given package into dir, then removes the package
func (c *Client) Unpack(ctx context.Context, archive, dir string) error {
	err := c.Runner.Run(ctx, tools.Command{
		Name: c.Unzip,
		Args: []string{"-o", "-d", dir, archive},
	})
	if err != nil {
		return err
	}
	slog.Debug(fmt.Sprintf("Removing %s", archive))
	return os.Remove(archive)
}

// fetches the sequence files referenced by the unpacked package in dir, with
// at most workers concurrent downloads
func (c *Client) Rehydrate(ctx context.Context, dir, accession string, workers int) error {
	args := []string{
		"rehydrate",
		"--directory", dir,
		"--match", fmt.Sprintf("/%s/", accession),
		"--max-workers", strconv.Itoa(workers),
	}
	if !c.ProgressBar {
		args = append(args, "--no-progressbar")
	}
	return c.Runner.Run(ctx, tools.Command{Name: c.Datasets, Args: args})
}
