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


// Package ncbi wraps the NCBI datasets command-line tools and describes the
// files they leave behind.
package ncbi

import (
	"path/filepath"
)

// Layout computes the paths used while processing one accession. Every path
// depends only on the output folder and the accession.
type Layout struct {
	OutputDir string
	Accession string
}

// the per-accession working directory
func (l Layout) DataDir() string {
	return filepath.Join(l.OutputDir, "dataset."+l.Accession)
}

// the dehydrated package downloaded next to the working directory
func (l Layout) ArchiveFile() string {
	return l.DataDir() + ".zip"
}

// the directory into which rehydration places sequence files
func (l Layout) SequenceDir() string {
	return filepath.Join(l.DataDir(), "ncbi_dataset", "data", l.Accession)
}

// glob pattern matching the per-chromosome sequence files
func (l Layout) SequencePattern() string {
	return filepath.Join(l.SequenceDir(), "*fna")
}

// the consolidated genome file
func (l Layout) GenomeFile() string {
	return filepath.Join(l.SequenceDir(), l.Accession+".fasta")
}

// the Frictionless descriptor for the consolidated genome file
func (l Layout) ManifestFile() string {
	return filepath.Join(l.DataDir(), "datapackage.json")
}
