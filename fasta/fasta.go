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


// Package fasta gathers per-chromosome sequence files into a single file. The
// files are treated as opaque bytes; no records are parsed.
package fasta

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Summary describes a completed concatenation.
type Summary struct {
	NumFiles int   // number of source files appended
	Bytes    int64 // total number of bytes written
}

// Concatenate appends the contents of every file matching pattern, in the
// order the glob enumerates them, to dest, which is created or truncated.
func Concatenate(pattern, dest string) (Summary, error) {
	var summary Summary
	sources, err := filepath.Glob(pattern)
	if err != nil {
		return summary, &PatternError{Pattern: pattern, Err: err}
	}

	out, err := os.Create(dest)
	if err != nil {
		return summary, err
	}
	for _, source := range sources {
		if source == dest {
			continue
		}
		slog.Debug(fmt.Sprintf("Appending %s to %s", source, dest))
		n, err := appendFile(out, source)
		summary.Bytes += n
		if err != nil {
			out.Close()
			return summary, err
		}
		summary.NumFiles++
	}
	if err := out.Close(); err != nil {
		return summary, err
	}
	return summary, nil
}

func appendFile(out io.Writer, source string) (int64, error) {
	in, err := os.Open(source)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	return io.Copy(out, in)
}

// RemoveMatches deletes every file matching pattern, returning the number of
// files removed.
func RemoveMatches(pattern string) (int, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, &PatternError{Pattern: pattern, Err: err}
	}
	for i, match := range matches {
		if err := os.Remove(match); err != nil {
			return i, err
		}
	}
	return len(matches), nil
}
