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
	"regexp"
	"strings"
)

// Taxonomy holds the metadata extracted from a dehydrated package.
type Taxonomy struct {
	TaxId   string // NCBI taxonomy identifier
	Species string // organism name, e.g. "Drosophila melanogaster"
}

// returns the species name in a form that is safe to use in file names
func (t Taxonomy) MaskedSpecies() string {
	return Sanitize(t.Species)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Sanitize replaces every character that isn't a letter, digit, '.', '_' or
// '-' with an underscore. Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	return unsafeChars.ReplaceAllString(s, "_")
}

// ParseTaxonomy extracts the taxonomy ID and organism name from dataformat's
// tab-separated output. The first line is a header; the second must hold
// exactly two fields.
func ParseTaxonomy(text string) (Taxonomy, error) {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return Taxonomy{}, &MalformedMetadataError{
			Text:    text,
			Message: "expected a header line followed by a data line",
		}
	}
	fields := strings.Split(strings.TrimSuffix(lines[1], "\r"), "\t")
	if len(fields) != 2 {
		return Taxonomy{}, &MalformedMetadataError{
			Text:    text,
			Message: "expected 2 tab-separated fields on line 2",
		}
	}
	return Taxonomy{TaxId: fields[0], Species: fields[1]}, nil
}
