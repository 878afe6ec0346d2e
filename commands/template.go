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


// Package commands expands and runs user-supplied command templates.
package commands

import (
	"strings"
)

// Placeholders holds the values substituted into command templates.
type Placeholders struct {
	Accession     string // {accession}
	GenomeFile    string // {genomefile}
	TaxId         string // {taxid}
	Species       string // {species}
	MaskedSpecies string // {mspecies}
}

// returns a map of placeholder names to values
func (p Placeholders) Values() map[string]string {
	return map[string]string{
		"accession":  p.Accession,
		"genomefile": p.GenomeFile,
		"taxid":      p.TaxId,
		"species":    p.Species,
		"mspecies":   p.MaskedSpecies,
	}
}

// Expand replaces every {name} in template with the corresponding placeholder
// value. "{{" and "}}" produce literal braces. A name that isn't a placeholder
// yields an UnknownPlaceholderError, and an unpaired brace a
// TemplateSyntaxError.
func Expand(template string, placeholders Placeholders) (string, error) {
	values := placeholders.Values()
	var b strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", &TemplateSyntaxError{Template: template, Position: i, Message: "unterminated '{'"}
			}
			name := template[i+1 : i+1+end]
			value, found := values[name]
			if !found {
				return "", &UnknownPlaceholderError{Name: name}
			}
			b.WriteString(value)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			return "", &TemplateSyntaxError{Template: template, Position: i, Message: "single '}'"}
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
