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


package pipeline

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Console narrates a run: green banners at stage boundaries, plain progress
// lines, and red banners for errors.
type Console struct {
	out, err      io.Writer
	banner, alarm *color.Color
}

// creates a Console writing progress to out and errors to err
func NewConsole(out, err io.Writer) *Console {
	return &Console{
		out:    out,
		err:    err,
		banner: color.New(color.FgGreen),
		alarm:  color.New(color.FgRed, color.Bold),
	}
}

// announces the start of a stage
func (c *Console) Stage(format string, args ...any) {
	c.banner.Fprintf(c.out, "*** "+format+"\n", args...)
}

// writes a line of progress information
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// writes an empty line
func (c *Console) Break() {
	fmt.Fprintln(c.out)
}

// reports an error that the run survives
func (c *Console) Error(err error) {
	fmt.Fprintln(c.err)
	c.alarm.Fprintln(c.err, "*** an ERROR occurred !")
	reportChain(c.err, err)
}

// reports an error that ends the run
func (c *Console) Fatal(err error) {
	c.alarm.Fprintln(c.err, "*** ERROR, aborting")
	reportChain(c.err, err)
}

// writes an error followed by each error it wraps
func reportChain(w io.Writer, err error) {
	fmt.Fprintf(w, "%T: %s\n", err, err.Error())
	for depth := 1; ; depth++ {
		wrapper, ok := err.(interface{ Unwrap() error })
		if !ok || wrapper.Unwrap() == nil {
			return
		}
		err = wrapper.Unwrap()
		fmt.Fprintf(w, "%*scaused by %T: %s\n", 2*depth, "", err, err.Error())
	}
}
