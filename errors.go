// Copyright © 2018-2020 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package enredo

import "fmt"

// ErrEmptyLink is returned when a rewrite operation would leave a link
// with zero tags. The original C++ treats this as a hard abort; here it
// surfaces as a GraphInvariantError so the caller decides how to fail.
var ErrEmptyLink = NewGraphInvariantError("would leave an empty link")

// ErrBadRow means an input row could not be parsed (schema violation).
type ErrBadRow struct {
	Line uint64
	Text string
	Err  error
}

func (e *ErrBadRow) Error() string {
	return fmt.Sprintf("enredo: malformed row at line %d (%q): %s", e.Line, e.Text, e.Err)
}

func (e *ErrBadRow) Unwrap() error {
	return e.Err
}

// GraphInvariantError marks a fatal bug in the rewrite engine: the graph
// reached a state the algorithm's invariants say is unreachable. Per §7,
// these are never recovered from — they are reported and the process
// aborts, but library code itself must never call os.Exit.
type GraphInvariantError struct {
	Msg string
}

// NewGraphInvariantError builds a GraphInvariantError with the given message.
func NewGraphInvariantError(msg string) *GraphInvariantError {
	return &GraphInvariantError{Msg: msg}
}

func (e *GraphInvariantError) Error() string {
	return "enredo: invariant violation: " + e.Msg
}
