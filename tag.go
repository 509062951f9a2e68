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

// Strand is the orientation of a Tag relative to the Link's anchor path,
// or of one Link's path relative to a shared anchor. +1 reads front to
// back, -1 reads back to front, 0 is undetermined (palindromic/self-loop,
// or "try both" when used as a matching orientation flag).
type Strand int8

const (
	StrandReverse      Strand = -1
	StrandUndetermined Strand = 0
	StrandForward      Strand = 1
)

func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "1"
	case StrandReverse:
		return "-1"
	default:
		return "0"
	}
}

// Tag is one genomic region that traverses a Link's anchor path, §3.
type Tag struct {
	Species Handle
	Chr     Handle
	Start   int
	End     int
	Strand  Strand
}

// Length returns the inclusive interval length, end-start+1.
func (t Tag) Length() int {
	return t.End - t.Start + 1
}

func (t Tag) String() string {
	return fmt.Sprintf("%s:%s:%d:%d [%s] l=%d", *t.Species, *t.Chr, t.Start, t.End, t.Strand, t.Length())
}

// sameChromosome reports whether t and o are on the same (species,
// chromosome), using pointer-identity comparisons made possible by
// interning (§3 "enabling O(1) equality tests").
func (t Tag) sameChromosome(o Tag) bool {
	return t.Species == o.Species && t.Chr == o.Chr
}

// overlapsStrictly is the interval-overlap test in §4.1: a.start < b.end
// && b.start < a.end.
func (t Tag) overlapsStrictly(o Tag) bool {
	return t.Start < o.End && o.Start < t.End
}

// reversed produces the tag as seen when its Link is reversed: the
// interval is invariant, only strand flips (§3 "reversing a link negates
// every tag strand").
func (t Tag) reversed() Tag {
	t.Strand = -t.Strand
	return t
}
