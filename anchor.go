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

// Anchor is a vertex of the graph: one genomic breakpoint shared by every
// Link incident on it (§3).
type Anchor struct {
	ID      string
	Num     int // occurrence counter, bumped on every repeat lookup (§3)
	Species map[Handle]struct{}
	Links   []*Link
}

// newAnchor creates an anchor with the given id, first-seen species.
func newAnchor(id string, species Handle) *Anchor {
	a := &Anchor{
		ID:      id,
		Num:     1,
		Species: make(map[Handle]struct{}),
	}
	if species != nil {
		a.Species[species] = struct{}{}
	}
	return a
}

// addLink appends l to a's incidence list once. NewLink, getDirectLink and
// split call it once per distinct endpoint, so they register a self-loop
// (l.Front()==l.Back()==a) only once.
func (a *Anchor) addLink(l *Link) {
	a.Links = append(a.Links, l)
}

// removeLink deregisters every occurrence of l from a's incidence list.
func (a *Anchor) removeLink(l *Link) {
	out := a.Links[:0]
	for _, x := range a.Links {
		if x != l {
			out = append(out, x)
		}
	}
	a.Links = out
}

// replaceLink swaps all occurrences of old for next in a's incidence list.
// No pass in this package calls it.
func (a *Anchor) replaceLink(old, next *Link) {
	for i, x := range a.Links {
		if x == old {
			a.Links[i] = next
		}
	}
}

// getDirectLink returns the existing 2-anchor Link directly joining a and
// other, creating one if absent. Grounded on anchor.cpp:get_direct_Link:
// the new link's path is [other, a] — other is front, a is back — matching
// the loader's [previous, current] ordering.
func (a *Anchor) getDirectLink(other *Anchor) *Link {
	for _, l := range a.Links {
		if len(l.Path) == 2 && ((l.Path[0] == a && l.Path[1] == other) || (l.Path[0] == other && l.Path[1] == a)) {
			return l
		}
	}
	l := &Link{Path: []*Anchor{other, a}}
	a.addLink(l)
	if other != a {
		other.addLink(l)
	}
	return l
}

// minimize repeatedly concatenates pairs of links incident on a until no
// pair can be merged further, restarting the scan from the top on every
// success (§5's per-anchor fixpoint). Grounded on anchor.cpp:Anchor::minimize,
// including the exact strand-flag derivation for each ordered pair.
func (a *Anchor) minimize() int {
	merges := 0
	for {
		merged := false
	outer:
		for i := 0; i < len(a.Links); i++ {
			link1 := a.Links[i]
			for j := 0; j <= i; j++ {
				if j >= len(a.Links) {
					break
				}
				link2 := a.Links[j]
				if link1 == link2 {
					continue
				}

				var strand1, strand2 Strand
				if link1.Front() == link1.Back() {
					strand1 = StrandUndetermined
				} else if link1.Back() == a {
					strand1 = StrandForward
				} else {
					strand1 = StrandReverse
				}
				if link2.Front() == link2.Back() {
					strand2 = StrandUndetermined
				} else if link2.Back() == a {
					strand2 = StrandReverse
				} else {
					strand2 = StrandForward
				}

				if link1.TryToConcatenateWith(link2, strand1, strand2) {
					merges++
					merged = true
					break outer
				}
			}
		}
		if !merged {
			break
		}
	}
	return merges
}
