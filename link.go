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

import (
	"fmt"
	"strings"
)

// Link is a hyper-edge: an ordered path of at least two anchors plus the
// bundle of tags that traversed it (§3).
type Link struct {
	Path []*Anchor
	Tags []Tag
}

// NewLink builds a direct 2-anchor link and registers it at both endpoints.
func NewLink(front, back *Anchor) *Link {
	l := &Link{Path: []*Anchor{front, back}}
	front.addLink(l)
	if back != front {
		back.addLink(l)
	}
	return l
}

// Front returns the first anchor of the path.
func (l *Link) Front() *Anchor { return l.Path[0] }

// Back returns the last anchor of the path.
func (l *Link) Back() *Anchor { return l.Path[len(l.Path)-1] }

// IsLoop reports whether the link starts and ends on the same anchor.
func (l *Link) IsLoop() bool { return l.Front() == l.Back() }

// AddTag appends t to the link's tag bundle.
func (l *Link) AddTag(t Tag) {
	l.Tags = append(l.Tags, t)
}

// StrandTowards is get_strand_for_matching_tags from anchor.cpp/link.cpp:
// 0 for a loop (undetermined), -1 if anchor is the back endpoint, +1 if
// anchor is the front endpoint.
func (l *Link) StrandTowards(anchor *Anchor) Strand {
	if l.Front() == l.Back() {
		return StrandUndetermined
	}
	if l.Back() == anchor {
		return StrandReverse
	}
	if l.Front() == anchor {
		return StrandForward
	}
	return StrandUndetermined
}

// Reverse flips the anchor path and negates every tag's strand (§3).
func (l *Link) Reverse() {
	for i, j := 0, len(l.Path)-1; i < j; i, j = i+1, j-1 {
		l.Path[i], l.Path[j] = l.Path[j], l.Path[i]
	}
	for i := range l.Tags {
		l.Tags[i].Strand = -l.Tags[i].Strand
	}
}

// pathEqualsReverse reports whether path reads the same forward and
// backward (used for palindrome detection, §4.2).
func pathEqualsReverse(path []*Anchor) bool {
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		if path[i] != path[j] {
			return false
		}
	}
	return true
}

// GetMatchingTags implements §4.1's matching relation between this link's
// tags (L1) and other's tags (L2) under the directional flags s1, s2.
// A flag of 0 means "try both signs", recursively, exactly mirroring
// link.cpp:get_matching_tags's nested strand1==0/strand2==0 branches.
//
// When l == other (self-matching, used by palindrome detection) the
// identity pair (i == j) is skipped, per §4.1.
//
// matches[i] is the index into other.Tags matched by l.Tags[i], or -1 if
// unmatched. A nil return means no valid matching exists at all: a
// wrong-strand geometry was hit, two tags of L2 were claimed by the same
// L1 tag, or, in strict mode only, some tag of L2 or of L1 went
// unmatched — so strict mode only ever returns a bijection, which is what
// link.cpp:try_to_concatenate_with's constraints need.
func (l *Link) GetMatchingTags(other *Link, s1, s2 Strand, allowPartial bool) []int {
	if s1 == StrandUndetermined {
		if m := l.GetMatchingTags(other, StrandForward, s2, allowPartial); m != nil {
			return m
		}
		return l.GetMatchingTags(other, StrandReverse, s2, allowPartial)
	}
	if s2 == StrandUndetermined {
		if m := l.GetMatchingTags(other, s1, StrandForward, allowPartial); m != nil {
			return m
		}
		return l.GetMatchingTags(other, s1, StrandReverse, allowPartial)
	}

	thisMatch := make([]int, len(l.Tags))
	otherMatch := make([]int, len(other.Tags))
	for i := range thisMatch {
		thisMatch[i] = -1
	}
	for j := range otherMatch {
		otherMatch[j] = -1
	}

	for i := range l.Tags {
		t1 := l.Tags[i]
		for j := range other.Tags {
			if l == other && i == j {
				continue
			}
			t2 := other.Tags[j]
			if !t1.sameChromosome(t2) || !t1.overlapsStrictly(t2) {
				continue
			}

			str1 := s1 * t1.Strand
			str2 := s2 * t2.Strand
			switch {
			case str1 == 1 && str2 == 1:
				if !(t1.Start < t2.Start && t1.End < t2.End) {
					continue
				}
			case str1 == -1 && str2 == -1:
				if !(t2.Start < t1.Start && t2.End < t1.End) {
					continue
				}
			case str1 != 0 && str2 != 0:
				return nil
			}

			if otherMatch[j] != -1 {
				continue
			}
			otherMatch[j] = i
			thisMatch[i] = j
		}
	}

	for j := range otherMatch {
		if otherMatch[j] == -1 && !allowPartial {
			return nil
		}
	}
	for a := 0; a < len(otherMatch); a++ {
		for b := a + 1; b < len(otherMatch); b++ {
			if otherMatch[a] != -1 && otherMatch[a] == otherMatch[b] {
				return nil
			}
		}
	}

	// Unmatched tags on L1 cause failure in strict mode only.
	// Simplify/IsBridge/AssimilateSmallInsertions rely on the partial
	// per-tag result to classify flanked vs. blocking tags, so permissive
	// mode returns it with -1 for each unmatched L1 tag, matching
	// link.cpp:try_to_concatenate_with's post-match completeness check on
	// this_tag_links_to.
	if !allowPartial {
		for i := range thisMatch {
			if thisMatch[i] == -1 {
				return nil
			}
		}
	}

	return thisMatch
}

// TryToConcatenateWith attempts to merge other into l along the shared
// anchor implied by s1/s2, per §4.2. On success other is fully consumed
// (deregistered from the graph) and l absorbs its path and tags; returns
// true iff the concatenation happened.
func (l *Link) TryToConcatenateWith(other *Link, s1, s2 Strand) bool {
	if l == other {
		return false
	}
	if s1 == StrandUndetermined {
		if l.TryToConcatenateWith(other, StrandForward, s2) {
			return true
		}
		return l.TryToConcatenateWith(other, StrandReverse, s2)
	}
	if s2 == StrandUndetermined {
		if l.TryToConcatenateWith(other, s1, StrandForward) {
			return true
		}
		return l.TryToConcatenateWith(other, s1, StrandReverse)
	}

	matches := l.GetMatchingTags(other, s1, s2, false)
	if matches == nil {
		return false
	}

	if s1 == StrandReverse {
		l.Reverse()
		// reversal flips strand-derived matches; recompute in the new frame.
		matches = l.GetMatchingTags(other, StrandForward, s2, false)
		if matches == nil {
			l.Reverse()
			return false
		}
	}
	if s2 == StrandReverse {
		other.Reverse()
	}

	mergedPath := make([]*Anchor, 0, len(l.Path)+len(other.Path)-1)
	mergedPath = append(mergedPath, l.Path...)
	mergedPath = append(mergedPath, other.Path[1:]...)
	palindrome := pathEqualsReverse(mergedPath)

	for i, j := range matches {
		if j < 0 {
			continue
		}
		t1 := l.Tags[i]
		t2 := other.Tags[j]
		if t2.Start < t1.Start {
			t1.Start = t2.Start
		}
		if t2.End > t1.End {
			t1.End = t2.End
		}
		if t1.Strand == StrandUndetermined {
			t1.Strand = t2.Strand
		}
		l.Tags[i] = t1
	}

	if palindrome {
		for i := range l.Tags {
			l.Tags[i].Strand = StrandUndetermined
		}
	}

	middleAnchor := other.Front()
	newBack := other.Back()

	middleAnchor.removeLink(other)
	if newBack != middleAnchor {
		newBack.removeLink(other)
	}
	// l's old back (== middleAnchor, the shared anchor) is no longer one
	// of its endpoints once the path extends past it; deregister l there
	// too, unless l was itself a loop (front == middleAnchor as well).
	if l.Front() != middleAnchor {
		middleAnchor.removeLink(l)
	}
	if newBack != middleAnchor {
		newBack.addLink(l)
	}

	l.Path = mergedPath

	return true
}

// IsAnAlternativePathOf reports unordered-endpoint-pair equality (§4.3):
// {l.Front(), l.Back()} == {other.Front(), other.Back()}.
func (l *Link) IsAnAlternativePathOf(other *Link) bool {
	lf, lb := l.Front(), l.Back()
	of, ob := other.Front(), other.Back()
	return (lf == of && lb == ob) || (lf == ob && lb == of)
}

// GetNumOfMismatches is the greedy LCS-style path-distance metric of §4.3
// (deliberately not true Levenshtein distance; preserved as-is per §9).
func (l *Link) GetNumOfMismatches(other *Link) int {
	a, b := l.Path, other.Path
	reversed := a[0] != b[0]
	if reversed {
		b = reverseAnchors(b)
	}

	i, j := 0, 0
	mismatches := 0
	for i < len(a) && j < len(b) {
		if a[i] == b[j] {
			i++
			j++
			continue
		}
		// greedy: try to resync by skipping ahead in a to the next
		// occurrence of b[j]; only if there is none, skip ahead in b to the
		// next occurrence of a[i]. One mismatch is charged per resync,
		// whatever the number of anchors skipped, and the nearer of the two
		// resync points is not preferred over a's.
		mismatches++
		found := false
		for k := 1; i+k < len(a); k++ {
			if a[i+k] == b[j] {
				i += k
				found = true
				break
			}
		}
		if found {
			continue
		}
		for k := 1; j+k < len(b); k++ {
			if a[i] == b[j+k] {
				j += k
				found = true
				break
			}
		}
		if found {
			continue
		}
		i++
		j++
	}
	mismatches += (len(a) - i) + (len(b) - j)
	return mismatches
}

func reverseAnchors(path []*Anchor) []*Anchor {
	out := make([]*Anchor, len(path))
	for i, a := range path {
		out[len(path)-1-i] = a
	}
	return out
}

// Merge absorbs other's anchor path and tags into l using the greedy
// path-weave described in §4.3, then deregisters other from the graph.
// Only valid when l.IsAnAlternativePathOf(other).
func (l *Link) Merge(other *Link) {
	b := other.Path
	if l.Front() != other.Front() {
		b = reverseAnchors(b)
		for i := range other.Tags {
			other.Tags[i] = other.Tags[i].reversed()
		}
	}

	merged := make([]*Anchor, 0, len(l.Path)+len(b))
	i, j := 0, 0
	// occursLater reports whether x appears in l.Path after position i.
	occursLater := func(x *Anchor) bool {
		for k := i + 1; k < len(l.Path); k++ {
			if l.Path[k] == x {
				return true
			}
		}
		return false
	}
	for i < len(l.Path) || j < len(b) {
		switch {
		case i < len(l.Path) && j < len(b) && l.Path[i] == b[j]:
			merged = append(merged, l.Path[i])
			i++
			j++
		case i < len(l.Path) && (j >= len(b) || occursLater(b[j])):
			merged = append(merged, l.Path[i])
			i++
		default:
			merged = append(merged, b[j])
			j++
		}
	}
	l.Path = merged
	l.Tags = append(l.Tags, other.Tags...)

	front, back := other.Front(), other.Back()
	front.removeLink(other)
	if back != front {
		back.removeLink(other)
	}
}

// split partitions l's tags according to keep (true = stays on l), moving
// the rest onto a freshly created sibling link sharing l's anchor path.
// Returns the new link, or an error if either resulting tag set would be
// empty (§4.10's "never leave a link with zero tags").
func (l *Link) split(keep []bool) (*Link, error) {
	var kept, moved []Tag
	for i, t := range l.Tags {
		if keep[i] {
			kept = append(kept, t)
		} else {
			moved = append(moved, t)
		}
	}
	if len(kept) == 0 || len(moved) == 0 {
		return nil, ErrEmptyLink
	}

	newLink := &Link{Path: append([]*Anchor(nil), l.Path...), Tags: moved}
	l.Tags = kept

	front, back := l.Front(), l.Back()
	front.addLink(newLink)
	if back != front {
		back.addLink(newLink)
	}
	return newLink, nil
}

// IsValid implements §4.10: a link is valid iff its path has at least
// minAnchors anchors, at least minRegions tags, and no tag shorter than
// minLength.
func (l *Link) IsValid(minAnchors, minRegions, minLength int) bool {
	if len(l.Path) < minAnchors {
		return false
	}
	if len(l.Tags) < minRegions {
		return false
	}
	return l.GetShortestRegionLength() >= minLength
}

// GetShortestRegionLength returns the length of l's shortest tag.
func (l *Link) GetShortestRegionLength() int {
	shortest := -1
	for _, t := range l.Tags {
		if shortest < 0 || t.Length() < shortest {
			shortest = t.Length()
		}
	}
	if shortest < 0 {
		return 0
	}
	return shortest
}

// GetLongestRegionLength returns the length of l's longest tag.
func (l *Link) GetLongestRegionLength() int {
	longest := 0
	for _, t := range l.Tags {
		if t.Length() > longest {
			longest = t.Length()
		}
	}
	return longest
}

// IsBridge implements §4.10: l is a bridge iff it is invalid, not a loop,
// has at least two tags, and sits strictly between two valid non-loop
// neighbours with which it has a strict partial match on each side.
func (l *Link) IsBridge(front, back *Link, minAnchors, minRegions, minLength int) bool {
	if l.IsValid(minAnchors, minRegions, minLength) {
		return false
	}
	if l.IsLoop() {
		return false
	}
	if len(l.Tags) < 2 {
		return false
	}
	if front == nil || back == nil {
		return false
	}
	if front.IsLoop() || back.IsLoop() {
		return false
	}
	if !front.IsValid(minAnchors, minRegions, minLength) || !back.IsValid(minAnchors, minRegions, minLength) {
		return false
	}
	fStrand := front.StrandTowards(l.Front())
	bStrand := back.StrandTowards(l.Back())
	if l.GetMatchingTags(front, l.StrandTowards(l.Front())*-1, fStrand, true) == nil {
		return false
	}
	if l.GetMatchingTags(back, l.StrandTowards(l.Back()), bStrand, true) == nil {
		return false
	}
	return true
}

func (l *Link) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Link %s -> %s (%d anchors, %d tags)\n", l.Front().ID, l.Back().ID, len(l.Path), len(l.Tags))
	for _, t := range l.Tags {
		fmt.Fprintf(&b, "  %s\n", t)
	}
	return b.String()
}
