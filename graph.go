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
	"sort"

	"github.com/dustin/go-humanize"
	logging "github.com/shenwei356/go-logging"
	"github.com/twotwotwo/sorts"
)

var log = logging.MustGetLogger("enredo")

// Graph owns every Anchor plus the species/chromosome interning tables
// (§3). Links are reachable only through the anchors they touch.
type Graph struct {
	anchors  map[string]*Anchor
	species  *StringTable
	chrs     *StringTable
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		anchors: make(map[string]*Anchor),
		species: NewStringTable(),
		chrs:    NewStringTable(),
	}
}

// NumAnchors reports how many distinct anchors the graph holds.
func (g *Graph) NumAnchors() int { return len(g.anchors) }

// InternSpecies interns a species name.
func (g *Graph) InternSpecies(s string) Handle { return g.species.Intern(s) }

// InternChromosome interns a chromosome name.
func (g *Graph) InternChromosome(s string) Handle { return g.chrs.Intern(s) }

// GetAnchor returns the anchor with the given id, creating it if absent.
// A repeat lookup bumps Num and records the species, per anchor.cpp's
// Graph::get_Anchor.
func (g *Graph) GetAnchor(id string, species Handle) *Anchor {
	if a, ok := g.anchors[id]; ok {
		a.Num++
		if species != nil {
			a.Species[species] = struct{}{}
		}
		return a
	}
	a := newAnchor(id, species)
	g.anchors[id] = a
	return a
}

// sortedAnchorIDs returns every anchor id currently in the graph, sorted,
// giving every global pass a stable, reproducible traversal order (§5).
// Uses twotwotwo/sorts' parallel quicksort, a drop-in for sort.Sort that
// pays off once a run holds hundreds of thousands of anchors.
func (g *Graph) sortedAnchorIDs() []string {
	ids := make([]string, 0, len(g.anchors))
	for id := range g.anchors {
		ids = append(ids, id)
	}
	sorts.Quicksort(sort.StringSlice(ids))
	return ids
}

// Minimize runs one pass of local per-anchor minimization over every
// anchor, in stable id order (§5). Grounded on graph.cpp:Graph::minimize.
func (g *Graph) Minimize() int {
	total := 0
	for _, id := range g.sortedAnchorIDs() {
		a, ok := g.anchors[id]
		if !ok {
			continue
		}
		total += a.minimize()
	}
	log.Infof("minimize: %s merges", humanize.Comma(int64(total)))
	return total
}

// allLinks collects every distinct link in the graph, each exactly once,
// by walking anchors in stable order and deduplicating by pointer.
func (g *Graph) allLinks() []*Link {
	seen := make(map[*Link]struct{})
	var links []*Link
	for _, id := range g.sortedAnchorIDs() {
		a, ok := g.anchors[id]
		if !ok {
			continue
		}
		for _, l := range a.Links {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			links = append(links, l)
		}
	}
	return links
}

// MergeAlternativePaths implements §4.3: links sharing the same unordered
// endpoint pair are merged if their path-distance is within maxMismatches
// (0 = unlimited). Grounded on graph.cpp:Graph::merge_alternative_paths.
func (g *Graph) MergeAlternativePaths(maxMismatches int) int {
	merges := 0
	for _, id := range g.sortedAnchorIDs() {
		a, ok := g.anchors[id]
		if !ok {
			continue
		}
		for {
			merged := false
		scan:
			for i := 0; i < len(a.Links); i++ {
				for j := i + 1; j < len(a.Links); j++ {
					l1, l2 := a.Links[i], a.Links[j]
					if l1 == l2 || !l1.IsAnAlternativePathOf(l2) {
						continue
					}
					mismatches := l1.GetNumOfMismatches(l2)
					if maxMismatches > 0 && mismatches > maxMismatches {
						continue
					}
					l1.Merge(l2)
					merges++
					merged = true
					break scan
				}
			}
			if !merged {
				break
			}
		}
	}
	log.Infof("merge-alternative-paths: %s merges", humanize.Comma(int64(merges)))
	return merges
}

// neighboursOf returns the distinct links incident on anchor other than l
// itself.
func neighboursOf(anchor *Anchor, l *Link) []*Link {
	var out []*Link
	for _, x := range anchor.Links {
		if x != l {
			out = append(out, x)
		}
	}
	return out
}

// Simplify implements §4.4's non-aggressive bridge-splitting pass:
// grounded on graph.cpp:Graph::simplify. Only links with more than
// minRegions tags that fail the validity predicate (§4.10) are
// candidates. For each candidate, front/back neighbour sets are filtered
// to those with strictly fewer tags than the link itself and at least
// minRegions tags; a link whose flanked tags don't cover every tag, and
// which has zero "blocking" tags, gets split.
func (g *Graph) Simplify(minAnchors, minRegions, minLength int) int {
	splits := 0
	for _, l := range g.allLinks() {
		if len(l.Tags) <= minRegions || l.IsValid(minAnchors, minRegions, minLength) {
			continue
		}
		front, back := l.Front(), l.Back()
		var frontNeighbours, backNeighbours []*Link
		for _, n := range neighboursOf(front, l) {
			if len(n.Tags) < len(l.Tags) && len(n.Tags) >= minRegions {
				frontNeighbours = append(frontNeighbours, n)
			}
		}
		for _, n := range neighboursOf(back, l) {
			if len(n.Tags) < len(l.Tags) && len(n.Tags) >= minRegions {
				backNeighbours = append(backNeighbours, n)
			}
		}
		if len(frontNeighbours) == 0 && len(backNeighbours) == 0 {
			continue
		}

		flanked := make([]bool, len(l.Tags))
		blocking := 0
		anyFlanked := false
		for i, t := range l.Tags {
			matchesFront := false
			for _, n := range frontNeighbours {
				if tagMatchesAny(t, n, l.StrandTowards(front)*-1, n.StrandTowards(front)) {
					matchesFront = true
					break
				}
			}
			matchesBack := false
			for _, n := range backNeighbours {
				if tagMatchesAny(t, n, l.StrandTowards(back), n.StrandTowards(back)) {
					matchesBack = true
					break
				}
			}
			// Flanked: matches both sides. Blocking: matches exactly one.
			// A tag matching neither side is neither flanked nor blocking.
			flanked[i] = matchesFront && matchesBack
			if flanked[i] {
				anyFlanked = true
			} else if matchesFront != matchesBack {
				blocking++
			}
		}
		if blocking > 0 || !anyFlanked || allTrue(flanked) {
			continue
		}
		if _, err := l.split(invert(flanked)); err == nil {
			splits++
		}
	}
	log.Infof("simplify: %s splits", humanize.Comma(int64(splits)))
	return splits
}

// SimplifyAggressive implements §4.6: neighbour sets now require
// len(n.Tags) >= len(l.Tags), gated on l itself being invalid by path
// length or shortest-region length; admission requires the matched tag
// counts from both sides to equal len(l.Tags), and whichever neighbour(s)
// have unmatched tags get split: the matched tags stay on the neighbour
// and the unmatched ones move to a new link over the same path.
func (g *Graph) SimplifyAggressive(minAnchors, minLength int) int {
	splits := 0
	for _, l := range g.allLinks() {
		if len(l.Path) >= minAnchors && l.GetShortestRegionLength() >= minLength {
			continue
		}
		front, back := l.Front(), l.Back()
		var frontNeighbours, backNeighbours []*Link
		for _, n := range neighboursOf(front, l) {
			if len(n.Tags) >= len(l.Tags) {
				frontNeighbours = append(frontNeighbours, n)
			}
		}
		for _, n := range neighboursOf(back, l) {
			if len(n.Tags) >= len(l.Tags) {
				backNeighbours = append(backNeighbours, n)
			}
		}
		for _, fn := range frontNeighbours {
			for _, bn := range backNeighbours {
				if fn == bn {
					continue
				}
				frontMatch := l.GetMatchingTags(fn, l.StrandTowards(front)*-1, fn.StrandTowards(front), true)
				backMatch := l.GetMatchingTags(bn, l.StrandTowards(back), bn.StrandTowards(back), true)
				if frontMatch == nil || backMatch == nil {
					continue
				}
				if countMatched(frontMatch) != len(l.Tags) || countMatched(backMatch) != len(l.Tags) {
					continue
				}
				for k, n := range []*Link{fn, bn} {
					keep := make([]bool, len(n.Tags))
					for _, j := range [][]int{frontMatch, backMatch}[k] {
						keep[j] = true
					}
					if _, err := n.split(keep); err == nil {
						splits++
					}
				}
				break
			}
		}
	}
	log.Infof("simplify-aggressive: %s splits", humanize.Comma(int64(splits)))
	return splits
}

// tagMatchesAny reports whether t matches some tag of n under the given
// directional flags, used by Simplify's flanked/blocking classification.
func tagMatchesAny(t Tag, n *Link, s1, s2 Strand) bool {
	single := &Link{Path: n.Path, Tags: []Tag{t}}
	return single.GetMatchingTags(n, s1, s2, true) != nil && single.GetMatchingTags(n, s1, s2, true)[0] != -1
}

func allTrue(bs []bool) bool {
	for _, b := range bs {
		if !b {
			return false
		}
	}
	return true
}

func invert(bs []bool) []bool {
	out := make([]bool, len(bs))
	for i, b := range bs {
		out[i] = !b
	}
	return out
}

func countMatched(matches []int) int {
	n := 0
	for _, m := range matches {
		if m != -1 {
			n++
		}
	}
	return n
}

// SplitUnselectedLinks implements §4.8: peel one tag at a time off any
// link that fails the validity predicate, until either the link becomes
// valid or only a single tag is left.
func (g *Graph) SplitUnselectedLinks(minAnchors, minRegions, minLength int) int {
	splits := 0
	for _, l := range g.allLinks() {
		for len(l.Tags) > 1 && !l.IsValid(minAnchors, minRegions, minLength) {
			keep := make([]bool, len(l.Tags))
			for i := range keep {
				keep[i] = i != 0
			}
			if _, err := l.split(keep); err != nil {
				break
			}
			splits++
		}
	}
	log.Infof("split-unselected-links: %s splits", humanize.Comma(int64(splits)))
	return splits
}

// ResolveSmallPalindromes implements §4.7: every un-selectable link whose
// tag count is even is checked against itself, strictly, under
// (s1=+1,s2=-1) and, failing that, the mirror (s1=-1,s2=+1). A bijection
// splits the tags into two halves by relative start position, which are
// then concatenated back together; the matching contract rewrites the
// result as palindromic (every tag strand forced to 0), collapsing the
// hairpin into one linear block. Grounded on
// graph.cpp:Graph::resolve_small_palindromes.
func (g *Graph) ResolveSmallPalindromes(minAnchors, minRegions, minLength int) int {
	resolved := 0
	for _, l := range g.allLinks() {
		if l.IsValid(minAnchors, minRegions, minLength) {
			continue
		}
		if len(l.Tags)%2 != 0 {
			continue
		}

		matches := l.GetMatchingTags(l, StrandForward, StrandReverse, false)
		if matches == nil {
			matches = l.GetMatchingTags(l, StrandReverse, StrandForward, false)
		}
		if matches == nil {
			continue
		}

		tagsToSplit := make([]bool, len(l.Tags))
		for i, m := range matches {
			if m != -1 && l.Tags[i].Start < l.Tags[m].Start {
				tagsToSplit[i] = true
			}
		}
		newLink, err := l.split(invert(tagsToSplit))
		if err != nil {
			continue
		}
		if l.TryToConcatenateWith(newLink, StrandUndetermined, StrandUndetermined) {
			resolved++
		}
		for i := range l.Tags {
			l.Tags[i].Strand = StrandUndetermined
		}
	}
	log.Infof("resolve-small-palindromes: %s resolved", humanize.Comma(int64(resolved)))
	return resolved
}

// AssimilateSmallInsertions implements §4.9: a small, invalid link with
// matching valid neighbours on both sides is folded into its front
// neighbour's tag intervals and then deleted, capped by maxInsertionLength.
func (g *Graph) AssimilateSmallInsertions(minAnchors, minRegions, minLength, maxInsertionLength int) int {
	assimilated := 0
	for _, l := range g.allLinks() {
		if l.IsValid(minAnchors, minRegions, minLength) {
			continue
		}
		if l.GetLongestRegionLength() > maxInsertionLength {
			continue
		}
		front, back := l.Front(), l.Back()
		var frontCandidate, backCandidate *Link
		for _, n := range neighboursOf(front, l) {
			if n.IsValid(minAnchors, minRegions, minLength) && len(n.Tags) > len(l.Tags) {
				frontCandidate = n
				break
			}
		}
		for _, n := range neighboursOf(back, l) {
			if n.IsValid(minAnchors, minRegions, minLength) && len(n.Tags) > len(l.Tags) {
				backCandidate = n
				break
			}
		}
		if frontCandidate == nil || backCandidate == nil {
			continue
		}
		frontMatch := l.GetMatchingTags(frontCandidate, l.StrandTowards(front)*-1, frontCandidate.StrandTowards(front), true)
		backMatch := l.GetMatchingTags(backCandidate, l.StrandTowards(back), backCandidate.StrandTowards(back), true)
		if frontMatch == nil || backMatch == nil {
			continue
		}

		for i, t := range l.Tags {
			fj := frontMatch[i]
			if fj == -1 {
				continue
			}
			ft := frontCandidate.Tags[fj]
			if t.Start < ft.Start {
				ft.Start = t.Start
			}
			if t.End > ft.End {
				ft.End = t.End
			}
			frontCandidate.Tags[fj] = ft
		}

		front.removeLink(l)
		back.removeLink(l)
		assimilated++
	}
	log.Infof("assimilate-small-insertions: %s assimilated", humanize.Comma(int64(assimilated)))
	return assimilated
}

// SplitUnbalancedLinks implements §4.9's companion post-pass: per species,
// any tag shorter than longest/maxRatio is dropped from the link. Errors
// with ErrEmptyLink if a link would be left with zero tags (a hard
// invariant violation in the original, §7).
func (g *Graph) SplitUnbalancedLinks(maxRatio float64) (int, error) {
	dropped := 0
	for _, l := range g.allLinks() {
		longestBySpecies := make(map[Handle]int)
		for _, t := range l.Tags {
			if t.Length() > longestBySpecies[t.Species] {
				longestBySpecies[t.Species] = t.Length()
			}
		}
		keep := make([]bool, len(l.Tags))
		allKept := true
		for i, t := range l.Tags {
			longest := longestBySpecies[t.Species]
			if float64(t.Length())*maxRatio < float64(longest) {
				keep[i] = false
				allKept = false
			} else {
				keep[i] = true
			}
		}
		if allKept {
			continue
		}
		kept := 0
		for _, k := range keep {
			if k {
				kept++
			}
		}
		if kept == 0 {
			return dropped, ErrEmptyLink
		}
		var newTags []Tag
		for i, t := range l.Tags {
			if keep[i] {
				newTags = append(newTags, t)
			} else {
				dropped++
			}
		}
		l.Tags = newTags
	}
	log.Infof("split-unbalanced-links: %s tags dropped", humanize.Comma(int64(dropped)))
	return dropped, nil
}
