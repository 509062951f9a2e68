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

import "github.com/dustin/go-humanize"

// RunPipeline drives the graph from a freshly populated state through to
// emission, selecting exactly one row of §4.12's simplification-level
// table. Levels are not independent flags accumulated on top of one
// another: each row names the lower level it builds on (e.g. level 3 is
// "level-2 then ..."), and level 2 does not also run level 1's pass, so
// the driver picks the one sequence the requested level names rather than
// running every lower-numbered pass in turn.
//
// Grounded on enredo.cpp:main's pass sequencing (levels 0/1) extended to
// levels 2-7 per spec.md §4.12's table.
func (g *Graph) RunPipeline(cfg *Config) error {
	minAnchors, minRegions, minLength := cfg.MinAnchors, cfg.MinRegions, cfg.MinLength
	maxInsertion := cfg.MaxInsertionLength
	D := cfg.MaxPathDissimilarity

	// level 0: minimize; repeat D times: merge-alternative-paths(k), minimize.
	level0 := func() {
		g.Minimize()
		for a := 0; a < D; a++ {
			g.MergeAlternativePaths(a + 1)
			g.Minimize()
		}
	}

	// level 2: level-0 then simplify(min_anchors, 1, min_length).
	level2 := func() {
		level0()
		g.Simplify(minAnchors, 1, minLength)
		g.Minimize()
	}

	// level 5: loop simplify(min_anchors, 1, min_length) until no splits,
	// each followed by minimize.
	level5 := func() {
		level0()
		for {
			splits := g.Simplify(minAnchors, 1, minLength)
			g.Minimize()
			if splits == 0 {
				break
			}
		}
	}

	// level 6: level-5 then loop simplify-aggressive + simplify
	// interleaved with minimize, to a fixpoint.
	level6 := func() {
		level5()
		for {
			splits := g.SimplifyAggressive(minAnchors, minLength)
			g.Minimize()
			splits += g.Simplify(minAnchors, 1, minLength)
			g.Minimize()
			if splits == 0 {
				break
			}
		}
	}

	switch cfg.SimplificationLevel {
	case 0:
		level0()
	case 1:
		// level-0 then simplify(min_anchors, min_regions, min_length).
		level0()
		g.Simplify(minAnchors, minRegions, minLength)
		g.Minimize()
	case 2:
		level2()
	case 3:
		// level-2 then merge-alternative-paths(D) once.
		level2()
		g.MergeAlternativePaths(D)
		g.Minimize()
	case 4:
		// level-2 then repeat D times: merge-alternative-paths(k).
		level2()
		for a := 0; a < D; a++ {
			g.MergeAlternativePaths(a + 1)
		}
		g.Minimize()
	case 5:
		level5()
	case 6:
		level6()
	case 7:
		// level-6 then split-unselected-links, simplify, simplify-aggressive,
		// resolve-small-palindromes, assimilate-small-insertions, loop
		// merge-alternative-paths(0) to fixpoint, assimilate-small-insertions,
		// minimize.
		level6()
		g.SplitUnselectedLinks(minAnchors, minRegions, minLength)
		g.Simplify(minAnchors, minRegions, minLength)
		g.SimplifyAggressive(minAnchors, minLength)
		g.ResolveSmallPalindromes(minAnchors, minRegions, minLength)
		g.AssimilateSmallInsertions(minAnchors, minRegions, minLength, maxInsertion)
		for g.MergeAlternativePaths(0) > 0 {
		}
		g.AssimilateSmallInsertions(minAnchors, minRegions, minLength, maxInsertion)
		g.Minimize()
	}

	if cfg.MaxRatio > 1 {
		dropped, err := g.SplitUnbalancedLinks(cfg.MaxRatio)
		if err != nil {
			return err
		}
		if dropped > 0 {
			g.Minimize()
		}
	}

	log.Infof("pipeline: done, %s anchors remain", humanize.Comma(int64(g.NumAnchors())))
	return nil
}
