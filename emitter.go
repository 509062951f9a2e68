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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// Block is one emitted syntenic block: the anchor path that defines it
// plus its tag bundle, optionally trimmed to a bridge's neighbour-implied
// boundaries (§4.10, §6).
type Block struct {
	Path []*Anchor
	Tags []Tag
}

// WriteBlocks walks every link in the graph in stable order and emits one
// Block per valid link and per bridge link (trimmed, §9b), skipping
// everything else. With cfg.PrintAll the validity thresholds are relaxed
// to 1/1/1, matching enredo.cpp's `--all` flag. Grounded on
// graph.cpp:Graph::print_links and link.cpp:Link::print/print_tag for the
// output shape.
func WriteBlocks(g *Graph, w io.Writer, cfg *Config) (int, error) {
	minAnchors, minRegions, minLength := cfg.MinAnchors, cfg.MinRegions, cfg.MinLength
	if cfg.PrintAll {
		minAnchors, minRegions, minLength = 1, 1, 1
	}

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	emitted := 0
	for _, l := range g.allLinks() {
		if l.IsValid(minAnchors, minRegions, minLength) {
			if err := writeBlock(bw, l.Path, l.Tags); err != nil {
				return emitted, err
			}
			emitted++
			continue
		}

		front := validNeighbour(l.Front(), l, minAnchors, minRegions, minLength)
		back := validNeighbour(l.Back(), l, minAnchors, minRegions, minLength)
		if !l.IsBridge(front, back, minAnchors, minRegions, minLength) {
			continue
		}

		trimmed := trimBridgeTags(l, front, back)
		if len(trimmed) < 2 {
			continue
		}
		if err := writeBlock(bw, l.Path, trimmed); err != nil {
			return emitted, err
		}
		emitted++
	}

	log.Infof("emit-blocks: %s blocks written", humanize.Comma(int64(emitted)))
	return emitted, nil
}

// validNeighbour returns the first valid, non-loop link incident on
// anchor other than l, or nil.
func validNeighbour(anchor *Anchor, l *Link, minAnchors, minRegions, minLength int) *Link {
	for _, n := range neighboursOf(anchor, l) {
		if !n.IsLoop() && n.IsValid(minAnchors, minRegions, minLength) {
			return n
		}
	}
	return nil
}

// trimBridgeTags clips a bridge link's tags to the interval implied by
// its valid neighbours on each side, dropping any tag that collapses to
// an empty interval once clipped (§9b's resolved off-by-one).
func trimBridgeTags(l *Link, front, back *Link) []Tag {
	frontMatch := l.GetMatchingTags(front, l.StrandTowards(l.Front())*-1, front.StrandTowards(l.Front()), true)
	backMatch := l.GetMatchingTags(back, l.StrandTowards(l.Back()), back.StrandTowards(l.Back()), true)

	var out []Tag
	for i, t := range l.Tags {
		if frontMatch != nil && frontMatch[i] != -1 {
			m := front.Tags[frontMatch[i]]
			if m.Start > t.Start {
				t.Start = m.Start
			}
		}
		if backMatch != nil && backMatch[i] != -1 {
			m := back.Tags[backMatch[i]]
			if m.End < t.End {
				t.End = m.End
			}
		}
		if t.Start > t.End {
			continue
		}
		out = append(out, t)
	}
	return out
}

// writeBlock writes one block record in §6's schema:
//
//	block - <anchor_id_1> - <anchor_id_2> - ... - <anchor_id_k>  (made of N genomic regions)
//	<species>:<chromosome>:<start>:<end> [<strand>] l=<length>
//	...
//	<blank line>
func writeBlock(w *bufio.Writer, path []*Anchor, tags []Tag) error {
	ids := make([]string, len(path))
	for i, a := range path {
		ids[i] = a.ID
	}
	if _, err := fmt.Fprintf(w, "block - %s  (made of %d genomic regions)\n", strings.Join(ids, " - "), len(tags)); err != nil {
		return err
	}
	for _, t := range tags {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
