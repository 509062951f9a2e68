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
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// hitState tracks the "previous hit" needed to decide whether a new row
// continues the same chromosome run or starts a fresh one, per §4.11.
type hitState struct {
	anchor  *Anchor
	species Handle
	chr     Handle
	start   int
	end     int
	valid   bool
}

// LoadAnchorHits reads whitespace-separated anchor-hit rows from r into g,
// implementing §4.11: `#`-prefixed lines are comments, a bare `--` line
// resets the contiguous-run state, rows scoring below cfg.MinScore are
// dropped, and a gap larger than cfg.MaxGapLength between consecutive
// hits on the same chromosome breaks the run without erroring.
//
// Row schema: anchor_id species chromosome start end strand score
//
// Grounded on graph.cpp:Graph::populate_from_file.
func LoadAnchorHits(g *Graph, r io.Reader, cfg *Config) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var prev hitState
	var lineNo uint64
	var longGaps int64

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "--" {
			prev = hitState{}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 7 {
			return errors.Wrapf(&ErrBadRow{Line: lineNo, Text: line, Err: errors.New("expected 7 fields")}, "enredo: loading anchor hits")
		}

		anchorID := fields[0]
		speciesName := fields[1]
		chrName := fields[2]
		start, err1 := strconv.Atoi(fields[3])
		end, err2 := strconv.Atoi(fields[4])
		strandVal, err3 := strconv.Atoi(fields[5])
		score, err4 := strconv.ParseFloat(fields[6], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return errors.Wrapf(&ErrBadRow{Line: lineNo, Text: line, Err: errors.New("malformed numeric field")}, "enredo: loading anchor hits")
		}

		if score < cfg.MinScore {
			continue
		}

		species := g.InternSpecies(speciesName)
		chr := g.InternChromosome(chrName)
		anchor := g.GetAnchor(anchorID, species)

		if prev.valid && prev.species == species && prev.chr == chr {
			gap := start - prev.end
			if gap < 0 {
				gap = -gap
			}
			if gap > cfg.MaxGapLength {
				longGaps++
				prev = hitState{}
			} else {
				if err := linkHit(anchor, prev.anchor, species, chr, prev.start, end, Strand(strandVal)); err != nil {
					return err
				}
			}
		}

		prev = hitState{anchor: anchor, species: species, chr: chr, start: start, end: end, valid: true}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "enredo: reading anchor hit stream")
	}

	if longGaps > 0 {
		log.Infof("load: %s hit pairs skipped for exceeding max-gap-length", humanize.Comma(longGaps))
	}
	return nil
}

// linkHit creates or reuses the direct link between prevAnchor and anchor
// and appends a tag spanning [start, end] (the previous hit's start to the
// current hit's end, as passed by LoadAnchorHits), deriving the tag's strand from
// the three-case rule in §4.11/§9c: self-loop (0), prevAnchor is the
// existing link's front (+1), anchor is the link's front (-1). Any other
// configuration is an invariant violation.
func linkHit(anchor, prevAnchor *Anchor, species, chr Handle, start, end int, recordedStrand Strand) error {
	link := anchor.getDirectLink(prevAnchor)

	var tagStrand Strand
	switch {
	case anchor == prevAnchor:
		tagStrand = StrandUndetermined
	case link.Front() == prevAnchor:
		tagStrand = StrandForward
	case link.Front() == anchor:
		tagStrand = StrandReverse
	default:
		return NewGraphInvariantError("anchor hit does not match either end of its direct link")
	}
	if tagStrand != StrandUndetermined {
		tagStrand = tagStrand * recordedStrand
	}

	link.AddTag(Tag{Species: species, Chr: chr, Start: start, End: end, Strand: tagStrand})
	return nil
}
