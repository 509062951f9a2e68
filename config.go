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

import "github.com/pkg/errors"

// Config collects every threshold and switch the pipeline (§4.12) needs.
// Defaults mirror enredo.cpp's flag defaults.
type Config struct {
	// loader (§4.11)
	MaxGapLength int
	MinScore     float64

	// validity predicate (§4.10)
	MinAnchors int
	MinRegions int
	MinLength  int

	// merge-alternative-paths (§4.3)
	MaxPathDissimilarity int

	// driver (§4.12)
	SimplificationLevel int

	// split-unbalanced-links post-pass (§4.9)
	MaxRatio float64

	// assimilate-small-insertions (§4.9)
	MaxInsertionLength int

	// emission (§6)
	PrintAll bool

	// observability (SPEC_FULL.md §D.4)
	DebugAnchor string
}

// DefaultConfig returns the thresholds enredo.cpp uses when no flag
// overrides them.
func DefaultConfig() *Config {
	return &Config{
		MaxGapLength:         100000,
		MinScore:             0.0,
		MinAnchors:           3,
		MinRegions:           2,
		MinLength:            100000,
		MaxPathDissimilarity: 0,
		SimplificationLevel:  0,
		MaxRatio:             1,
		MaxInsertionLength:   1000,
		PrintAll:             false,
	}
}

// Validate rejects threshold combinations that can never produce a
// sensible run.
func (c *Config) Validate() error {
	if c.MinAnchors < 2 {
		return errors.New("enredo: min-anchors must be at least 2")
	}
	if c.MinRegions < 1 {
		return errors.New("enredo: min-regions must be at least 1")
	}
	if c.MaxGapLength < 0 {
		return errors.New("enredo: max-gap-length must not be negative")
	}
	if c.SimplificationLevel < 0 || c.SimplificationLevel > 7 {
		return errors.New("enredo: simplification-level must be in [0,7]")
	}
	if c.MaxRatio < 1 {
		return errors.New("enredo: max-ratio must be at least 1 (1 disables the filter)")
	}
	return nil
}
