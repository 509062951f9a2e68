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

// Handle is an interned string: two handles compare equal with a pointer
// comparison iff the underlying strings are equal. This is what gives tag
// matching (§4.1) its O(1) species/chromosome equality test.
type Handle = *string

// StringTable interns strings so that repeated occurrences of the same
// species or chromosome name share one allocation and one identity,
// mirroring Graph::species / Graph::chrs (std::map<string, string*>) in
// the original C++ source.
type StringTable struct {
	byValue map[string]Handle
}

// NewStringTable creates an empty interning table.
func NewStringTable() *StringTable {
	return &StringTable{byValue: make(map[string]Handle)}
}

// Intern returns the canonical handle for s, creating one on first sight.
func (t *StringTable) Intern(s string) Handle {
	if h, ok := t.byValue[s]; ok {
		return h
	}
	h := new(string)
	*h = s
	t.byValue[s] = h
	return h
}

// Len reports how many distinct strings have been interned.
func (t *StringTable) Len() int {
	return len(t.byValue)
}

// Names returns the set of interned values, for reporting/debugging.
func (t *StringTable) Names() []string {
	names := make([]string, 0, len(t.byValue))
	for v := range t.byValue {
		names = append(names, v)
	}
	return names
}
