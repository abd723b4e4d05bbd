// Package tally counts string keys and emits them ordered by frequency.
package tally

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Entry is one key with its count.
type Entry struct {
	Key   string
	Count int
}

// Counts is a counter that remembers the order keys were first seen.
// The zero value is not usable; call New.
type Counts struct {
	order []string
	index map[string]int
	count []int
}

// New returns an empty counter.
func New() *Counts {
	return &Counts{index: make(map[string]int)}
}

// Inc adds one occurrence of key.
func (c *Counts) Inc(key string) {
	i, ok := c.index[key]
	if !ok {
		i = len(c.order)
		c.index[key] = i
		c.order = append(c.order, key)
		c.count = append(c.count, 0)
	}

	c.count[i]++
}

// Get returns the count for key, 0 when unseen.
func (c *Counts) Get(key string) int {
	if i, ok := c.index[key]; ok {
		return c.count[i]
	}

	return 0
}

// Len returns the number of distinct keys.
func (c *Counts) Len() int {
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counts) Total() int {
	total := 0
	for _, n := range c.count {
		total += n
	}

	return total
}

// Sorted returns the entries by count descending. Equal counts keep
// first-seen order.
func (c *Counts) Sorted() []Entry {
	entries := make([]Entry, len(c.order))
	for i, key := range c.order {
		entries[i] = Entry{Key: key, Count: c.count[i]}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	return entries
}

// Top returns at most n entries from Sorted.
func (c *Counts) Top(n int) []Entry {
	entries := c.Sorted()
	if n < len(entries) {
		entries = entries[:n]
	}

	return entries
}

// MarshalJSON encodes the counter as a JSON object whose keys follow Sorted.
// HTML characters and non-ASCII text are written unescaped.
func (c *Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')

	for i, e := range c.Sorted() {
		if i > 0 {
			buf.WriteByte(',')
		}

		// Encoder.Encode appends a newline after each value.
		if err := enc.Encode(e.Key); err != nil {
			return nil, err
		}

		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')

		if err := enc.Encode(e.Count); err != nil {
			return nil, err
		}

		buf.Truncate(buf.Len() - 1)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// EncodeIndented returns the counter as a two-space indented JSON document
// without a trailing newline.
func EncodeIndented(c *Counts) ([]byte, error) {
	compact, err := c.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}
