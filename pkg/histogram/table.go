// Package histogram aggregates per-document word counts into a frequency
// table and buckets it by a fixed interval.
package histogram

import (
	"fmt"
	"sort"
)

// UnreadableKey is the key unreadable documents are reported under when a
// table is projected to a plain map or printed.
const UnreadableKey = -1

// WordCount is the outcome of counting one document.
type WordCount struct {
	Source     string // Document name, for diagnostics.
	Words      int
	Unreadable bool // The document could not be read; Words is meaningless.
}

// Counted returns the WordCount of a successfully read document.
func Counted(source string, words int) WordCount {
	return WordCount{Source: source, Words: words}
}

// Failed returns the WordCount of a document that could not be read.
func Failed(source string) WordCount {
	return WordCount{Source: source, Unreadable: true}
}

// Table maps a word count (raw stage) or bucket lower bound (bucketed stage)
// to a number of documents. Unreadable documents are counted apart.
type Table struct {
	Counts     map[int]int
	Unreadable int
}

// NewTable returns an empty table.
func NewTable() Table {
	return Table{Counts: make(map[int]int)}
}

// Tally folds word counts into a raw table keyed by exact word count.
func Tally(counts []WordCount) Table {
	t := NewTable()
	for _, c := range counts {
		if c.Unreadable {
			t.Unreadable++
			continue
		}
		t.Counts[c.Words]++
	}
	return t
}

// FromMap builds a table from its map projection, where key -1 holds the
// unreadable count. Any other negative key is rejected.
func FromMap(m map[int]int) (Table, error) {
	t := NewTable()
	for k, v := range m {
		switch {
		case v < 0:
			return Table{}, fmt.Errorf("negative frequency %d for key %d", v, k)
		case k == UnreadableKey:
			t.Unreadable = v
		case k < 0:
			return Table{}, fmt.Errorf("invalid key %d", k)
		default:
			t.Counts[k] = v
		}
	}
	return t, nil
}

// Map projects the table to a single map with unreadable documents under key -1.
// The -1 key is present only when at least one document was unreadable.
func (t Table) Map() map[int]int {
	m := make(map[int]int, len(t.Counts)+1)
	for k, v := range t.Counts {
		m[k] = v
	}
	if t.Unreadable > 0 {
		m[UnreadableKey] = t.Unreadable
	}
	return m
}

// Keys returns the numeric keys in ascending order.
func (t Table) Keys() []int {
	keys := make([]int, 0, len(t.Counts))
	for k := range t.Counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Total sums the frequencies of all numeric keys.
func (t Table) Total() int {
	total := 0
	for _, v := range t.Counts {
		total += v
	}
	return total
}

// Max returns the largest frequency among numeric keys, or 0 for an empty table.
func (t Table) Max() int {
	maxValue := 0
	for _, v := range t.Counts {
		if v > maxValue {
			maxValue = v
		}
	}
	return maxValue
}

// Empty reports whether the table holds neither numeric keys nor unreadable documents.
func (t Table) Empty() bool {
	return len(t.Counts) == 0 && t.Unreadable == 0
}
