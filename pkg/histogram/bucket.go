package histogram

import "fmt"

// Bucket groups a raw table into half-open buckets [b, b+interval) keyed by
// their lower bound b, a multiple of interval.
//
// Buckets run contiguously from the one holding the smallest key to the one
// holding the largest; buckets in between with no data are present with a
// zero count. Unreadable documents are carried over untouched. An interval of
// 1 returns a copy of t without gap filling.
func Bucket(t Table, interval int) (Table, error) {
	if interval < 1 {
		return Table{}, fmt.Errorf("interval must be at least 1, got %d", interval)
	}

	out := NewTable()
	out.Unreadable = t.Unreadable

	if interval == 1 {
		for k, v := range t.Counts {
			out.Counts[k] = v
		}
		return out, nil
	}

	keys := t.Keys()
	if len(keys) == 0 {
		return out, nil
	}

	current := keys[0] - keys[0]%interval
	for _, k := range keys {
		for k >= current+interval {
			current += interval
			out.Counts[current] = 0
		}
		out.Counts[current] += t.Counts[k]
	}
	return out, nil
}
