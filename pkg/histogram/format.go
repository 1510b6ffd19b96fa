package histogram

import "fmt"

// Format renders a bucketed table as text lines, smallest bucket first.
// The unreadable count, when present, comes before the numeric rows.
func Format(t Table, interval int) []string {
	var lines []string
	if t.Unreadable > 0 {
		lines = append(lines, fmt.Sprintf("Files that could not be read: %d", t.Unreadable))
	}
	for _, k := range t.Keys() {
		lines = append(lines, fmt.Sprintf("%s : %d", Label(k, interval), t.Counts[k]))
	}
	return lines
}

// Label names the bucket starting at k, e.g. "[ 4 ]" or "[ 4 - 8 ]".
func Label(k, interval int) string {
	if interval > 1 {
		return fmt.Sprintf("[ %d - %d ]", k, k+interval-1)
	}
	return fmt.Sprintf("[ %d ]", k)
}
