package histogram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		table    map[int]int
		interval int
		want     []string
	}{
		{"empty", map[int]int{}, 1, nil},
		{"single values", map[int]int{2: 1, 1: 1}, 1, []string{"[ 1 ] : 1", "[ 2 ] : 1"}},
		{"ranges", map[int]int{0: 2, 5: 0, 10: 7}, 5, []string{"[ 0 - 4 ] : 2", "[ 5 - 9 ] : 0", "[ 10 - 14 ] : 7"}},
		{
			"unreadable first",
			map[int]int{-1: 3, 4: 1},
			2,
			[]string{"Files that could not be read: 3", "[ 4 - 5 ] : 1"},
		},
		{"only unreadable", map[int]int{-1: 1}, 1, []string{"Files that could not be read: 1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(mustTable(t, tt.table), tt.interval))
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "[ 7 ]", Label(7, 1))
	assert.Equal(t, "[ 20 - 29 ]", Label(20, 10))
}
