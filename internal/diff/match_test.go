package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchingBlocks(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		want []Match
	}{
		{
			name: "both empty",
			want: []Match{{0, 0, 0}},
		},
		{
			name: "identical",
			old:  "abc\n",
			new:  "abc\n",
			want: []Match{{0, 0, 4}, {4, 4, 0}},
		},
		{
			name: "one changed rune",
			old:  "abcd",
			new:  "abxd",
			want: []Match{{0, 0, 2}, {3, 3, 1}, {4, 4, 0}},
		},
		{
			name: "nothing in common",
			old:  "abc",
			new:  "xyz",
			want: []Match{{3, 3, 0}},
		},
		{
			name: "insertion",
			old:  "foo(a)",
			new:  "foo(a, b)",
			want: []Match{{0, 0, 5}, {5, 8, 1}, {6, 9, 0}},
		},
		{
			name: "offsets are runes",
			old:  "héllo",
			new:  "hällo",
			want: []Match{{0, 0, 1}, {2, 2, 3}, {5, 5, 0}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchingBlocks(tc.old, tc.new)
			require.Equal(t, tc.want, got)
			require.NoError(t, validateMatches(got, len([]rune(tc.old)), len([]rune(tc.new))))
		})
	}
}

func TestMatchingBlocks_LongInputStillValid(t *testing.T) {
	// Long enough to trigger the popular-element heuristic.
	old := strings.Repeat("a b c ", 60) + "tail"
	new := strings.Repeat("a b d ", 60) + "tail"
	got := MatchingBlocks(old, new)
	require.NotEmpty(t, got)
	assert.True(t, got[len(got)-1].IsSentinel())
}

func TestTotalSize(t *testing.T) {
	assert.Equal(t, 0, TotalSize(nil))
	assert.Equal(t, 7, TotalSize([]Match{{0, 0, 4}, {5, 5, 3}, {8, 8, 0}}))
}

func TestMatch_Ends(t *testing.T) {
	m := Match{Old: 2, New: 5, Size: 3}
	assert.Equal(t, 5, m.OldEnd())
	assert.Equal(t, 8, m.NewEnd())
	assert.False(t, m.IsSentinel())
	assert.True(t, Match{Old: 9, New: 9}.IsSentinel())
}

func TestValidateMatches(t *testing.T) {
	require.NoError(t, validateMatches([]Match{{0, 0, 2}, {3, 3, 1}, {4, 4, 0}}, 4, 4))

	require.Error(t, validateMatches(nil, 0, 0))
	require.Error(t, validateMatches([]Match{{0, 0, 2}}, 2, 2), "missing sentinel")
	require.Error(t, validateMatches([]Match{{0, 0, 2}, {1, 2, 1}, {4, 4, 0}}, 4, 4), "overlap")
	require.Error(t, validateMatches([]Match{{0, 0, 0}, {4, 4, 0}}, 4, 4), "empty interior block")
	require.Error(t, validateMatches([]Match{{3, 3, 5}, {4, 4, 0}}, 4, 4), "out of bounds")
}
