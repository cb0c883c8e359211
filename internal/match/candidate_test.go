package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var builtinTags = []string{"->", "float", "integer", "json", "string"}

func TestRank(t *testing.T) {
	ranked := Rank("intger", builtinTags)
	require.Len(t, ranked, len(builtinTags))

	best := ranked.Best()
	require.NotNil(t, best)
	assert.Equal(t, "integer", best.Name)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
}

func TestRank_ExcludesExactMatch(t *testing.T) {
	ranked := Rank("json", builtinTags)
	assert.Len(t, ranked, len(builtinTags)-1)

	for _, c := range ranked {
		assert.NotEqual(t, "json", c.Name)
	}
}

func TestRank_TieBreakByName(t *testing.T) {
	ranked := Rank("zz", []string{"b", "a"})
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Name)
	assert.Equal(t, "b", ranked[1].Name)
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		word string
		want []string
	}{
		{word: "intger", want: []string{"integer"}},
		{word: "flaot", want: []string{"float"}},
		{word: "Strng", want: []string{"string"}},
		{word: "footype", want: []string{}},
		{word: "string", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(tt.word, builtinTags, DefaultMinScore, 3))
		})
	}
}

func TestCandidateList_Helpers(t *testing.T) {
	list := CandidateList{{Name: "a", Score: 0.9}, {Name: "b", Score: 0.5}, {Name: "c", Score: 0.1}}

	assert.Len(t, list.Top(2), 2)
	assert.Len(t, list.Top(10), 3)
	assert.Equal(t, CandidateList{{Name: "a", Score: 0.9}, {Name: "b", Score: 0.5}}, list.AboveThreshold(0.5))
	assert.Nil(t, CandidateList{}.Best())
}
