package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crosswarped.com/wrd/pkg/primitives"
)

var words = []string{
	"yenta", "aaabbb", "pilot", "jjkk", "bbbccc", "plate", "cccddd", "kkll", "spilt",
	"ye", "yes", "datum", "o'er", "toils", "", "panda", "llama", "label",
}

func direct(p primitives.Pattern, c primitives.Constraints) []string {
	result := []string{}
	for _, word := range words {
		if c.Accepts(p, word) {
			result = append(result, word)
		}
	}
	return result
}

func constraints(include, exclude, within string) primitives.Constraints {
	return primitives.Constraints{
		Include: primitives.MustLetterSet(include),
		Exclude: primitives.MustLetterSet(exclude),
		Within:  primitives.MustLetterSet(within),
	}
}

func TestIndex_Filter(t *testing.T) {
	x := New(words)
	assert.Equal(t, len(words), x.Len())
	assert.Equal(t, words, x.Words())

	patterns := []string{
		"* * * *", "* ab !cd * * *", "* * * * *", "p * * * *", "!p * * * t",
		"y e **", "** t", "** l ** **", "**", "* * ** * *", "z **", "!aeiou **",
	}
	cs := []primitives.Constraints{
		{},
		constraints("t", "", "ytanpem"),
		constraints("l", "a", ""),
		constraints("z", "", ""),
		constraints("", "aeiou", ""),
		constraints("", "", "abcdjkl"),
		{Bounds: map[rune]primitives.Bound{'l': {Min: 2, Max: -1}}},
		{Include: primitives.MustLetterSet("a"), Bounds: map[rune]primitives.Bound{'a': {Min: 1, Max: 1}}},
	}

	for _, pattern := range patterns {
		p := primitives.MustParsePattern(pattern)
		for _, c := range cs {
			assert.Equal(t, direct(p, c), x.Filter(p, c), "pattern %q include %q exclude %q within %q",
				pattern, c.Include, c.Exclude, c.Within)
		}
	}
}

func TestIndex_KeepsOrder(t *testing.T) {
	x := New(words)
	assert.Equal(t,
		[]string{"yenta", "pilot", "plate", "spilt", "datum", "toils", "panda", "llama", "label"},
		x.Filter(primitives.AnyOfLength(5), primitives.Constraints{}))
	assert.Equal(t,
		[]string{"yenta", "ye", "yes"},
		x.Filter(primitives.MustParsePattern("y **"), primitives.Constraints{}))
}

func TestIndex_Empty(t *testing.T) {
	x := New(nil)
	assert.Empty(t, x.Filter(primitives.AnyWord(), primitives.Constraints{}))
	assert.Empty(t, x.Filter(primitives.AnyOfLength(3), primitives.Constraints{}))
}
