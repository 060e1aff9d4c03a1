package hier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphplot/pkg/errors"
)

func TestUniqueLike(t *testing.T) {
	tests := []struct {
		name       string
		in         Labels
		wantUnique Labels
		wantCounts []int
	}{
		{"first occurrence order", Labels{"3", "1", "1", "2"}, Labels{"3", "1", "2"}, []int{1, 2, 1}},
		{"strings", Labels{"b", "a", "b", "c", "a"}, Labels{"b", "a", "c"}, []int{2, 2, 1}},
		{"single", Labels{"x"}, Labels{"x"}, []int{1}},
		{"empty", Labels{}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, c := UniqueLike(tt.in)
			assert.Equal(t, tt.wantUnique, u)
			assert.Equal(t, tt.wantCounts, c)
		})
	}
}

func TestUniqueLikeCountsSumToN(t *testing.T) {
	l := Labels{"a", "b", "a", "c", "c", "c", "d"}
	_, counts := UniqueLike(l)
	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, len(l), total)
}

func TestFreqVec(t *testing.T) {
	got := FreqVec(Labels{"a", "b", "a", "c", "a"})
	assert.Equal(t, []int{3, 1, 3, 1, 3}, got)
}

func TestFreqsPerOuterSegment(t *testing.T) {
	f, err := Freqs(Labels{"1", "2", "1"}, Labels{"X", "X", "Y"})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1}, f.Outer)
	assert.Equal(t, []int{0, 2, 3}, f.OuterCumsum)
	assert.Equal(t, []int{1, 1, 1}, f.Inner, "inner counts are computed per outer segment")
	assert.Equal(t, []int{0, 1, 2, 3}, f.InnerCumsum)
}

func TestFreqsSingleOuter(t *testing.T) {
	inner := Labels{"A", "A", "B", "B", "B"}
	f, err := Freqs(inner, Implicit(len(inner)))
	require.NoError(t, err)

	assert.Equal(t, []int{5}, f.Outer)
	assert.Equal(t, []int{2, 3}, f.Inner)
	assert.Equal(t, []int{0, 2, 5}, f.InnerCumsum)
}

func TestFreqsUnsortedInputIsPositional(t *testing.T) {
	// Outer segments are contiguous runs of the sequence as given.
	f, err := Freqs(Labels{"a", "b", "a"}, Labels{"X", "Y", "X"})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1}, f.Outer)
	assert.Equal(t, []int{1, 1, 1}, f.Inner)
}

func TestFreqsLengthMismatch(t *testing.T) {
	_, err := Freqs(Labels{"a"}, Labels{"X", "Y"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeDimensionMismatch))
}

func TestCentersAndHalfWidths(t *testing.T) {
	freq := []int{2, 4, 1}
	assert.Equal(t, []float64{1, 4, 6.5}, Centers(freq))
	assert.Equal(t, []float64{1, 2, 0.5}, HalfWidths(freq))
}

func TestImplicit(t *testing.T) {
	l := Implicit(3)
	assert.Equal(t, Labels{ImplicitLabel, ImplicitLabel, ImplicitLabel}, l)
	u, c := UniqueLike(l)
	assert.Len(t, u, 1)
	assert.Equal(t, []int{3}, c)
}

func TestLabelsCompare(t *testing.T) {
	numeric := Labels{"10", "9", "2.5"}
	require.True(t, numeric.Numeric())
	assert.Negative(t, numeric.Compare()("9", "10"), "numeric labels compare by value")

	text := Labels{"10", "9", "b"}
	require.False(t, text.Numeric())
	assert.Positive(t, text.Compare()("9", "10"), "mixed labels compare lexicographically")

	assert.False(t, Labels{}.Numeric())
}

func TestFromInts(t *testing.T) {
	assert.Equal(t, Labels{"0", "2", "1"}, FromInts([]int{0, 2, 1}))
	assert.Equal(t, Labels{"true", "false"}, FromValues([]bool{true, false}))
}
