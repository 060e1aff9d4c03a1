package hier

import (
	"github.com/matzehuels/graphplot/pkg/errors"
)

// UniqueLike returns the distinct values of l in order of first occurrence,
// together with the number of times each value occurs.
//
//	UniqueLike(Labels{"3", "1", "1", "2"}) // ["3" "1" "2"], [1 2 1]
func UniqueLike(l Labels) (Labels, []int) {
	index := make(map[string]int, len(l))
	var uniques Labels
	var counts []int
	for _, v := range l {
		i, ok := index[v]
		if !ok {
			i = len(uniques)
			index[v] = i
			uniques = append(uniques, v)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return uniques, counts
}

// FreqVec returns, for every node, the total count of its label value in l.
func FreqVec(l Labels) []int {
	counts := make(map[string]int, len(l))
	for _, v := range l {
		counts[v]++
	}
	out := make([]int, len(l))
	for i, v := range l {
		out[i] = counts[v]
	}
	return out
}

// Frequencies holds group sizes and boundaries for a two-level labeling.
//
// Cumulative sums carry a leading zero, so group i of a level spans
// [Cumsum[i], Cumsum[i+1]) in the node sequence.
type Frequencies struct {
	Inner       []int
	InnerCumsum []int
	Outer       []int
	OuterCumsum []int
}

// Freqs computes group sizes for inner labels nested in outer labels.
//
// Outer groups are taken in first-occurrence order. For every outer segment
// [OuterCumsum[i], OuterCumsum[i+1]) of the sequence as given, the inner
// counts of that slice are computed independently and concatenated. The
// segments are positional, so callers that want boundaries matching a plot
// must pass labels in sorted order.
func Freqs(inner, outer Labels) (Frequencies, error) {
	if len(inner) != len(outer) {
		return Frequencies{}, errors.New(errors.ErrCodeDimensionMismatch,
			"inner labels (%d) and outer labels (%d) must have the same length", len(inner), len(outer))
	}
	_, outerFreq := UniqueLike(outer)
	f := Frequencies{
		Outer:       outerFreq,
		OuterCumsum: cumsum(outerFreq),
	}
	for i := range outerFreq {
		start, stop := f.OuterCumsum[i], f.OuterCumsum[i+1]
		_, seg := UniqueLike(inner[start:stop])
		f.Inner = append(f.Inner, seg...)
	}
	f.InnerCumsum = cumsum(f.Inner)
	return f, nil
}

// Centers returns the midpoint of every group, cumsum - freq/2.
func Centers(freq []int) []float64 {
	out := make([]float64, len(freq))
	total := 0
	for i, f := range freq {
		total += f
		out[i] = float64(total) - float64(f)/2
	}
	return out
}

// HalfWidths returns freq/2 for every group.
func HalfWidths(freq []int) []float64 {
	out := make([]float64, len(freq))
	for i, f := range freq {
		out[i] = float64(f) / 2
	}
	return out
}

func cumsum(vals []int) []int {
	out := make([]int, len(vals)+1)
	for i, v := range vals {
		out[i+1] = out[i] + v
	}
	return out
}
