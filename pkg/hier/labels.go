package hier

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// ImplicitLabel is the value shared by every node of a synthesized outer level.
const ImplicitLabel = "1"

// Labels is a categorical label per node.
type Labels []string

// Implicit returns a constant label vector of length n.
func Implicit(n int) Labels {
	l := make(Labels, n)
	for i := range l {
		l[i] = ImplicitLabel
	}
	return l
}

// FromInts converts integer labels, such as cluster assignments.
func FromInts(vals []int) Labels {
	l := make(Labels, len(vals))
	for i, v := range vals {
		l[i] = strconv.Itoa(v)
	}
	return l
}

// FromValues formats arbitrary values with %v.
func FromValues[T any](vals []T) Labels {
	l := make(Labels, len(vals))
	for i, v := range vals {
		l[i] = fmt.Sprint(v)
	}
	return l
}

// Numeric reports whether every label parses as a float.
// An empty vector is not numeric.
func (l Labels) Numeric() bool {
	if len(l) == 0 {
		return false
	}
	for _, s := range l {
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return false
		}
	}
	return true
}

// Compare returns a comparison function over label values of l.
// Numeric vectors compare by value, others lexicographically.
func (l Labels) Compare() func(a, b string) int {
	if !l.Numeric() {
		return strings.Compare
	}
	return func(a, b string) int {
		x, _ := strconv.ParseFloat(strings.TrimSpace(a), 64)
		y, _ := strconv.ParseFloat(strings.TrimSpace(b), 64)
		return cmp.Compare(x, y)
	}
}

// Clone returns a copy of l.
func (l Labels) Clone() Labels {
	if l == nil {
		return nil
	}
	return append(Labels(nil), l...)
}
