// Package transform rescales adjacency matrices before plotting.
//
// Supported methods:
//
//   - log, log10: logarithm of strictly positive entries, others unchanged
//   - zero-boost: pass-to-ranks that ranks nonzero edges above every zero
//   - simple-all, simple-nonzero: pass-to-ranks normalized by matrix size or
//     by the number of nonzero entries
//   - binarize: positive entries become 1, everything else 0
//
// The empty method is the identity. All transforms are out of place.
package transform

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphplot/pkg/errors"
)

// Method names a matrix transform.
type Method string

// Supported transforms.
const (
	None          Method = ""
	Log           Method = "log"
	Log10         Method = "log10"
	ZeroBoost     Method = "zero-boost"
	SimpleAll     Method = "simple-all"
	SimpleNonzero Method = "simple-nonzero"
	Binarize      Method = "binarize"
)

// Methods lists the accepted method names in display order.
var Methods = []string{
	string(Log), string(Log10), string(Binarize),
	string(ZeroBoost), string(SimpleAll), string(SimpleNonzero),
}

// Validate checks that m is None or a known method.
func (m Method) Validate() error {
	if m == None {
		return nil
	}
	return errors.ValidateOneOf("transform", string(m), Methods)
}

// Apply returns a transformed copy of a.
func Apply(a mat.Matrix, method Method) (*mat.Dense, error) {
	if err := method.Validate(); err != nil {
		return nil, err
	}
	out := mat.DenseCopyOf(a)
	switch method {
	case None:
		return out, nil
	case Log:
		out.Apply(positive(math.Log), out)
	case Log10:
		out.Apply(positive(math.Log10), out)
	case Binarize:
		out.Apply(func(_, _ int, v float64) float64 {
			if v > 0 {
				return 1
			}
			return 0
		}, out)
	default:
		return PassToRanks(out, method)
	}
	return out, nil
}

func positive(f func(float64) float64) func(i, j int, v float64) float64 {
	return func(_, _ int, v float64) float64 {
		if v > 0 {
			return f(v)
		}
		return v
	}
}
