// Package gmm describes fitted Gaussian mixture models.
//
// Plots consume mixtures through the [Mixture] interface: component means,
// covariances in one of the four usual parameterizations, and hard cluster
// assignments. [Model] is a concrete, JSON-serializable implementation that
// predicts with gonum's multivariate normal densities. Fitting is left to
// other tools; a model fitted elsewhere can be exported as JSON and loaded
// with [ReadModel].
package gmm

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/matzehuels/graphplot/pkg/errors"
)

// CovarianceType names the covariance parameterization of a mixture.
type CovarianceType string

const (
	// Full gives every component its own d×d covariance.
	Full CovarianceType = "full"
	// Tied shares a single d×d covariance across components.
	Tied CovarianceType = "tied"
	// Diag gives every component a diagonal covariance, stored as d variances.
	Diag CovarianceType = "diag"
	// Spherical gives every component a single variance.
	Spherical CovarianceType = "spherical"
)

// CovarianceTypes lists the accepted covariance type names.
var CovarianceTypes = []string{string(Full), string(Tied), string(Diag), string(Spherical)}

// Validate reports whether t is a known covariance type.
func (t CovarianceType) Validate() error {
	return errors.ValidateOneOf("covariance_type", string(t), CovarianceTypes)
}

// Mixture is a fitted Gaussian mixture model.
type Mixture interface {
	// NComponents returns the number of mixture components k.
	NComponents() int

	// Means returns the k×d matrix of component means.
	Means() *mat.Dense

	// CovarianceType returns the parameterization of Covariances.
	CovarianceType() CovarianceType

	// Covariances returns the raw covariance parameters, one flattened row
	// per stored matrix: k rows of d·d values for full, one row of d·d
	// values for tied, k rows of d variances for diag and k rows holding a
	// single variance for spherical.
	Covariances() [][]float64

	// Predict assigns every row of x to a component.
	Predict(x mat.Matrix) ([]int, error)
}

// FullCovariances expands the covariances of m into one d×d matrix per
// component, whatever the stored parameterization.
func FullCovariances(m Mixture) ([]*mat.SymDense, error) {
	k := m.NComponents()
	_, d := m.Means().Dims()
	raw := m.Covariances()

	row := func(i, want int) ([]float64, error) {
		if i >= len(raw) || len(raw[i]) != want {
			return nil, errors.New(errors.ErrCodeDimensionMismatch,
				"%s covariances must have %d values for component %d", m.CovarianceType(), want, i)
		}
		return raw[i], nil
	}

	out := make([]*mat.SymDense, k)
	for i := range out {
		var err error
		var vals []float64
		switch m.CovarianceType() {
		case Full:
			if vals, err = row(i, d*d); err == nil {
				out[i] = symFromDense(d, vals)
			}
		case Tied:
			if vals, err = row(0, d*d); err == nil {
				out[i] = symFromDense(d, vals)
			}
		case Diag:
			if vals, err = row(i, d); err == nil {
				out[i] = diagonal(vals)
			}
		case Spherical:
			if vals, err = row(i, 1); err == nil {
				out[i] = diagonal(repeat(vals[0], d))
			}
		default:
			err = m.CovarianceType().Validate()
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func symFromDense(d int, vals []float64) *mat.SymDense {
	s := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			s.SetSym(i, j, vals[i*d+j])
		}
	}
	return s
}

func diagonal(vals []float64) *mat.SymDense {
	s := mat.NewSymDense(len(vals), nil)
	for i, v := range vals {
		s.SetSym(i, i, v)
	}
	return s
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// =============================================================================
// Model
// =============================================================================

// Model is a fitted mixture stored by value.
type Model struct {
	Type CovarianceType `json:"covariance_type"`

	// Weights are the mixing proportions. Empty means uniform.
	Weights []float64 `json:"weights,omitempty"`

	MeanRows [][]float64 `json:"means"`
	CovRows  [][]float64 `json:"covariances"`
}

// NComponents implements Mixture.
func (m *Model) NComponents() int { return len(m.MeanRows) }

// CovarianceType implements Mixture.
func (m *Model) CovarianceType() CovarianceType { return m.Type }

// Covariances implements Mixture.
func (m *Model) Covariances() [][]float64 { return m.CovRows }

// Means implements Mixture.
func (m *Model) Means() *mat.Dense {
	k := len(m.MeanRows)
	if k == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(k, len(m.MeanRows[0]), nil)
	for i, r := range m.MeanRows {
		out.SetRow(i, r)
	}
	return out
}

// Validate checks that the parameters are consistent.
func (m *Model) Validate() error {
	if err := m.Type.Validate(); err != nil {
		return err
	}
	if len(m.MeanRows) == 0 {
		return errors.New(errors.ErrCodeInvalidValue, "means must have at least one component")
	}
	d := len(m.MeanRows[0])
	if d == 0 {
		return errors.New(errors.ErrCodeInvalidValue, "means must have at least one feature")
	}
	for i, r := range m.MeanRows {
		if len(r) != d {
			return errors.New(errors.ErrCodeDimensionMismatch,
				"mean %d has %d features, want %d", i, len(r), d)
		}
	}
	if len(m.Weights) > 0 {
		if err := errors.ValidateLength("weights", len(m.Weights), len(m.MeanRows)); err != nil {
			return err
		}
	}
	_, err := FullCovariances(m)
	return err
}

// Predict implements Mixture. Every row goes to the component with the
// largest weighted log density.
func (m *Model) Predict(x mat.Matrix) ([]int, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	n, d := x.Dims()
	if want := len(m.MeanRows[0]); d != want {
		return nil, errors.New(errors.ErrCodeDimensionMismatch,
			"data has %d features, model was fitted on %d", d, want)
	}

	covs, err := FullCovariances(m)
	if err != nil {
		return nil, err
	}
	k := m.NComponents()
	comps := make([]*distmv.Normal, k)
	logw := make([]float64, k)
	for i := range comps {
		var ok bool
		comps[i], ok = distmv.NewNormal(m.MeanRows[i], covs[i], nil)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidValue,
				"covariance of component %d is not positive definite", i)
		}
		logw[i] = -math.Log(float64(k))
		if len(m.Weights) > 0 {
			logw[i] = math.Log(m.Weights[i])
		}
	}

	out := make([]int, n)
	row := make([]float64, d)
	scores := make([]float64, k)
	for r := range out {
		mat.Row(row, r, x)
		for i, c := range comps {
			scores[i] = logw[i] + c.LogProb(row)
		}
		out[r] = floats.MaxIdx(scores)
	}
	return out, nil
}

// =============================================================================
// JSON IO
// =============================================================================

// ReadModel decodes and validates a model from r.
func ReadModel(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode model")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadModelFile reads a model from a JSON file.
func ReadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadModel(f)
}

// WriteModel encodes m as indented JSON.
func WriteModel(m *Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}
