package diversity

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Ridge is added to the covariance diagonal before factorisation so that
// attributes with no spread (e.g. a column every student answered the same)
// still give a positive definite matrix.
const Ridge = 1e-3

var (
	// ErrEmptySample is returned when a score is requested for no vectors
	ErrEmptySample = errors.New("diversity: empty sample")

	// ErrDimensionMismatch is returned when vectors disagree on length
	ErrDimensionMismatch = errors.New("diversity: dimension mismatch")
)

// Model holds the covariance of the whole student population, factorised so
// that Mahalanobis distances between any two students can be computed.
// A Model is immutable once built and safe to share between readers.
type Model struct {
	dims int
	chol *mat.Cholesky
}

// NewModel builds a Model from the numeric property vectors of every student
// taking part in the run. At least two vectors are required.
func NewModel(population [][]float64) (*Model, error) {
	if len(population) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 students to build a model, got %d", ErrEmptySample, len(population))
	}

	dims := len(population[0])
	if dims == 0 {
		return nil, fmt.Errorf("%w: vectors have no attributes", ErrDimensionMismatch)
	}

	// One row per student, one column per attribute
	data := mat.NewDense(len(population), dims, nil)
	for i, vector := range population {
		if len(vector) != dims {
			return nil, fmt.Errorf("%w: vector %d has %d attributes, expected %d", ErrDimensionMismatch, i, len(vector), dims)
		}
		data.SetRow(i, vector)
	}

	cov := mat.NewSymDense(dims, nil)
	stat.CovarianceMatrix(cov, data, nil)
	for i := 0; i < dims; i++ {
		cov.SetSym(i, i, cov.At(i, i)+Ridge)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, fmt.Errorf("diversity: covariance matrix is not positive definite")
	}

	return &Model{dims: dims, chol: &chol}, nil
}

// Dims returns the number of attributes each vector must have
func (m *Model) Dims() int {
	return m.dims
}

// Distance returns the Mahalanobis distance between two property vectors
func (m *Model) Distance(a, b []float64) (float64, error) {
	if len(a) != m.dims || len(b) != m.dims {
		return 0, fmt.Errorf("%w: got %d and %d attributes, expected %d", ErrDimensionMismatch, len(a), len(b), m.dims)
	}
	return stat.Mahalanobis(mat.NewVecDense(m.dims, a), mat.NewVecDense(m.dims, b), m.chol), nil
}

// Score returns the mean pairwise Mahalanobis distance across the given
// vectors. Higher scores mean a more varied team. A single vector scores 0.
func (m *Model) Score(vectors [][]float64) (float64, error) {
	if len(vectors) == 0 {
		return 0, ErrEmptySample
	}
	if len(vectors) == 1 {
		if len(vectors[0]) != m.dims {
			return 0, fmt.Errorf("%w: got %d attributes, expected %d", ErrDimensionMismatch, len(vectors[0]), m.dims)
		}
		return 0, nil
	}

	total := 0.0
	pairs := 0
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			d, err := m.Distance(vectors[i], vectors[j])
			if err != nil {
				return 0, err
			}
			total += d
			pairs++
		}
	}

	return total / float64(pairs), nil
}
