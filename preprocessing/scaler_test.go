package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/olsstat/core/model"
	"github.com/YuminosukeSato/olsstat/pkg/errors"
)

var _ model.Transformer = (*StandardScaler)(nil)

func TestStandardScalerFit(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1.0, 10.0,
		2.0, 10.0,
		3.0, 10.0,
		4.0, 10.0,
	})

	s := NewStandardScalerDefault()
	require.NoError(t, s.Fit(X))

	assert.InDelta(t, 2.5, s.Mean[0], 1e-12)
	assert.InDelta(t, 1.25, s.Var[0], 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), s.Scale[0], 1e-12)

	// constant column keeps a unit scale
	assert.InDelta(t, 10.0, s.Mean[1], 1e-12)
	assert.Equal(t, 1.0, s.Scale[1])
	assert.True(t, s.IsConstant(1))
	assert.False(t, s.IsConstant(0))
}

func TestStandardScalerTransformRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1.0, -2.0,
		4.0, 0.5,
		7.0, 3.0,
	})

	s := NewStandardScalerDefault()
	Z, err := s.FitTransform(X)
	require.NoError(t, err)

	col := mat.Col(nil, 0, Z)
	var sum float64
	for _, v := range col {
		sum += v
	}
	assert.InDelta(t, 0.0, sum, 1e-12)

	back, err := s.InverseTransform(Z)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, back, 1e-12))
}

func TestStandardScalerErrors(t *testing.T) {
	s := NewStandardScalerDefault()

	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(1, 3, []float64{1, 2, 3}))
	var de *errors.DimensionError
	assert.True(t, errors.As(err, &de))

	assert.Contains(t, s.String(), "n_features=2")
}

func TestStandardScalerWithoutMean(t *testing.T) {
	s := NewStandardScaler(false, true)
	require.NoError(t, s.Fit(mat.NewDense(2, 1, []float64{1, 3})))

	assert.Equal(t, 0.0, s.Mean[0])
	assert.InDelta(t, 1.0, s.Scale[0], 1e-12)
}
