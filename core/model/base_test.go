package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/olsstat/pkg/errors"
)

func TestBaseEstimatorLifecycle(t *testing.T) {
	var e BaseEstimator

	assert.Equal(t, NotFitted, e.State())
	assert.False(t, e.IsFitted())

	err := e.RequireFitted("LinearRegression", "Variance")
	require.Error(t, err)
	var nfe *errors.NotFittedError
	require.True(t, errors.As(err, &nfe))
	assert.Equal(t, "Variance", nfe.Method)

	e.SetFitted()
	assert.True(t, e.IsFitted())
	assert.Equal(t, "Fitted", e.State().String())
	assert.NoError(t, e.RequireFitted("LinearRegression", "Variance"))

	e.Reset()
	assert.False(t, e.IsFitted())
}

func TestEstimatorStateString(t *testing.T) {
	assert.Equal(t, "NotFitted", NotFitted.String())
	assert.Equal(t, "Fitted", Fitted.String())
	assert.Equal(t, "Unknown", EstimatorState(7).String())
}
