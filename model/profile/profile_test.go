package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLibraryNormalization(t *testing.T) {
	for _, p := range Default().All() {
		sum := 0.0
		for d := 0; d < p.Len(); d++ {
			sum += p.Weight(d)
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "profile %s must sum to 1", p.Name())
	}
}

func TestDefaultLibraryWindows(t *testing.T) {
	lib := Default()

	assert.Equal(t, 50, lib.VermicompostCH4.Len())
	assert.Equal(t, 50, lib.VermicompostN2O.Len())
	assert.Equal(t, 50, lib.ThermophilicCH4.Len())
	assert.Equal(t, 50, lib.ThermophilicN2O.Len())
	assert.Equal(t, 5, lib.LandfillN2O.Len())
	assert.Equal(t, 3, lib.PreDisposalN2O.Len())
}

func TestNewNormalizesArbitraryLiterals(t *testing.T) {
	p, err := New("custom", []float64{2, 2, 4})
	assert.NoError(t, err)
	assert.Equal(t, 0.25, p.Weight(0))
	assert.Equal(t, 0.25, p.Weight(1))
	assert.Equal(t, 0.5, p.Weight(2))
}

func TestNewRejectsDegenerateProfiles(t *testing.T) {
	_, err := New("zero", []float64{0, 0, 0})
	assert.ErrorIs(t, err, ErrDegenerate)

	_, err = New("negative", []float64{0.5, -0.1, 0.6})
	assert.Error(t, err)
}

func TestNewLibraryRequiresAllKernels(t *testing.T) {
	_, err := NewLibrary(map[string][]float64{"vermicompost_ch4": {1}})
	assert.Error(t, err)
}
