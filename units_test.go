package vermicarbon_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	vermicarbon "github.com/ecofluxlab/vermicarbon"
)

func TestEmissionsConversions(t *testing.T) {
	e := vermicarbon.Emissions(1500)
	assert.Equal(t, 1500.0, e.Kg())
	assert.Equal(t, 1.5, e.Tonnes())
}

func TestGWP20Weights(t *testing.T) {
	assert.Equal(t, 79.7, vermicarbon.GWP20.CH4)
	assert.Equal(t, 273.0, vermicarbon.GWP20.N2O)
}

func TestTCO2eqAggregation(t *testing.T) {
	// 10 kg CH4 and 2 kg N2O: (10*79.7 + 2*273) / 1000
	assert.Equal(t, "1.343000", fmt.Sprintf("%.06f", vermicarbon.GWP20.TCO2eq(10, 2)))
	assert.Equal(t, 0.0, vermicarbon.GWP20.TCO2eq(0, 0))
}
