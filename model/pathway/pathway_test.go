package pathway

import (
	"testing"

	"github.com/ecofluxlab/vermicarbon/model/profile"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func testInputs() Inputs {
	return Inputs{
		WasteKgPerDay:      100,
		Moisture:           0.85,
		Temperature:        25,
		DOC:                0.15,
		ExposedMassKg:      50,
		ExposedHoursPerDay: 8,
		OxygenPercent:      21,
	}
}

func TestDecayKernelConvergesToPotential(t *testing.T) {
	c := Defaults()

	// the kernel integrates to 1 over infinite time
	kernel := DecayKernel(c.DecayRatePerYear, 365*200)
	assert.InDelta(t, 1.0, floats.Sum(kernel), 1e-9)

	// a finite horizon always emits less than the batch potential
	potential := c.BatchCH4PotentialKg(100, 0.15, 25)
	delta := convolve([]float64{potential}, DecayKernel(c.DecayRatePerYear, 20*365), 20*365)
	assert.Less(t, floats.Sum(delta), potential)
	assert.InDelta(t, potential, floats.Sum(delta), potential*0.05)
}

func TestBatchCH4PotentialMonotonicInDOC(t *testing.T) {
	c := Defaults()
	prev := 0.0
	for _, doc := range []float64{0.05, 0.10, 0.15, 0.20, 0.40} {
		potential := c.BatchCH4PotentialKg(100, doc, 25)
		assert.Greater(t, potential, prev)
		prev = potential
	}
}

func TestCompostMassConservationPerBatch(t *testing.T) {
	c := Defaults()
	lib := profile.Default()

	ch4Batch, n2oBatch := c.CompostBatchTotals(100, 0.85,
		c.VermicompostCH4CarbonFraction, c.VermicompostN2ONitrogenFraction)
	assert.Greater(t, ch4Batch, 0.0)
	assert.Greater(t, n2oBatch, 0.0)

	// a single batch spread over a horizon longer than the profile window
	// emits exactly its batch total
	spread := convolve([]float64{ch4Batch}, lib.VermicompostCH4.Weights(), 100)
	assert.InDelta(t, ch4Batch, floats.Sum(spread), 1e-12)

	spread = convolve([]float64{n2oBatch}, lib.ThermophilicN2O.Weights(), 100)
	assert.InDelta(t, n2oBatch, floats.Sum(spread), 1e-12)
}

func TestBoundaryTruncation(t *testing.T) {
	c := Defaults()
	lib := profile.Default()

	// a batch entering the last simulated day contributes only its day-0
	// profile fraction
	ch4, n2o := Vermicompost(testInputs(), 1, c, lib)
	assert.Len(t, ch4, 1)
	assert.Len(t, n2o, 1)

	ch4Batch, n2oBatch := c.CompostBatchTotals(100, 0.85,
		c.VermicompostCH4CarbonFraction, c.VermicompostN2ONitrogenFraction)
	assert.InDelta(t, ch4Batch*lib.VermicompostCH4.Weight(0), ch4[0], 1e-12)
	assert.InDelta(t, n2oBatch*lib.VermicompostN2O.Weight(0), n2o[0], 1e-12)
}

func TestZeroHorizonReturnsEmptySeries(t *testing.T) {
	c := Defaults()
	lib := profile.Default()

	for _, calc := range []func(Inputs, int, Constants, *profile.Library) ([]float64, []float64){
		Landfill, Vermicompost, Thermophilic,
	} {
		ch4, n2o := calc(testInputs(), 0, c, lib)
		assert.Empty(t, ch4)
		assert.Empty(t, n2o)
	}
}

func TestLandfillSeriesShape(t *testing.T) {
	c := Defaults()
	lib := profile.Default()
	horizon := 5 * 365

	ch4, n2o := Landfill(testInputs(), horizon, c, lib)
	assert.Len(t, ch4, horizon)
	assert.Len(t, n2o, horizon)

	// methane accumulates as more batches decay
	assert.Greater(t, ch4[horizon-1], ch4[10])
	for i, v := range n2o {
		assert.GreaterOrEqual(t, v, 0.0, "day %d", i)
	}
}

func TestOxygenRegimeFallback(t *testing.T) {
	c := Defaults()
	assert.Equal(t, 1.0, c.OxygenFactor(21))
	assert.Equal(t, 0.62, c.OxygenFactor(10))
	assert.Equal(t, 0.24, c.OxygenFactor(1))
	assert.Equal(t, 1.0, c.OxygenFactor(15))
}

func TestExposureFractionCappedAtOne(t *testing.T) {
	in := testInputs()
	in.ExposedMassKg = 10_000
	in.ExposedHoursPerDay = 24
	assert.Equal(t, 1.0, exposureFraction(in))

	in.ExposedMassKg = 0
	assert.Equal(t, 0.0, exposureFraction(in))
}
