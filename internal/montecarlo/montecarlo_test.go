package montecarlo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	vermicarbon "github.com/ecofluxlab/vermicarbon"
)

func testEngine(t *testing.T) *vermicarbon.Engine {
	t.Helper()

	cfg := vermicarbon.DefaultConfig()
	cfg.HorizonYears = 2
	cfg.StartYear = 2026

	engine, err := vermicarbon.NewEngine(vermicarbon.WithConfig(cfg))
	assert.NoError(t, err)
	return engine
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	driver := NewDriver(testEngine(t), vermicarbon.MethodThesis)

	first, err := driver.Run(t.Context(), 200, 50)
	assert.NoError(t, err)
	second, err := driver.Run(t.Context(), 200, 50)
	assert.NoError(t, err)

	// identical seed reproduces the sample array bit for bit, regardless of
	// worker scheduling
	assert.Equal(t, first, second)

	other, err := driver.Run(t.Context(), 200, 51)
	assert.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestRunSamplesAreFinitePositive(t *testing.T) {
	driver := NewDriver(testEngine(t), vermicarbon.MethodUNFCCC, WithWorkers(4))

	samples, err := driver.Run(t.Context(), 100, 7)
	assert.NoError(t, err)
	assert.Len(t, samples, 100)
	for i, v := range samples {
		assert.Greater(t, v, 0.0, "sample %d", i)
	}
}

func TestRunRejectsNonPositiveCount(t *testing.T) {
	driver := NewDriver(testEngine(t), vermicarbon.MethodThesis)
	_, err := driver.Run(t.Context(), 0, 1)
	assert.Error(t, err)
}

func TestDrawsStayInsidePhysicalDomain(t *testing.T) {
	m := DefaultMarginals()
	for i := range 1000 {
		params := m.draw(3, i)
		assert.NoError(t, params.Validate(), "draw %d", i)
		assert.GreaterOrEqual(t, params.Moisture, m.MoistureLow)
		assert.LessOrEqual(t, params.Moisture, m.MoistureHigh)
		assert.GreaterOrEqual(t, params.DOC, m.DOCLow)
		assert.LessOrEqual(t, params.DOC, m.DOCHigh)
	}
}

func TestDescribe(t *testing.T) {
	samples := make([]float64, 100)
	for i := range samples {
		samples[i] = float64(i + 1)
	}

	stats := Describe(samples)
	assert.Equal(t, 100, stats.N)
	assert.Equal(t, 50.5, stats.Mean)
	assert.Equal(t, 50.0, stats.Median)
	assert.Equal(t, 5.0, stats.P5)
	assert.Equal(t, 95.0, stats.P95)
	assert.Equal(t, 5.0, stats.VaR95)
	assert.Equal(t, 3.0, stats.CVaR95) // mean of {1..5}
	assert.Less(t, stats.CI95Low, stats.P5)
	assert.Greater(t, stats.CI95High, stats.P95)

	assert.Equal(t, Stats{}, Describe(nil))
}

func TestRobustnessAcrossSeeds(t *testing.T) {
	driver := NewDriver(testEngine(t), vermicarbon.MethodThesis)

	valuation := Valuation{Currency: "BRL", CarbonPriceEUR: 80, ExchangeRate: 6.2}
	report, err := driver.Robustness(t.Context(), []uint64{1, 2, 3, 4, 5}, 50, valuation)
	assert.NoError(t, err)

	assert.Len(t, report.Runs, 5)
	assert.Equal(t, "BRL", report.Currency)
	assert.Greater(t, report.MeanAcrossSeeds, 0.0)
	assert.Greater(t, report.StdAcrossSeeds, 0.0)
	assert.Greater(t, report.CoefficientOfVar, 0.0)

	for _, run := range report.Runs {
		assert.InDelta(t, run.MeanTCO2eq*80, run.ValueEUR, 1e-9)
		assert.InDelta(t, run.ValueEUR*6.2, run.ValueLocal, 1e-9)
	}

	_, err = driver.Robustness(t.Context(), nil, 50, valuation)
	assert.Error(t, err)
}
