package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupFuzzyMatchesVariants(t *testing.T) {
	preset, err := Lookup("brazil")
	assert.NoError(t, err)
	assert.Equal(t, "BRL", preset.Currency)

	preset, err = Lookup("BR")
	assert.NoError(t, err)
	assert.Equal(t, "brazil", preset.Name)

	preset, err = Lookup("intl")
	assert.NoError(t, err)
	assert.Equal(t, "international", preset.Name)

	_, err = Lookup("moonbase")
	assert.Error(t, err)
}

func TestWithOverrides(t *testing.T) {
	preset, err := Lookup("international")
	assert.NoError(t, err)

	overridden, err := preset.WithOverrides(map[string]any{
		"carbon_price_eur": 95.0,
		"exchange_rate":    5.9,
	})
	assert.NoError(t, err)
	assert.Equal(t, 95.0, overridden.CarbonPriceEUR)
	assert.Equal(t, 5.9, overridden.ExchangeRate)
	// untouched fields keep their preset values
	assert.Equal(t, "EUR", overridden.Currency)

	// the original preset table is never mutated
	assert.Equal(t, 80.0, preset.CarbonPriceEUR)

	_, err = preset.WithOverrides(map[string]any{"not_a_field": 1})
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	settings, err := Load("")
	assert.NoError(t, err)

	assert.Equal(t, "international", settings.Preset)
	assert.Equal(t, 100.0, settings.Engine.WasteKgPerDay)
	assert.Equal(t, 20, settings.Engine.HorizonYears)
	assert.Equal(t, 79.7, settings.Engine.GWP.CH4)
	assert.Equal(t, 1000, settings.MonteCarlo.Samples)
	assert.Equal(t, uint64(50), settings.MonteCarlo.Seed)
	assert.Equal(t, 512, settings.Sobol.BaseSamples)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(path, []byte(`
preset: brazil
preset_overrides:
  carbon_price_eur: 72.5
engine:
  waste_kg_per_day: 250
  horizon_years: 10
montecarlo:
  samples: 200
  seed: 7
`), 0o600)
	assert.NoError(t, err)

	settings, err := Load(path)
	assert.NoError(t, err)

	assert.Equal(t, 250.0, settings.Engine.WasteKgPerDay)
	assert.Equal(t, 10, settings.Engine.HorizonYears)
	assert.Equal(t, 200, settings.MonteCarlo.Samples)
	// unset keys keep their defaults
	assert.Equal(t, 21.0, settings.Engine.OxygenPercent)

	preset, err := settings.ResolvePreset()
	assert.NoError(t, err)
	assert.Equal(t, "brazil", preset.Name)
	assert.Equal(t, 72.5, preset.CarbonPriceEUR)
	assert.Equal(t, 6.2, preset.ExchangeRate)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
