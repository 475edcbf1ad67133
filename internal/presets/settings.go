package presets

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	vermicarbon "github.com/ecofluxlab/vermicarbon"
)

// Settings is the full run configuration resolved from defaults, an
// optional config file and environment variables. It is an immutable
// snapshot: reloading produces a new value, never mutates a shared one.
type Settings struct {
	Preset          string             `mapstructure:"preset"`
	PresetOverrides map[string]any     `mapstructure:"preset_overrides"`
	Engine          vermicarbon.Config `mapstructure:"engine"`
	MonteCarlo      MonteCarloSettings `mapstructure:"montecarlo"`
	Sobol           SobolSettings      `mapstructure:"sobol"`
}

type MonteCarloSettings struct {
	Samples         int    `mapstructure:"samples"`
	Seed            uint64 `mapstructure:"seed"`
	RobustnessSeeds int    `mapstructure:"robustness_seeds"`
}

type SobolSettings struct {
	BaseSamples int    `mapstructure:"base_samples"`
	Seed        uint64 `mapstructure:"seed"`
}

// Load resolves settings. An empty path keeps defaults and environment
// overrides only.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VERMICARBON")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &settings, nil
}

// ResolvePreset returns the configured preset with file overrides applied.
func (s *Settings) ResolvePreset() (Preset, error) {
	preset, err := Lookup(s.Preset)
	if err != nil {
		return Preset{}, err
	}
	if len(s.PresetOverrides) == 0 {
		return preset, nil
	}
	return preset.WithOverrides(s.PresetOverrides)
}

func setDefaults(v *viper.Viper) {
	cfg := vermicarbon.DefaultConfig()

	v.SetDefault("preset", "international")

	v.SetDefault("engine.waste_kg_per_day", cfg.WasteKgPerDay)
	v.SetDefault("engine.exposed_mass_kg", cfg.ExposedMassKg)
	v.SetDefault("engine.exposed_hours_per_day", cfg.ExposedHoursPerDay)
	v.SetDefault("engine.horizon_years", cfg.HorizonYears)
	v.SetDefault("engine.start_year", time.Now().Year())
	v.SetDefault("engine.oxygen_percent", cfg.OxygenPercent)
	v.SetDefault("engine.gwp.ch4", cfg.GWP.CH4)
	v.SetDefault("engine.gwp.n2o", cfg.GWP.N2O)

	v.SetDefault("montecarlo.samples", 1000)
	v.SetDefault("montecarlo.seed", 50)
	v.SetDefault("montecarlo.robustness_seeds", 10)

	v.SetDefault("sobol.base_samples", 512)
	v.SetDefault("sobol.seed", 50)
}
