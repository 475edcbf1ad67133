// Package vermicarbon estimates greenhouse gas emission reductions from
// enclosed-reactor vermicomposting of organic waste against two baselines:
// open landfill disposal and conventional thermophilic composting under the
// UNFCCC AMS-III.F methodology.
package vermicarbon

import (
	"fmt"
	"time"
)

// PhysicalParameters is the triple of waste properties perturbed by the
// stochastic drivers. Everything else in a run is fixed configuration.
type PhysicalParameters struct {
	// Moisture is the wet-basis water mass fraction, in (0,1).
	Moisture float64 `json:"moisture"`
	// Temperature of the waste mass in °C.
	Temperature float64 `json:"temperature"`
	// DOC is the degradable organic carbon fraction, in (0,1).
	DOC float64 `json:"doc"`
}

// Physical domain limits. Sampled values outside these bounds are clamped by
// the stochastic drivers; explicit caller inputs outside them are rejected.
const (
	MinMoisture    = 1e-3
	MaxMoisture    = 1 - 1e-3
	MinDOC         = 1e-3
	MaxDOC         = 1 - 1e-3
	MinTemperature = -30.0
	MaxTemperature = 80.0
)

// Validate returns a DomainError if any parameter falls outside the
// physically meaningful domain.
func (p PhysicalParameters) Validate() error {
	switch {
	case p.Moisture < MinMoisture || p.Moisture > MaxMoisture:
		return &DomainError{Parameter: "moisture", Value: p.Moisture, Min: MinMoisture, Max: MaxMoisture}
	case p.DOC < MinDOC || p.DOC > MaxDOC:
		return &DomainError{Parameter: "doc", Value: p.DOC, Min: MinDOC, Max: MaxDOC}
	case p.Temperature < MinTemperature || p.Temperature > MaxTemperature:
		return &DomainError{Parameter: "temperature", Value: p.Temperature, Min: MinTemperature, Max: MaxTemperature}
	}
	return nil
}

// Clamp returns a copy with every parameter moved to the nearest boundary of
// its physical domain. The Monte Carlo and Sobol drivers clamp because their
// marginal distributions have tails wider than the physical range.
func (p PhysicalParameters) Clamp() PhysicalParameters {
	return PhysicalParameters{
		Moisture:    clamp(p.Moisture, MinMoisture, MaxMoisture),
		Temperature: clamp(p.Temperature, MinTemperature, MaxTemperature),
		DOC:         clamp(p.DOC, MinDOC, MaxDOC),
	}
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// Method selects which project pathway is compared against the landfill
// baseline.
type Method int

const (
	// MethodThesis compares landfill disposal against enclosed-reactor
	// vermicomposting.
	MethodThesis Method = iota
	// MethodUNFCCC compares landfill disposal against open-air thermophilic
	// composting per AMS-III.F.
	MethodUNFCCC
)

func (m Method) String() string {
	switch m {
	case MethodThesis:
		return "thesis"
	case MethodUNFCCC:
		return "unfccc"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

// ParseMethod maps a method name to its Method value.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "thesis":
		return MethodThesis, nil
	case "unfccc":
		return MethodUNFCCC, nil
	}
	return 0, fmt.Errorf("unknown comparison method %q", s)
}

// Methods lists both comparison methods in display order.
func Methods() []Method {
	return []Method{MethodThesis, MethodUNFCCC}
}

// Config is the fixed run-level configuration shared by every evaluation of
// one simulation. It is immutable once an Engine is built from it; UI-style
// overrides produce a new Config and a new Engine.
type Config struct {
	// WasteKgPerDay is the mass of organic waste entering the system daily.
	WasteKgPerDay float64 `json:"waste_kg_per_day" mapstructure:"waste_kg_per_day"`
	// ExposedMassKg is the waste mass actively exposed on the landfill open
	// face.
	ExposedMassKg float64 `json:"exposed_mass_kg" mapstructure:"exposed_mass_kg"`
	// ExposedHoursPerDay is how long the open face stays uncovered each day.
	ExposedHoursPerDay float64 `json:"exposed_hours_per_day" mapstructure:"exposed_hours_per_day"`
	// HorizonYears is the simulation length; the daily horizon is 365 days
	// per year.
	HorizonYears int `json:"horizon_years" mapstructure:"horizon_years"`
	// StartYear anchors simulated day zero on January 1st of that calendar
	// year. It affects annual breakdown labels only, never totals.
	StartYear int `json:"start_year" mapstructure:"start_year"`
	// OxygenPercent is the ambient O2 concentration during pre-disposal
	// storage. Recognized regimes are 21, 10 and 1.
	OxygenPercent float64 `json:"oxygen_percent" mapstructure:"oxygen_percent"`
	// GWP holds the warming-potential weights used for CO2eq aggregation.
	GWP GWPSet `json:"gwp" mapstructure:"gwp"`
}

// DefaultConfig returns the reference run configuration: 100 kg/day of
// waste, a 20 year horizon starting January 1st of the current year.
func DefaultConfig() Config {
	return Config{
		WasteKgPerDay:      100,
		ExposedMassKg:      50,
		ExposedHoursPerDay: 8,
		HorizonYears:       20,
		StartYear:          time.Now().Year(),
		OxygenPercent:      21,
		GWP:                GWP20,
	}
}

// HorizonDays is the number of simulated days implied by the configured
// year count.
func (c Config) HorizonDays() int {
	return c.HorizonYears * 365
}
