// Package pathway implements the daily emission calculators for each waste
// management pathway: landfill disposal (IPCC first-order decay plus surface
// and pre-disposal releases), enclosed-reactor vermicomposting and open-air
// thermophilic composting.
//
// Every calculator is a pure function from waste properties to two daily
// mass series (kg CH4, kg N2O) over the simulation horizon. Batch emissions
// falling past the horizon are truncated, never wrapped or extended.
package pathway

// Inputs groups the per-run waste properties consumed by the calculators.
type Inputs struct {
	// WasteKgPerDay is the daily batch mass entering the pathway.
	WasteKgPerDay float64
	// Moisture is the wet-basis water mass fraction.
	Moisture float64
	// Temperature of the waste mass in °C.
	Temperature float64
	// DOC is the degradable organic carbon fraction.
	DOC float64
	// ExposedMassKg and ExposedHoursPerDay describe the landfill open face.
	ExposedMassKg      float64
	ExposedHoursPerDay float64
	// OxygenPercent is the ambient O2 concentration during pre-disposal
	// storage.
	OxygenPercent float64
}

func constantSeries(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}
