package pathway

// Stoichiometric mass ratios.
const (
	methanePerCarbon        = 16.0 / 12.0
	nitrousOxidePerNitrogen = 44.0 / 28.0
)

// Constants holds the fixed physical coefficients of the emission models.
// They are literature values, configured once per run, never sampled.
type Constants struct {
	// Landfill first-order decay model (IPCC waste model).
	MCF               float64 // methane correction factor for the disposal site
	F                 float64 // CH4 fraction in generated landfill gas
	RecoveredFraction float64 // CH4 captured by gas recovery
	OxidationFactor   float64 // CH4 oxidized in the cover layer
	DecayRatePerYear  float64 // annual decay constant k

	// Landfill surface N2O, kg N2O per kg of waste per day.
	OpenFaceN2OKgPerKgDay float64
	CoveredN2OKgPerKgDay  float64
	// ReferenceMoisture anchors the moisture-ratio adjustment of surface N2O.
	ReferenceMoisture float64

	// Pre-disposal releases, literature rates per kg of waste per hour.
	PreDisposalCH4KgPerKgHour float64
	PreDisposalN2OKgPerKgHour float64
	// O2RegimeFactors adjusts pre-disposal N2O per ambient O2 percent.
	// Unrecognized concentrations fall back to a neutral 1.0.
	O2RegimeFactors map[float64]float64

	// Composting stoichiometry, dry-matter basis.
	TotalOrganicCarbon float64
	TotalNitrogen      float64

	VermicompostCH4CarbonFraction   float64
	VermicompostN2ONitrogenFraction float64
	ThermophilicCH4CarbonFraction   float64
	ThermophilicN2ONitrogenFraction float64
}

// Defaults returns the literature coefficient set used by the reference
// scenario.
func Defaults() Constants {
	return Constants{
		MCF:               1.0,
		F:                 0.5,
		RecoveredFraction: 0.0,
		OxidationFactor:   0.1,
		DecayRatePerYear:  0.17,

		OpenFaceN2OKgPerKgDay: 6.0e-7,
		CoveredN2OKgPerKgDay:  9.6e-8,
		ReferenceMoisture:     0.55,

		PreDisposalCH4KgPerKgHour: 1.2e-8,
		PreDisposalN2OKgPerKgHour: 5.0e-9,
		O2RegimeFactors: map[float64]float64{
			21: 1.0,
			10: 0.62,
			1:  0.24,
		},

		TotalOrganicCarbon: 0.436,
		TotalNitrogen:      0.0245,

		VermicompostCH4CarbonFraction:   0.0021,
		VermicompostN2ONitrogenFraction: 0.0057,
		ThermophilicCH4CarbonFraction:   0.0248,
		ThermophilicN2ONitrogenFraction: 0.0138,
	}
}

// OxygenFactor returns the pre-disposal N2O multiplier for the ambient O2
// concentration. Unknown regimes are neutral.
func (c Constants) OxygenFactor(o2Percent float64) float64 {
	if factor, found := c.O2RegimeFactors[o2Percent]; found {
		return factor
	}
	return 1.0
}
