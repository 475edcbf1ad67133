package vermicarbon

import "gonum.org/v1/gonum/floats"

// DailySeries is the mass of one gas, in kilograms, emitted on each
// simulated day. Series are produced once by a pathway calculator and never
// mutated afterwards.
type DailySeries []float64

func (s DailySeries) Sum() float64 {
	return floats.Sum(s)
}

// Cumulative returns the running sum of the series.
func (s DailySeries) Cumulative() DailySeries {
	out := make(DailySeries, len(s))
	acc := 0.0
	for i, v := range s {
		acc += v
		out[i] = acc
	}
	return out
}

// PathwayEmissions couples the two gas series produced by one waste
// management pathway.
type PathwayEmissions struct {
	CH4 DailySeries
	N2O DailySeries
}

// TCO2eqDaily collapses both gases into a single daily CO2-equivalent
// series, in tonnes.
func (p PathwayEmissions) TCO2eqDaily(gwp GWPSet) DailySeries {
	out := make(DailySeries, len(p.CH4))
	for i := range out {
		out[i] = gwp.TCO2eq(p.CH4[i], p.N2O[i])
	}
	return out
}

// TotalTCO2eq is the full-horizon CO2-equivalent total of the pathway, in
// tonnes.
func (p PathwayEmissions) TotalTCO2eq(gwp GWPSet) float64 {
	return gwp.TCO2eq(floats.Sum(p.CH4), floats.Sum(p.N2O))
}
