package pathway

import (
	"math"

	"github.com/ecofluxlab/vermicarbon/model/profile"
)

// DOCf is the fraction of degradable organic carbon that actually
// decomposes, as a linear function of waste temperature (IPCC waste model).
func DOCf(temperature float64) float64 {
	return 0.0147*temperature + 0.28
}

// BatchCH4PotentialKg is the lifetime methane potential of one daily waste
// batch entering the landfill.
func (c Constants) BatchCH4PotentialKg(wasteKgPerDay, doc, temperature float64) float64 {
	return wasteKgPerDay * doc * DOCf(temperature) *
		c.MCF * c.F * methanePerCarbon *
		(1 - c.RecoveredFraction) * (1 - c.OxidationFactor)
}

// DecayKernel is the first-order decay spreading kernel: entry t is the
// fraction of a batch's methane potential released on the t-th day after
// entry. The kernel integrates to 1 as days grows to infinity.
func DecayKernel(annualRate float64, days int) []float64 {
	kernel := make([]float64, days)
	for t := range kernel {
		kernel[t] = math.Exp(-annualRate*float64(t)/365) - math.Exp(-annualRate*float64(t+1)/365)
	}
	return kernel
}

// Landfill computes the baseline daily emission series: first-order decay
// methane generation, open-face/covered surface N2O, and the pre-disposal
// releases occurring before waste reaches the site.
func Landfill(in Inputs, horizonDays int, c Constants, lib *profile.Library) (ch4, n2o []float64) {
	if horizonDays <= 0 {
		return []float64{}, []float64{}
	}

	// Methane: convolve the constant daily potential against the decay
	// kernel. The kernel spans the full horizon, so this path is FFT-backed.
	potential := c.BatchCH4PotentialKg(in.WasteKgPerDay, in.DOC, in.Temperature)
	ch4 = convolve(constantSeries(horizonDays, potential), DecayKernel(c.DecayRatePerYear, horizonDays), horizonDays)

	preCH4 := in.WasteKgPerDay * c.PreDisposalCH4KgPerKgHour * 24
	for i := range ch4 {
		ch4[i] += preCH4
	}

	// Surface N2O: blend open-face and covered factors by the exposed mass
	// fraction, adjusted for moisture against the 55% reference.
	exposure := exposureFraction(in)
	surfaceRate := in.WasteKgPerDay *
		(exposure*c.OpenFaceN2OKgPerKgDay + (1-exposure)*c.CoveredN2OKgPerKgDay) *
		(in.Moisture / c.ReferenceMoisture)
	n2o = convolve(constantSeries(horizonDays, surfaceRate), lib.LandfillN2O.Weights(), horizonDays)

	preN2ORate := in.WasteKgPerDay * c.PreDisposalN2OKgPerKgHour * 24 * c.OxygenFactor(in.OxygenPercent)
	preN2O := convolve(constantSeries(horizonDays, preN2ORate), lib.PreDisposalN2O.Weights(), horizonDays)
	for i := range n2o {
		n2o[i] += preN2O[i]
	}

	return ch4, n2o
}

// exposureFraction is the share of the daily batch actively exposed on the
// open face, capped at 1.
func exposureFraction(in Inputs) float64 {
	if in.WasteKgPerDay <= 0 {
		return 0
	}
	return min(1, (in.ExposedMassKg/in.WasteKgPerDay)*(in.ExposedHoursPerDay/24))
}
