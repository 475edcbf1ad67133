package pathway

import "github.com/ecofluxlab/vermicarbon/model/profile"

// CompostBatchTotals is the lifetime CH4 and N2O emitted by one daily batch
// in a composting pathway. Totals are linear in dry matter and the
// pathway-specific carbon and nitrogen conversion fractions.
func (c Constants) CompostBatchTotals(wasteKgPerDay, moisture, ch4CarbonFraction, n2oNitrogenFraction float64) (ch4Kg, n2oKg float64) {
	dry := wasteKgPerDay * (1 - moisture)
	ch4Kg = dry * c.TotalOrganicCarbon * ch4CarbonFraction * methanePerCarbon
	n2oKg = dry * c.TotalNitrogen * n2oNitrogenFraction * nitrousOxidePerNitrogen
	return ch4Kg, n2oKg
}

// Vermicompost computes the project pathway series for enclosed-reactor
// vermicomposting.
func Vermicompost(in Inputs, horizonDays int, c Constants, lib *profile.Library) (ch4, n2o []float64) {
	ch4Batch, n2oBatch := c.CompostBatchTotals(in.WasteKgPerDay, in.Moisture,
		c.VermicompostCH4CarbonFraction, c.VermicompostN2ONitrogenFraction)
	return compost(horizonDays, ch4Batch, n2oBatch, lib.VermicompostCH4, lib.VermicompostN2O)
}

// Thermophilic computes the AMS-III.F baseline series for open-air
// thermophilic composting. Same structural form as vermicomposting with
// hotter-process conversion fractions and a later, sharper emission peak.
func Thermophilic(in Inputs, horizonDays int, c Constants, lib *profile.Library) (ch4, n2o []float64) {
	ch4Batch, n2oBatch := c.CompostBatchTotals(in.WasteKgPerDay, in.Moisture,
		c.ThermophilicCH4CarbonFraction, c.ThermophilicN2ONitrogenFraction)
	return compost(horizonDays, ch4Batch, n2oBatch, lib.ThermophilicCH4, lib.ThermophilicN2O)
}

func compost(horizonDays int, ch4Batch, n2oBatch float64, ch4Profile, n2oProfile *profile.Profile) (ch4, n2o []float64) {
	if horizonDays <= 0 {
		return []float64{}, []float64{}
	}
	ch4 = convolve(constantSeries(horizonDays, ch4Batch), ch4Profile.Weights(), horizonDays)
	n2o = convolve(constantSeries(horizonDays, n2oBatch), n2oProfile.Weights(), horizonDays)
	return ch4, n2o
}
