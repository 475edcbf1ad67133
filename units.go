package vermicarbon

// Emissions is a gas mass in kilograms.
type Emissions float64

func (e Emissions) Kg() float64 {
	return float64(e)
}

func (e Emissions) Tonnes() float64 {
	return float64(e) / 1000
}

// GWPSet holds the global warming potential weights converting a gas mass
// into CO2-equivalent mass.
type GWPSet struct {
	CH4 float64 `json:"ch4" mapstructure:"ch4"`
	N2O float64 `json:"n2o" mapstructure:"n2o"`
}

// GWP20 carries the 20-year horizon weights from IPCC AR6.
var GWP20 = GWPSet{CH4: 79.7, N2O: 273}

// TCO2eq converts methane and nitrous oxide masses in kilograms into tonnes
// of CO2 equivalent.
func (g GWPSet) TCO2eq(ch4kg, n2okg float64) float64 {
	return (ch4kg*g.CH4 + n2okg*g.N2O) / 1000
}
