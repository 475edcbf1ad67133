// Package presets collapses the localized deployment variants of the
// simulator (Brazilian and international market assumptions) into named
// configuration presets selected at run time.
package presets

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mitchellh/mapstructure"
)

// Preset carries the market and cost assumptions of one deployment variant.
// The emission engine never reads these; they price its outputs.
type Preset struct {
	Name               string  `json:"name" mapstructure:"name"`
	Currency           string  `json:"currency" mapstructure:"currency"`
	CarbonPriceEUR     float64 `json:"carbon_price_eur" mapstructure:"carbon_price_eur"`
	ExchangeRate       float64 `json:"exchange_rate" mapstructure:"exchange_rate"`
	CapexPerTonYearCap float64 `json:"capex_per_ton_year_cap" mapstructure:"capex_per_ton_year_cap"`
	OpexPerTon         float64 `json:"opex_per_ton" mapstructure:"opex_per_ton"`
	CompostPricePerTon float64 `json:"compost_price_per_ton" mapstructure:"compost_price_per_ton"`
}

var builtin = []Preset{
	{
		Name:               "brazil",
		Currency:           "BRL",
		CarbonPriceEUR:     80,
		ExchangeRate:       6.2,
		CapexPerTonYearCap: 420,
		OpexPerTon:         95,
		CompostPricePerTon: 310,
	},
	{
		Name:               "international",
		Currency:           "EUR",
		CarbonPriceEUR:     80,
		ExchangeRate:       1,
		CapexPerTonYearCap: 180,
		OpexPerTon:         38,
		CompostPricePerTon: 65,
	},
}

// Names lists the available presets.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for _, p := range builtin {
		names = append(names, p.Name)
	}
	return names
}

// Lookup fuzzy-finds the best matching preset for a user supplied name.
func Lookup(name string) (Preset, error) {
	ranks := fuzzy.RankFindNormalizedFold(name, Names())
	if len(ranks) == 0 {
		return Preset{}, fmt.Errorf("no preset matches %q, available: %v", name, Names())
	}
	sort.Sort(ranks)
	return builtin[ranks[0].OriginalIndex], nil
}

// WithOverrides returns a copy of the preset with the override map decoded
// on top of it. Unknown keys fail rather than silently vanishing.
func (p Preset) WithOverrides(overrides map[string]any) (Preset, error) {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &p,
		ErrorUnused: true,
	})
	if err != nil {
		return Preset{}, err
	}
	if err := decoder.Decode(overrides); err != nil {
		return Preset{}, fmt.Errorf("invalid preset overrides: %w", err)
	}
	return p, nil
}
