package montecarlo

import (
	"context"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// Valuation converts mean avoided emissions into money. Prices come from
// the active configuration preset.
type Valuation struct {
	Currency       string  `json:"currency"`
	CarbonPriceEUR float64 `json:"carbon_price_eur"`
	ExchangeRate   float64 `json:"exchange_rate"`
}

// SeedRun is the outcome of one full Monte Carlo episode under one seed.
type SeedRun struct {
	Seed       uint64  `json:"seed"`
	MeanTCO2eq float64 `json:"mean_tco2eq"`
	ValueEUR   float64 `json:"value_eur"`
	ValueLocal float64 `json:"value_local"`
}

// RobustnessReport quantifies how much the Monte Carlo outcome depends on
// the seed choice: the across-seed coefficient of variation is a
// second-order uncertainty metric on top of the within-seed distribution.
type RobustnessReport struct {
	Method           string    `json:"method"`
	SamplesPerSeed   int       `json:"samples_per_seed"`
	Currency         string    `json:"currency"`
	Runs             []SeedRun `json:"runs"`
	MeanAcrossSeeds  float64   `json:"mean_across_seeds"`
	StdAcrossSeeds   float64   `json:"std_across_seeds"`
	CoefficientOfVar float64   `json:"coefficient_of_variation_pct"`
}

// Robustness repeats the whole sampling episode under each seed and reports
// the across-seed dispersion. Every episode reseeds from scratch; generator
// state never leaks between episodes.
func (d *Driver) Robustness(ctx context.Context, seeds []uint64, n int, valuation Valuation) (*RobustnessReport, error) {
	if len(seeds) == 0 {
		return nil, fmt.Errorf("robustness analysis needs at least one seed")
	}

	report := &RobustnessReport{
		Method:         d.method.String(),
		SamplesPerSeed: n,
		Currency:       valuation.Currency,
		Runs:           make([]SeedRun, 0, len(seeds)),
	}

	means := make([]float64, 0, len(seeds))
	for _, seed := range seeds {
		samples, err := d.Run(ctx, n, seed)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", seed, err)
		}

		mean := stat.Mean(samples, nil)
		means = append(means, mean)
		report.Runs = append(report.Runs, SeedRun{
			Seed:       seed,
			MeanTCO2eq: mean,
			ValueEUR:   mean * valuation.CarbonPriceEUR,
			ValueLocal: mean * valuation.CarbonPriceEUR * valuation.ExchangeRate,
		})

		slog.Info("robustness episode done", "method", d.method.String(), "seed", seed, "mean_tco2eq", mean)
	}

	report.MeanAcrossSeeds = stat.Mean(means, nil)
	if len(means) > 1 {
		report.StdAcrossSeeds = stat.StdDev(means, nil)
	}
	if report.MeanAcrossSeeds != 0 {
		report.CoefficientOfVar = report.StdAcrossSeeds / report.MeanAcrossSeeds * 100
	}
	return report, nil
}
