package montecarlo

import (
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes an empirical sample distribution, including the tail-risk
// measures consumed by the financial layer.
type Stats struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`

	P5  float64 `json:"p5"`
	P25 float64 `json:"p25"`
	P75 float64 `json:"p75"`
	P95 float64 `json:"p95"`

	// 95% two-sided confidence interval (2.5 / 97.5 percentiles).
	CI95Low  float64 `json:"ci95_low"`
	CI95High float64 `json:"ci95_high"`

	// VaR95 is the 5th percentile; CVaR95 is the mean of the tail at or
	// below it.
	VaR95  float64 `json:"var95"`
	CVaR95 float64 `json:"cvar95"`
}

// Describe computes summary statistics over a sample array.
func Describe(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}

	sorted := slices.Clone(samples)
	sort.Float64s(sorted)

	quantile := func(p float64) float64 {
		return stat.Quantile(p, stat.Empirical, sorted, nil)
	}

	s := Stats{
		N:        len(samples),
		Mean:     stat.Mean(sorted, nil),
		Median:   quantile(0.5),
		Std:      stat.StdDev(sorted, nil),
		P5:       quantile(0.05),
		P25:      quantile(0.25),
		P75:      quantile(0.75),
		P95:      quantile(0.95),
		CI95Low:  quantile(0.025),
		CI95High: quantile(0.975),
	}
	s.VaR95 = s.P5

	tailSum, tailCount := 0.0, 0
	for _, v := range sorted {
		if v > s.VaR95 {
			break
		}
		tailSum += v
		tailCount++
	}
	s.CVaR95 = tailSum / float64(tailCount)

	return s
}
