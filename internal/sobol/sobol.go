// Package sobol estimates variance-based global sensitivity indices of the
// avoided-emissions function over the physical parameter box, using a
// Saltelli cross-sampling design on a low-discrepancy sequence.
package sobol

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"

	vermicarbon "github.com/ecofluxlab/vermicarbon"
)

const dims = 3

var paramNames = [dims]string{"moisture", "temperature", "doc"}

// Bounds is the parameter box the sensitivity analysis explores. It is
// deliberately wider than the Monte Carlo marginals: sensitivity is a
// screening question, not an uncertainty propagation.
type Bounds struct {
	MoistureMin, MoistureMax       float64
	TemperatureMin, TemperatureMax float64
	DOCMin, DOCMax                 float64
}

func DefaultBounds() Bounds {
	return Bounds{
		MoistureMin: 0.5, MoistureMax: 0.85,
		TemperatureMin: 25, TemperatureMax: 45,
		DOCMin: 0.15, DOCMax: 0.50,
	}
}

func (b Bounds) spans() [dims][2]float64 {
	return [dims][2]float64{
		{b.MoistureMin, b.MoistureMax},
		{b.TemperatureMin, b.TemperatureMax},
		{b.DOCMin, b.DOCMax},
	}
}

// Index holds the first-order and total-order sensitivity of one parameter.
type Index struct {
	Parameter string  `json:"parameter"`
	S1        float64 `json:"s1"`
	ST        float64 `json:"st"`
}

// Result is the outcome of one sensitivity analysis.
type Result struct {
	Method      string  `json:"method"`
	BaseSamples int     `json:"base_samples"`
	Evaluations int     `json:"evaluations"`
	Variance    float64 `json:"variance"`
	// Indices are sorted descending by total-order index for display.
	Indices []Index `json:"indices"`
	// SecondOrder maps parameter pairs to their interaction index.
	SecondOrder map[string]float64 `json:"second_order"`
}

// Analyzer runs Sobol analyses against one engine and comparison method.
type Analyzer struct {
	engine  *vermicarbon.Engine
	method  vermicarbon.Method
	bounds  Bounds
	workers int
}

type AnalyzerOption func(*Analyzer)

func WithBounds(b Bounds) AnalyzerOption {
	return func(a *Analyzer) {
		a.bounds = b
	}
}

func WithWorkers(n int) AnalyzerOption {
	return func(a *Analyzer) {
		a.workers = n
	}
}

func NewAnalyzer(engine *vermicarbon.Engine, method vermicarbon.Method, opts ...AnalyzerOption) *Analyzer {
	analyzer := &Analyzer{
		engine:  engine,
		method:  method,
		bounds:  DefaultBounds(),
		workers: runtime.NumCPU(),
	}
	for _, option := range opts {
		option(analyzer)
	}
	return analyzer
}

// Run generates the Saltelli design for nBase base samples — n×(2·dims+2)
// engine evaluations — and estimates first-order (Saltelli 2010),
// total-order (Jansen) and second-order indices.
func (a *Analyzer) Run(ctx context.Context, nBase int, seed uint64) (*Result, error) {
	if nBase <= 0 {
		return nil, fmt.Errorf("base sample count must be positive, got %d", nBase)
	}

	design := a.design(nBase, seed)
	evaluations := len(design)

	slog.Debug("evaluating sobol design", "method", a.method.String(), "points", evaluations)

	y := make([]float64, evaluations)
	errg, errgctx := errgroup.WithContext(ctx)
	errg.SetLimit(a.workers)
	for i := range design {
		errg.Go(func() error {
			if err := errgctx.Err(); err != nil {
				return err
			}

			v, err := a.engine.AvoidedEmissions(design[i], a.method)
			if err != nil {
				return fmt.Errorf("design point %d: %w", i, err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &vermicarbon.ComputeError{
					Operation: "sobol evaluation",
					Err:       fmt.Errorf("non-finite value at design point %d (%+v)", i, design[i]),
				}
			}
			y[i] = v
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}

	return a.estimate(nBase, y)
}

// design lays out the evaluation points in blocks of nBase:
// A, AB_0..AB_2, BA_0..BA_2, B. The AB_i block is the A matrix with column i
// replaced from B, and symmetrically for BA_i.
func (a *Analyzer) design(nBase int, seed uint64) []vermicarbon.PhysicalParameters {
	// one 2·dims-dimensional low-discrepancy sample splits into the A and B
	// matrices without cross-correlation
	unitBox := make([]r1.Interval, 2*dims)
	for i := range unitBox {
		unitBox[i] = r1.Interval{Min: 0, Max: 1}
	}
	src := rand.NewPCG(seed, seed)
	halton := samplemv.Halton{Kind: samplemv.Owen, Q: distmv.NewUniform(unitBox, src), Src: src}

	batch := mat.NewDense(nBase, 2*dims, nil)
	halton.Sample(batch)

	spans := a.bounds.spans()
	scale := func(j int, u float64) float64 {
		return spans[j][0] + u*(spans[j][1]-spans[j][0])
	}

	point := func(row int, cols [dims]int) vermicarbon.PhysicalParameters {
		return vermicarbon.PhysicalParameters{
			Moisture:    scale(0, batch.At(row, cols[0])),
			Temperature: scale(1, batch.At(row, cols[1])),
			DOC:         scale(2, batch.At(row, cols[2])),
		}.Clamp()
	}

	aCols := [dims]int{0, 1, 2}
	bCols := [dims]int{3, 4, 5}

	design := make([]vermicarbon.PhysicalParameters, 0, nBase*(2*dims+2))
	for row := 0; row < nBase; row++ {
		design = append(design, point(row, aCols))
	}
	for i := 0; i < dims; i++ {
		cols := aCols
		cols[i] = bCols[i]
		for row := 0; row < nBase; row++ {
			design = append(design, point(row, cols))
		}
	}
	for i := 0; i < dims; i++ {
		cols := bCols
		cols[i] = aCols[i]
		for row := 0; row < nBase; row++ {
			design = append(design, point(row, cols))
		}
	}
	for row := 0; row < nBase; row++ {
		design = append(design, point(row, bCols))
	}
	return design
}

func (a *Analyzer) estimate(nBase int, y []float64) (*Result, error) {
	block := func(i int) []float64 {
		return y[i*nBase : (i+1)*nBase]
	}
	fA := block(0)
	fAB := [dims][]float64{block(1), block(2), block(3)}
	fBA := [dims][]float64{block(4), block(5), block(6)}
	fB := block(2*dims + 1)

	// center on the combined A∪B mean so the estimators lose the offset term
	mu := 0.5 * (stat.Mean(fA, nil) + stat.Mean(fB, nil))
	center := func(s []float64) []float64 {
		c := make([]float64, len(s))
		for i, v := range s {
			c[i] = v - mu
		}
		return c
	}
	cA, cB := center(fA), center(fB)
	variance := stat.Variance(append(append([]float64{}, cA...), cB...), nil)
	if variance == 0 {
		return nil, &vermicarbon.ComputeError{
			Operation: "sobol estimation",
			Err:       fmt.Errorf("output variance is zero over the parameter box"),
		}
	}

	var cAB, cBA [dims][]float64
	for i := 0; i < dims; i++ {
		cAB[i] = center(fAB[i])
		cBA[i] = center(fBA[i])
	}

	result := &Result{
		Method:      a.method.String(),
		BaseSamples: nBase,
		Evaluations: len(y),
		Variance:    variance,
		Indices:     make([]Index, dims),
		SecondOrder: make(map[string]float64, dims*(dims-1)/2),
	}

	n := float64(nBase)
	for i := 0; i < dims; i++ {
		s1, st := 0.0, 0.0
		for j := range cA {
			s1 += cB[j] * (cAB[i][j] - cA[j])
			st += (cA[j] - cAB[i][j]) * (cA[j] - cAB[i][j])
		}
		result.Indices[i] = Index{
			Parameter: paramNames[i],
			S1:        s1 / n / variance,
			ST:        st / (2 * n) / variance,
		}
	}

	for i := 0; i < dims; i++ {
		for j := i + 1; j < dims; j++ {
			vij, vab := 0.0, 0.0
			for k := range cA {
				vij += cBA[i][k] * cAB[j][k]
				vab += cA[k] * cB[k]
			}
			s2 := (vij-vab)/n/variance - result.Indices[i].S1 - result.Indices[j].S1
			result.SecondOrder[paramNames[i]+"*"+paramNames[j]] = s2
		}
	}

	sort.SliceStable(result.Indices, func(i, j int) bool {
		return result.Indices[i].ST > result.Indices[j].ST
	})
	return result, nil
}
