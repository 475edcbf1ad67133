package vermicarbon

import (
	"fmt"
	"math"
	"time"

	"github.com/ecofluxlab/vermicarbon/model/pathway"
	"github.com/ecofluxlab/vermicarbon/model/profile"
)

// Engine evaluates waste management scenarios over a fixed run
// configuration. It is stateless with respect to the sampled parameters,
// which is what lets the Monte Carlo and Sobol drivers fan evaluations out
// to parallel workers without synchronization.
type Engine struct {
	cfg       Config
	constants pathway.Constants
	profiles  *profile.Library
}

type Option func(*Engine)

func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

func WithConstants(c pathway.Constants) Option {
	return func(e *Engine) {
		e.constants = c
	}
}

func WithProfiles(lib *profile.Library) Option {
	return func(e *Engine) {
		e.profiles = lib
	}
}

// NewEngine builds an engine over the default configuration, literature
// constants and embedded emission profiles, then applies options. Setup
// invariants fail here with a ConfigError, before any sampling begins.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:       DefaultConfig(),
		constants: pathway.Defaults(),
		profiles:  profile.Default(),
	}
	for _, option := range opts {
		option(e)
	}

	switch {
	case e.cfg.HorizonYears < 0:
		return nil, &ConfigError{Reason: fmt.Sprintf("horizon years must not be negative, got %d", e.cfg.HorizonYears)}
	case e.cfg.WasteKgPerDay < 0:
		return nil, &ConfigError{Reason: fmt.Sprintf("waste mass must not be negative, got %g kg/day", e.cfg.WasteKgPerDay)}
	case e.cfg.GWP.CH4 <= 0 || e.cfg.GWP.N2O <= 0:
		return nil, &ConfigError{Reason: "warming potential weights must be positive"}
	case e.profiles == nil:
		return nil, &ConfigError{Reason: "emission profile library is not set"}
	}

	return e, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) inputs(p PhysicalParameters) pathway.Inputs {
	return pathway.Inputs{
		WasteKgPerDay:      e.cfg.WasteKgPerDay,
		Moisture:           p.Moisture,
		Temperature:        p.Temperature,
		DOC:                p.DOC,
		ExposedMassKg:      e.cfg.ExposedMassKg,
		ExposedHoursPerDay: e.cfg.ExposedHoursPerDay,
		OxygenPercent:      e.cfg.OxygenPercent,
	}
}

// PathwaySet holds the daily series of every simulated pathway.
type PathwaySet struct {
	Landfill     PathwayEmissions
	Vermicompost PathwayEmissions
	Thermophilic PathwayEmissions
}

// Pathways computes all three pathway series for one parameter triple.
func (e *Engine) Pathways(params PhysicalParameters) (*PathwaySet, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	in := e.inputs(params)
	horizon := e.cfg.HorizonDays()

	set := new(PathwaySet)
	set.Landfill.CH4, set.Landfill.N2O = pathway.Landfill(in, horizon, e.constants, e.profiles)
	set.Vermicompost.CH4, set.Vermicompost.N2O = pathway.Vermicompost(in, horizon, e.constants, e.profiles)
	set.Thermophilic.CH4, set.Thermophilic.N2O = pathway.Thermophilic(in, horizon, e.constants, e.profiles)
	return set, nil
}

// comparison computes only the two pathways a method needs. This is the hot
// path under the stochastic drivers.
func (e *Engine) comparison(params PhysicalParameters, method Method) (baseline, project PathwayEmissions, err error) {
	if err := params.Validate(); err != nil {
		return baseline, project, err
	}

	in := e.inputs(params)
	horizon := e.cfg.HorizonDays()

	baseline.CH4, baseline.N2O = pathway.Landfill(in, horizon, e.constants, e.profiles)
	switch method {
	case MethodThesis:
		project.CH4, project.N2O = pathway.Vermicompost(in, horizon, e.constants, e.profiles)
	case MethodUNFCCC:
		project.CH4, project.N2O = pathway.Thermophilic(in, horizon, e.constants, e.profiles)
	default:
		return baseline, project, fmt.Errorf("unknown comparison method %d", int(method))
	}
	return baseline, project, nil
}

// AvoidedEmissions is the scalar comparison: baseline minus project
// full-horizon CO2eq totals, in tonnes.
func (e *Engine) AvoidedEmissions(params PhysicalParameters, method Method) (float64, error) {
	baseline, project, err := e.comparison(params, method)
	if err != nil {
		return 0, err
	}

	avoided := baseline.TotalTCO2eq(e.cfg.GWP) - project.TotalTCO2eq(e.cfg.GWP)
	if math.IsNaN(avoided) || math.IsInf(avoided, 0) {
		return 0, &ComputeError{
			Operation: "avoided emissions",
			Err:       fmt.Errorf("non-finite total for params %+v", params),
		}
	}
	return avoided, nil
}

// YearTotal is one calendar year of the annual breakdown.
type YearTotal struct {
	Year             int     `json:"year"`
	AvoidedTCO2eq    float64 `json:"avoided_tco2eq"`
	CumulativeTCO2eq float64 `json:"cumulative_tco2eq"`
}

// ScenarioResult is the deterministic single-scenario report.
type ScenarioResult struct {
	Method             string             `json:"method"`
	Params             PhysicalParameters `json:"params"`
	HorizonDays        int                `json:"horizon_days"`
	BaselineTCO2eq     float64            `json:"baseline_tco2eq"`
	ProjectTCO2eq      float64            `json:"project_tco2eq"`
	TotalAvoidedTCO2eq float64            `json:"total_avoided_tco2eq"`
	Annual             []YearTotal        `json:"annual"`
	DailyAvoided       DailySeries        `json:"-"`
}

// RunScenario evaluates one parameter triple deterministically and returns
// the full report: totals, daily avoided series and the calendar-year
// breakdown. Days group into years by the real date of each simulated day;
// the configured start year shifts labels, never totals.
func (e *Engine) RunScenario(params PhysicalParameters, method Method) (*ScenarioResult, error) {
	baseline, project, err := e.comparison(params, method)
	if err != nil {
		return nil, err
	}

	gwp := e.cfg.GWP
	dailyBaseline := baseline.TCO2eqDaily(gwp)
	dailyProject := project.TCO2eqDaily(gwp)

	avoided := make(DailySeries, len(dailyBaseline))
	for i := range avoided {
		avoided[i] = dailyBaseline[i] - dailyProject[i]
	}

	result := &ScenarioResult{
		Method:         method.String(),
		Params:         params,
		HorizonDays:    e.cfg.HorizonDays(),
		BaselineTCO2eq: baseline.TotalTCO2eq(gwp),
		ProjectTCO2eq:  project.TotalTCO2eq(gwp),
		DailyAvoided:   avoided,
		Annual:         e.annualBreakdown(avoided),
	}
	result.TotalAvoidedTCO2eq = result.BaselineTCO2eq - result.ProjectTCO2eq

	if math.IsNaN(result.TotalAvoidedTCO2eq) || math.IsInf(result.TotalAvoidedTCO2eq, 0) {
		return nil, &ComputeError{
			Operation: "scenario",
			Err:       fmt.Errorf("non-finite total for params %+v", params),
		}
	}
	return result, nil
}

// annualBreakdown partitions the daily series into calendar years by date
// membership, then accumulates across years.
func (e *Engine) annualBreakdown(daily DailySeries) []YearTotal {
	annual := make([]YearTotal, 0, e.cfg.HorizonYears+1)
	date := time.Date(e.cfg.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	cumulative := 0.0

	for _, v := range daily {
		year := date.Year()
		if len(annual) == 0 || annual[len(annual)-1].Year != year {
			annual = append(annual, YearTotal{Year: year})
		}
		last := &annual[len(annual)-1]
		last.AvoidedTCO2eq += v
		cumulative += v
		last.CumulativeTCO2eq = cumulative
		date = date.AddDate(0, 0, 1)
	}
	return annual
}
