package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	vermicarbon "github.com/ecofluxlab/vermicarbon"

	"github.com/ecofluxlab/vermicarbon/internal/montecarlo"
	"github.com/ecofluxlab/vermicarbon/internal/must"
	"github.com/ecofluxlab/vermicarbon/internal/presets"
	"github.com/ecofluxlab/vermicarbon/internal/sobol"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

func main() {
	ctx := context.Background()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])

		flag.PrintDefaults()

		fmt.Fprint(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprint(os.Stderr, "  VERMICARBON_*\n")
		fmt.Fprint(os.Stderr, "        override any config key, e.g. VERMICARBON_PRESET\n")
	}

	flagConfig := ""
	flagPreset := ""
	flagMode := ""
	flagMethod := ""
	flagMoisture := 0.0
	flagTemperature := 0.0
	flagDOC := 0.0
	flagWasteKgPerDay := 0.0
	flagHorizonYears := 0
	flagSamples := 0
	flagSeed := uint64(0)
	flagSobolSamples := 0
	flagLogLevel := ""
	flagLogFormat := ""

	flag.StringVar(&flagConfig, "config", "", "optional yaml config file")
	flag.StringVar(&flagPreset, "preset", "", "deployment preset (brazil, international)")
	flag.StringVar(&flagMode, "mode", "scenario", "analysis to run (scenario, montecarlo, sobol, robustness)")
	flag.StringVar(&flagMethod, "method", "both", "comparison method (thesis, unfccc, both)")
	flag.Float64Var(&flagMoisture, "moisture", 0.85, "waste moisture fraction")
	flag.Float64Var(&flagTemperature, "temperature", 25, "waste temperature in °C")
	flag.Float64Var(&flagDOC, "doc", 0.15, "degradable organic carbon fraction")
	flag.Float64Var(&flagWasteKgPerDay, "waste.kgperday", 0, "waste input in kg/day (0 keeps configured value)")
	flag.IntVar(&flagHorizonYears, "horizon.years", 0, "simulation horizon in years (0 keeps configured value)")
	flag.IntVar(&flagSamples, "montecarlo.samples", 0, "monte carlo sample count (0 keeps configured value)")
	flag.Uint64Var(&flagSeed, "montecarlo.seed", 0, "monte carlo seed (0 keeps configured value)")
	flag.IntVar(&flagSobolSamples, "sobol.samples", 0, "sobol base sample count (0 keeps configured value)")
	flag.StringVar(&flagLogLevel, "log.level", "info", "log severity (debug, info, warn, error)")
	flag.StringVar(&flagLogFormat, "log.format", "text", "log format (text, json)")

	flag.Parse()

	initLogging(flagLogLevel, flagLogFormat)

	settings, err := presets.Load(flagConfig)
	if err != nil {
		slog.Error("failed to load settings", "config", flagConfig, "err", err)
		os.Exit(1)
	}

	if flagPreset != "" {
		settings.Preset = flagPreset
	}
	if flagWasteKgPerDay > 0 {
		settings.Engine.WasteKgPerDay = flagWasteKgPerDay
	}
	if flagHorizonYears > 0 {
		settings.Engine.HorizonYears = flagHorizonYears
	}
	if flagSamples > 0 {
		settings.MonteCarlo.Samples = flagSamples
	}
	if flagSeed > 0 {
		settings.MonteCarlo.Seed = flagSeed
	}
	if flagSobolSamples > 0 {
		settings.Sobol.BaseSamples = flagSobolSamples
	}

	preset, err := settings.ResolvePreset()
	if err != nil {
		slog.Error("failed to resolve preset", "preset", settings.Preset, "err", err)
		os.Exit(1)
	}

	engine, err := vermicarbon.NewEngine(vermicarbon.WithConfig(settings.Engine))
	if err != nil {
		slog.Error("failed to build engine", "err", err)
		os.Exit(1)
	}

	params := vermicarbon.PhysicalParameters{
		Moisture:    flagMoisture,
		Temperature: flagTemperature,
		DOC:         flagDOC,
	}

	methods, err := parseMethods(flagMethod)
	if err != nil {
		slog.Error("invalid method flag", "method", flagMethod, "err", err)
		os.Exit(1)
	}

	slog.Info("starting vermicarbon simulator",
		"mode", flagMode,
		"preset", preset.Name,
		"horizon_years", settings.Engine.HorizonYears,
		"waste_kg_per_day", settings.Engine.WasteKgPerDay)

	report := make(map[string]any, len(methods))
	for _, method := range methods {
		result, err := runMode(ctx, flagMode, engine, method, params, settings, preset)
		if err != nil {
			slog.Error("analysis failed", "mode", flagMode, "method", method.String(), "err", err)
			os.Exit(1)
		}
		report[method.String()] = result
	}

	must.PrintJSON(report)
}

type monteCarloReport struct {
	Method         string           `json:"method"`
	Seed           uint64           `json:"seed"`
	Stats          montecarlo.Stats `json:"stats"`
	Currency       string           `json:"currency"`
	MeanValueEUR   float64          `json:"mean_value_eur"`
	MeanValueLocal float64          `json:"mean_value_local"`
}

func runMode(ctx context.Context, mode string, engine *vermicarbon.Engine, method vermicarbon.Method,
	params vermicarbon.PhysicalParameters, settings *presets.Settings, preset presets.Preset) (any, error) {

	valuation := montecarlo.Valuation{
		Currency:       preset.Currency,
		CarbonPriceEUR: preset.CarbonPriceEUR,
		ExchangeRate:   preset.ExchangeRate,
	}

	switch mode {
	case "scenario":
		return engine.RunScenario(params, method)

	case "montecarlo":
		driver := montecarlo.NewDriver(engine, method)
		samples, err := driver.Run(ctx, settings.MonteCarlo.Samples, settings.MonteCarlo.Seed)
		if err != nil {
			return nil, err
		}
		stats := montecarlo.Describe(samples)
		return &monteCarloReport{
			Method:         method.String(),
			Seed:           settings.MonteCarlo.Seed,
			Stats:          stats,
			Currency:       valuation.Currency,
			MeanValueEUR:   stats.Mean * valuation.CarbonPriceEUR,
			MeanValueLocal: stats.Mean * valuation.CarbonPriceEUR * valuation.ExchangeRate,
		}, nil

	case "robustness":
		seeds := make([]uint64, settings.MonteCarlo.RobustnessSeeds)
		for i := range seeds {
			seeds[i] = uint64(i) + 1
		}
		driver := montecarlo.NewDriver(engine, method)
		return driver.Robustness(ctx, seeds, settings.MonteCarlo.Samples, valuation)

	case "sobol":
		analyzer := sobol.NewAnalyzer(engine, method)
		return analyzer.Run(ctx, settings.Sobol.BaseSamples, settings.Sobol.Seed)
	}

	return nil, fmt.Errorf("unknown mode %q", mode)
}

func parseMethods(s string) ([]vermicarbon.Method, error) {
	if s == "both" {
		return vermicarbon.Methods(), nil
	}
	method, err := vermicarbon.ParseMethod(s)
	if err != nil {
		return nil, err
	}
	return []vermicarbon.Method{method}, nil
}

func initLogging(logLevel string, logFormat string) {
	switch logFormat {
	case "text":
		slog.SetDefault(slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level:   slogLevel(logLevel),
			NoColor: !isatty.IsTerminal(os.Stdout.Fd()),
		})))
	case "json":
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slogLevel(logLevel),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				switch a.Key {
				case slog.LevelKey:
					a.Key = "severity"
					return a
				case slog.MessageKey:
					a.Key = "message"
					return a
				default:
					return a
				}
			},
		})))
	}
}

func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}
