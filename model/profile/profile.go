// Package profile holds the emission spreading kernels: for each pathway and
// gas, the fraction of a batch's lifetime emission released on each day
// after the batch enters the system.
package profile

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ecofluxlab/vermicarbon/internal/must"
)

//go:embed data/profiles.csv
var profilesCSV []byte

// ErrDegenerate reports a profile whose raw weights do not carry any mass.
// Normalizing such a profile would produce NaN through 0/0.
var ErrDegenerate = errors.New("profile weights sum to zero")

// Profile is a finite ordered sequence of non-negative daily fractions
// summing to one. Immutable after construction.
type Profile struct {
	name    string
	weights []float64
}

// New normalizes raw literal weights into a Profile. Weights must be
// non-negative and not all zero.
func New(name string, raw []float64) (*Profile, error) {
	sum := 0.0
	for d, w := range raw {
		if w < 0 {
			return nil, fmt.Errorf("profile %s: negative weight %g on day %d", name, w, d)
		}
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("profile %s: %w", name, ErrDegenerate)
	}

	weights := make([]float64, len(raw))
	for d, w := range raw {
		weights[d] = w / sum
	}
	return &Profile{name: name, weights: weights}, nil
}

func (p *Profile) Name() string {
	return p.name
}

// Len is the spreading window in days.
func (p *Profile) Len() int {
	return len(p.weights)
}

// Weight is the fraction of a batch's total emission released on relative
// day d.
func (p *Profile) Weight(d int) float64 {
	return p.weights[d]
}

// Weights returns the normalized kernel. Callers must not mutate it.
func (p *Profile) Weights() []float64 {
	return p.weights
}

// Library groups the six spreading kernels of the simulation.
type Library struct {
	VermicompostCH4 *Profile
	VermicompostN2O *Profile
	ThermophilicCH4 *Profile
	ThermophilicN2O *Profile
	LandfillN2O     *Profile
	PreDisposalN2O  *Profile
}

var defaultLibrary *Library

func init() {
	raw := map[string][]float64{}

	records := csv.NewReader(bytes.NewReader(profilesCSV))
	records.Read() // skip header line
	for {
		record, err := records.Read()
		if err == io.EOF {
			break
		}
		must.NoError(err)

		name := record[0]
		raw[name] = append(raw[name], must.CastFloat64(record[2]))
	}

	lib, err := NewLibrary(raw)
	must.NoError(err)
	defaultLibrary = lib
}

// NewLibrary builds a library from raw weight sequences keyed by profile
// name. Every one of the six kernels must be present and non-degenerate.
func NewLibrary(raw map[string][]float64) (*Library, error) {
	build := func(name string, dst **Profile) error {
		weights, found := raw[name]
		if !found {
			return fmt.Errorf("missing emission profile %q", name)
		}
		p, err := New(name, weights)
		if err != nil {
			return err
		}
		*dst = p
		return nil
	}

	lib := new(Library)
	for name, dst := range map[string]**Profile{
		"vermicompost_ch4": &lib.VermicompostCH4,
		"vermicompost_n2o": &lib.VermicompostN2O,
		"thermophilic_ch4": &lib.ThermophilicCH4,
		"thermophilic_n2o": &lib.ThermophilicN2O,
		"landfill_n2o":     &lib.LandfillN2O,
		"predisposal_n2o":  &lib.PreDisposalN2O,
	} {
		if err := build(name, dst); err != nil {
			return nil, err
		}
	}
	return lib, nil
}

// Default returns the library built from the embedded literature kernels.
func Default() *Library {
	return defaultLibrary
}

// All lists the library kernels, for invariant checks and display.
func (l *Library) All() []*Profile {
	return []*Profile{
		l.VermicompostCH4, l.VermicompostN2O,
		l.ThermophilicCH4, l.ThermophilicN2O,
		l.LandfillN2O, l.PreDisposalN2O,
	}
}
