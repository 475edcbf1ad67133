package vermicarbon

import "fmt"

// ConfigError reports a degenerate run setup (all-zero emission profile,
// negative horizon). It fails fast, before any sampling begins.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid configuration (%s): %s", e.Reason, e.Err.Error())
	}
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DomainError reports a parameter outside the physically meaningful domain.
type DomainError struct {
	Parameter string
	Value     float64
	Min       float64
	Max       float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("parameter %s=%g outside physical domain [%g, %g]", e.Parameter, e.Value, e.Min, e.Max)
}

// ComputeError reports a non-finite value produced inside a sampling batch.
// The whole batch fails rather than dropping the sample, since dropping
// would bias the estimated distribution.
type ComputeError struct {
	Operation string
	Err       error
}

func (e *ComputeError) Error() string {
	return fmt.Sprintf("computation failed (op: %s): %s", e.Operation, e.Err.Error())
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}
