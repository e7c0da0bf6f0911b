// Package result holds the outcome tree of a behavior run: a feature owns
// scenarios, a scenario owns steps. Parent statuses are always computed from
// children, never stored, so they cannot go stale. The tree is built by the
// runner and read by formatters; nothing outside this package mutates it.
package result

import (
	"errors"
	"fmt"
	"time"
)

// ErrAlreadyRecorded is returned when a step outcome is recorded twice.
var ErrAlreadyRecorded = errors.New("step outcome already recorded")

// Status is the outcome of a step, scenario, or feature.
type Status int

const (
	// StatusNotRun means execution never reached this node.
	StatusNotRun Status = iota
	// StatusPassed means the node (and all its children) succeeded.
	StatusPassed
	// StatusFailed means the node or one of its children failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusNotRun:
		return "not run"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status for JSON and XML payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "not run":
		*s = StatusNotRun
	case "passed":
		*s = StatusPassed
	case "failed":
		*s = StatusFailed
	default:
		return fmt.Errorf("unknown status %q", string(text))
	}
	return nil
}

// rollup derives a parent status from child statuses: failed wins, then
// passed if every child passed (vacuously true for no children), otherwise
// not run.
func rollup(statuses []Status) Status {
	allPassed := true
	for _, s := range statuses {
		switch s {
		case StatusFailed:
			return StatusFailed
		case StatusPassed:
		default:
			allPassed = false
		}
	}
	if allPassed {
		return StatusPassed
	}
	return StatusNotRun
}

// StepResult records the outcome of one step. It is created in the not-run
// state and transitions exactly once to passed or failed.
type StepResult struct {
	name     string
	ordinal  int
	status   Status
	err      error
	duration time.Duration
}

// NewStepResult creates a not-run step record. Ordinal is the step's 1-based
// position within its scenario.
func NewStepResult(name string, ordinal int) *StepResult {
	return &StepResult{name: name, ordinal: ordinal, status: StatusNotRun}
}

// Name returns the step's display name.
func (r *StepResult) Name() string { return r.name }

// Ordinal returns the step's 1-based position within its scenario.
func (r *StepResult) Ordinal() int { return r.ordinal }

// Status returns the recorded outcome.
func (r *StepResult) Status() Status { return r.status }

// Err returns the failure detail, or nil unless the step failed.
func (r *StepResult) Err() error { return r.err }

// Duration returns how long the step ran. Zero for steps never attempted.
func (r *StepResult) Duration() time.Duration { return r.duration }

// Pass records a successful run.
func (r *StepResult) Pass(elapsed time.Duration) error {
	if r.status != StatusNotRun {
		return ErrAlreadyRecorded
	}
	r.status = StatusPassed
	r.duration = elapsed
	return nil
}

// Fail records a failed run with its detail.
func (r *StepResult) Fail(err error, elapsed time.Duration) error {
	if r.status != StatusNotRun {
		return ErrAlreadyRecorded
	}
	r.status = StatusFailed
	r.err = err
	r.duration = elapsed
	return nil
}

// ScenarioResult is the completed outcome of one scenario. It is constructed
// once, after execution finished or stopped at a failing step.
type ScenarioResult struct {
	name     string
	steps    []*StepResult
	duration time.Duration
}

// NewScenarioResult assembles a scenario outcome from the step records in
// ordinal order, however far execution got.
func NewScenarioResult(name string, steps []*StepResult, elapsed time.Duration) *ScenarioResult {
	return &ScenarioResult{name: name, steps: steps, duration: elapsed}
}

// Name returns the scenario's display name.
func (r *ScenarioResult) Name() string { return r.name }

// Steps returns the step records in ordinal order.
func (r *ScenarioResult) Steps() []*StepResult { return r.steps }

// Duration returns the scenario's wall-clock time.
func (r *ScenarioResult) Duration() time.Duration { return r.duration }

// Status computes the scenario outcome from its steps. A scenario with zero
// steps passes vacuously.
func (r *ScenarioResult) Status() Status {
	statuses := make([]Status, len(r.steps))
	for i, s := range r.steps {
		statuses[i] = s.Status()
	}
	return rollup(statuses)
}

// FeatureResult groups the scenario outcomes of one feature. Name and
// description are fixed at construction; scenarios are append-only in
// completion order.
type FeatureResult struct {
	name        string
	description string
	scenarios   []*ScenarioResult
}

// NewFeatureResult creates an empty feature record.
func NewFeatureResult(name, description string) *FeatureResult {
	return &FeatureResult{name: name, description: description}
}

// Name returns the feature's display name.
func (r *FeatureResult) Name() string { return r.name }

// Description returns the optional feature description.
func (r *FeatureResult) Description() string { return r.description }

// Scenarios returns the scenario records in completion order.
func (r *FeatureResult) Scenarios() []*ScenarioResult { return r.scenarios }

// Append adds a completed scenario.
func (r *FeatureResult) Append(s *ScenarioResult) {
	r.scenarios = append(r.scenarios, s)
}

// Status computes the feature outcome from its scenarios.
func (r *FeatureResult) Status() Status {
	statuses := make([]Status, len(r.scenarios))
	for i, s := range r.scenarios {
		statuses[i] = s.Status()
	}
	return rollup(statuses)
}
