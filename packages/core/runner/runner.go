// Package runner executes behavior scenarios: ordered sequences of steps
// run until the first failure, with every outcome recorded in a result tree
// and reported live through a notifier.
//
// A Runner is built once per feature and is not safe for concurrent use;
// scenarios run synchronously on the calling goroutine.
package runner

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/storyspec/packages/core/naming"
	"github.com/abdul-hamid-achik/storyspec/packages/core/result"
	"github.com/abdul-hamid-achik/storyspec/packages/notify"
)

var (
	// ErrEmptyFeature is returned by New for a blank feature identifier.
	ErrEmptyFeature = errors.New("feature identifier is empty")

	// ErrDuplicateDescription is returned by New when WithDescription is
	// given more than once.
	ErrDuplicateDescription = errors.New("feature description set more than once")
)

// Step is one unit of behavior within a scenario. A nil error means the
// step passed.
type Step func() error

// Runner owns one feature's result tree and runs scenarios into it.
type Runner struct {
	feature  *result.FeatureResult
	notifier notify.Notifier
}

type config struct {
	description    string
	descriptionSet bool
	notifier       notify.Notifier
}

// Option configures a Runner at construction.
type Option func(*config) error

// WithDescription attaches a free-text feature description. At most one
// description is allowed; a second use fails construction.
func WithDescription(description string) Option {
	return func(c *config) error {
		if c.descriptionSet {
			return ErrDuplicateDescription
		}
		c.description = description
		c.descriptionSet = true
		return nil
	}
}

// WithNotifier replaces the default console notifier.
func WithNotifier(n notify.Notifier) Option {
	return func(c *config) error {
		if n == nil {
			return errors.New("notifier is nil")
		}
		c.notifier = n
		return nil
	}
}

// New creates a runner for one feature. The feature's display name is
// derived from featureID (an identifier such as a fixture type name) via the
// naming package. The notifier is told about the feature immediately.
func New(featureID string, opts ...Option) (*Runner, error) {
	if strings.TrimSpace(featureID) == "" {
		return nil, ErrEmptyFeature
	}

	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("configuring runner: %w", err)
		}
	}
	if cfg.notifier == nil {
		cfg.notifier = notify.NewConsoleNotifier()
	}

	r := &Runner{
		feature:  result.NewFeatureResult(naming.Format(featureID), cfg.description),
		notifier: cfg.notifier,
	}
	r.notifier.FeatureStarted(r.feature.Name(), r.feature.Description())
	return r, nil
}

// Feature returns the result tree built so far. Callers must treat it as
// read-only.
func (r *Runner) Feature() *result.FeatureResult {
	return r.feature
}

// Run executes steps under a scenario named after the calling function.
// The name is captured from the immediate caller's identifier, so wrapping
// Run in a helper names the scenario after the helper; use RunScenario with
// an explicit name in that case.
func (r *Runner) Run(steps ...Step) error {
	name := ""
	if pc, _, _, ok := runtime.Caller(1); ok {
		name = naming.Format(naming.NameForPC(pc))
	}
	if name == "" {
		name = "unnamed scenario"
	}
	return r.RunScenario(name, steps...)
}

// RunScenario executes steps in order under the given scenario name. The
// first failing step stops the run; steps after it are never attempted and
// stay not-run. Whatever happens, the scenario's result is appended to the
// feature and the notifier is told it finished, and the step's failure is
// then returned to the caller.
func (r *Runner) RunScenario(name string, steps ...Step) error {
	r.notifier.ScenarioStarted(name)

	records := make([]*result.StepResult, len(steps))
	for i, step := range steps {
		records[i] = result.NewStepResult(stepName(step, i+1), i+1)
	}

	start := time.Now()
	defer func() {
		scenario := result.NewScenarioResult(name, records, time.Since(start))
		r.feature.Append(scenario)
		r.notifier.ScenarioFinished(scenario.Status())
	}()

	total := len(steps)
	for i, step := range steps {
		rec := records[i]
		r.notifier.StepStarted(rec.Name(), rec.Ordinal(), total)

		stepStart := time.Now()
		if err := invoke(step); err != nil {
			_ = rec.Fail(err, time.Since(stepStart))
			return fmt.Errorf("scenario %q: step %d %q: %w", name, rec.Ordinal(), rec.Name(), err)
		}
		_ = rec.Pass(time.Since(stepStart))
	}
	return nil
}

// invoke runs one step, converting a panic into an error so the failure is
// recorded and returned instead of unwinding past the bookkeeping.
func invoke(step Step) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &PanicError{Value: rec, Stack: stack()}
		}
	}()
	if step == nil {
		return errors.New("step is nil")
	}
	return step()
}

// stepName derives a step's display name from its function identifier,
// falling back to the ordinal for closures.
func stepName(step Step, ordinal int) string {
	if id := naming.FuncName(step); id != "" {
		return naming.Format(id)
	}
	return fmt.Sprintf("step %d", ordinal)
}

// PanicError is the failure detail recorded when a step panics.
type PanicError struct {
	Value any
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("step panicked: %v", e.Value)
}

func stack() string {
	buf := make([]byte, 16*1024)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}
