package output

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/storyspec/packages/core/result"
)

// fixtureFeature builds a feature with one passing and one failing scenario;
// the failing scenario stopped at step 2 of 3.
func fixtureFeature(t *testing.T) *result.FeatureResult {
	t.Helper()

	f := result.NewFeatureResult("Funds transfer", "Moving money between accounts")

	s1 := result.NewStepResult("Given an empty account", 1)
	require.NoError(t, s1.Pass(10*time.Millisecond))
	s2 := result.NewStepResult("When funds arrive", 2)
	require.NoError(t, s2.Pass(20*time.Millisecond))
	f.Append(result.NewScenarioResult("Happy path", []*result.StepResult{s1, s2}, 30*time.Millisecond))

	s3 := result.NewStepResult("Given an empty account", 1)
	require.NoError(t, s3.Pass(10*time.Millisecond))
	s4 := result.NewStepResult("Then the balance is wrong", 2)
	require.NoError(t, s4.Fail(errors.New("balance mismatch"), 5*time.Millisecond))
	s5 := result.NewStepResult("Then the account has funds", 3)
	f.Append(result.NewScenarioResult("Wrong balance", []*result.StepResult{s3, s4, s5}, 15*time.Millisecond))

	return f
}

func TestNewDocument(t *testing.T) {
	doc := NewDocument(fixtureFeature(t))

	require.Len(t, doc.Features, 1)
	feature := doc.Features[0]
	assert.Equal(t, "Funds transfer", feature.Name)
	assert.Equal(t, "Moving money between accounts", feature.Description)
	assert.Equal(t, result.StatusFailed, feature.Status)

	require.Len(t, feature.Scenarios, 2)
	assert.Equal(t, result.StatusPassed, feature.Scenarios[0].Status)
	assert.Equal(t, result.StatusFailed, feature.Scenarios[1].Status)

	failing := feature.Scenarios[1]
	require.Len(t, failing.Steps, 3)
	assert.Equal(t, "balance mismatch", failing.Steps[1].Error)
	assert.Equal(t, result.StatusNotRun, failing.Steps[2].Status)
	assert.Empty(t, failing.Steps[2].Error)

	s := doc.Summary
	assert.Equal(t, 1, s.Features)
	assert.Equal(t, 2, s.Scenarios)
	assert.Equal(t, 1, s.ScenariosPassed)
	assert.Equal(t, 1, s.ScenariosFailed)
	assert.Equal(t, 5, s.Steps)
	assert.Equal(t, 3, s.StepsPassed)
	assert.Equal(t, 1, s.StepsFailed)
	assert.Equal(t, 1, s.StepsNotRun)
	assert.False(t, s.Passed())
}

func TestSummary_Add(t *testing.T) {
	a := Summary{Features: 1, Scenarios: 2, ScenariosPassed: 2, Steps: 4, StepsPassed: 4}
	b := Summary{Features: 1, Scenarios: 1, ScenariosFailed: 1, Steps: 3, StepsPassed: 1, StepsFailed: 1, StepsNotRun: 1}

	a.Add(b)
	assert.Equal(t, 2, a.Features)
	assert.Equal(t, 3, a.Scenarios)
	assert.Equal(t, 2, a.ScenariosPassed)
	assert.Equal(t, 1, a.ScenariosFailed)
	assert.Equal(t, 7, a.Steps)
	assert.False(t, a.Passed())
}

func TestJSONFormatter_RoundTrip(t *testing.T) {
	doc := NewDocument(fixtureFeature(t))

	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))
	require.NoError(t, f.Format(doc))

	parsed, err := ParseDocument(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, doc.Summary, parsed.Summary)
	assert.Equal(t, doc.Features, parsed.Features)
}

func TestParseDocument_Invalid(t *testing.T) {
	_, err := ParseDocument([]byte("not json"))
	assert.Error(t, err)
}

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))
	require.NoError(t, f.Format(NewDocument(fixtureFeature(t))))

	out := buf.String()
	assert.Contains(t, out, "Feature: Funds transfer")
	assert.Contains(t, out, "Scenario: Happy path")
	assert.Contains(t, out, "✓ Given an empty account")
	assert.Contains(t, out, "✗ Then the balance is wrong")
	assert.Contains(t, out, "→ balance mismatch")
	assert.Contains(t, out, "- Then the account has funds")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
	assert.Contains(t, out, "1 not run")
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(TextWithWriter(&buf))
	require.NoError(t, f.Format(NewDocument(fixtureFeature(t))))

	out := buf.String()
	assert.Contains(t, out, "Feature: Funds transfer")
	assert.Contains(t, out, "Scenario: Wrong balance [failed]")
	assert.Contains(t, out, "x 2. Then the balance is wrong")
	assert.Contains(t, out, "+ 1. Given an empty account")
	assert.Contains(t, out, "1 features, 2 scenarios (1 passed, 1 failed), 5 steps")
}

func TestJUnitFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf))
	require.NoError(t, f.Format(NewDocument(fixtureFeature(t))))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal([]byte(out[strings.Index(out, "<testsuites"):]), &suites))
	assert.Equal(t, 2, suites.Tests)
	assert.Equal(t, 1, suites.Failures)

	require.Len(t, suites.TestSuites, 1)
	suite := suites.TestSuites[0]
	assert.Equal(t, "Funds transfer", suite.Name)
	require.Len(t, suite.TestCases, 2)
	assert.Nil(t, suite.TestCases[0].Failure)
	require.NotNil(t, suite.TestCases[1].Failure)
	assert.Contains(t, suite.TestCases[1].Failure.Content, "balance mismatch")
}

func TestTAPFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTAPFormatter(TAPWithWriter(&buf))
	require.NoError(t, f.Format(NewDocument(fixtureFeature(t))))

	out := buf.String()
	assert.Contains(t, out, "TAP version 13")
	assert.Contains(t, out, "1..2")
	assert.Contains(t, out, "ok 1 - Funds transfer - Happy path")
	assert.Contains(t, out, "not ok 2 - Funds transfer - Wrong balance")
	assert.Contains(t, out, "message: balance mismatch")
}
