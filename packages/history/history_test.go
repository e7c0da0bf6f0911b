package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/storyspec/packages/core/result"
	"github.com/abdul-hamid-achik/storyspec/packages/output"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func passingDocument(t *testing.T, feature string) *output.Document {
	t.Helper()
	f := result.NewFeatureResult(feature, "")
	step := result.NewStepResult("Given a thing", 1)
	require.NoError(t, step.Pass(time.Millisecond))
	f.Append(result.NewScenarioResult("works", []*result.StepResult{step}, time.Millisecond))
	return output.NewDocument(f)
}

func failingDocument(t *testing.T, feature string) *output.Document {
	t.Helper()
	f := result.NewFeatureResult(feature, "")
	step := result.NewStepResult("Given a thing", 1)
	require.NoError(t, step.Fail(errors.New("boom"), time.Millisecond))
	f.Append(result.NewScenarioResult("breaks", []*result.StepResult{step}, time.Millisecond))
	return output.NewDocument(f)
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := newTestStore(t)

	doc := passingDocument(t, "Funds transfer")
	id, err := store.Save(doc)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := store.Load(id)
	require.NoError(t, err)
	assert.Equal(t, doc.Summary, loaded.Summary)
	assert.Equal(t, doc.Features, loaded.Features)
}

func TestStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_List(t *testing.T) {
	store := newTestStore(t)

	first := passingDocument(t, "Funds transfer")
	first.Time = time.Now().Add(-time.Hour).Format(time.RFC3339)
	_, err := store.Save(first)
	require.NoError(t, err)

	second := failingDocument(t, "Account closing")
	second.Time = time.Now().Format(time.RFC3339)
	secondID, err := store.Save(second)
	require.NoError(t, err)

	records, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Newest first.
	assert.Equal(t, secondID, records[0].ID)
	assert.Equal(t, []string{"Account closing"}, records[0].FeatureNames)
	assert.Equal(t, 1, records[0].Summary.ScenariosFailed)
	assert.Equal(t, []string{"Funds transfer"}, records[1].FeatureNames)
	assert.False(t, records[1].CreatedAt.IsZero())

	limited, err := store.List(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, secondID, limited[0].ID)
}

func TestStore_Summary(t *testing.T) {
	store := newTestStore(t)

	sum, err := store.Summary()
	require.NoError(t, err)
	assert.Equal(t, output.Summary{}, sum)

	_, err = store.Save(passingDocument(t, "Funds transfer"))
	require.NoError(t, err)
	_, err = store.Save(failingDocument(t, "Account closing"))
	require.NoError(t, err)

	sum, err = store.Summary()
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Features)
	assert.Equal(t, 2, sum.Scenarios)
	assert.Equal(t, 1, sum.ScenariosPassed)
	assert.Equal(t, 1, sum.ScenariosFailed)
	assert.Equal(t, 2, sum.Steps)
	assert.False(t, sum.Passed())
}
