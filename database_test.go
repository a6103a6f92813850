package medenrich

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/medenrich/ai/mock"
	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/enrichment"
	"github.com/poiesic/medenrich/ingestion"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(filepath.Join(t.TempDir(), "medenrich-db"),
		WithAIProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

func TestDatabaseOpenClose(t *testing.T) {
	db := newTestDatabase(t)
	assert.NotNil(t, db.FragmentRepository())
	assert.NotNil(t, db.Evaluator())
	assert.NoError(t, db.Healthy(context.Background()))
}

func TestDatabaseEndToEnd(t *testing.T) {
	db := newTestDatabase(t)

	processor, err := db.NewProcessor(
		enrichment.WithWorkers(1),
		enrichment.WithPollInterval(5*time.Millisecond),
		enrichment.WithStoreRetry(1, time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, processor.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		processor.Stop(ctx) //nolint:errcheck
	}()

	ing, err := db.NewIngester(processor, ingestion.WithFragmentSize(200))
	require.NoError(t, err)

	document := "The patient presented with acute chest pain radiating to the left arm. " +
		"An electrocardiogram showed ST elevation and troponin levels were elevated. " +
		"The cardiology team initiated treatment for myocardial infarction."

	result, err := ing.Ingest(context.Background(), document, core.PriorityHigh)
	require.NoError(t, err)
	require.NotEmpty(t, result.TaskIDs)

	for _, taskID := range result.TaskIDs {
		require.Eventually(t, func() bool {
			status, err := processor.Status(taskID)
			return err == nil && status == core.TaskCompleted
		}, 5*time.Second, 10*time.Millisecond)
	}

	for _, fragmentID := range result.FragmentIDs {
		fragment, err := db.FragmentRepository().GetFragment(context.Background(), fragmentID)
		require.NoError(t, err)
		assert.True(t, fragment.HasMetadata)
		assert.NotEmpty(t, fragment.Summary)
		assert.NotEmpty(t, fragment.Keywords)
	}
}

func TestDatabaseBackfill(t *testing.T) {
	db := newTestDatabase(t)

	// Store fragments with no tasks, as if enrichment never ran
	_, err := db.FragmentRepository().InsertFragments(context.Background(),
		&core.Fragment{Id: "f1", Contents: "Patient one was diagnosed with hypertension."},
		&core.Fragment{Id: "f2", Contents: "Patient two was diagnosed with type two diabetes."})
	require.NoError(t, err)

	processor, err := db.NewProcessor(
		enrichment.WithWorkers(1),
		enrichment.WithPollInterval(5*time.Millisecond),
		enrichment.WithStoreRetry(1, time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, processor.Start(context.Background()))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		processor.Stop(ctx) //nolint:errcheck
	}()

	backfiller, err := db.NewBackfiller(processor)
	require.NoError(t, err)

	submitted, err := backfiller.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, submitted)

	require.Eventually(t, func() bool {
		pending, err := db.FragmentRepository().ListUnenriched(context.Background(), 0)
		return err == nil && len(pending) == 0
	}, 5*time.Second, 10*time.Millisecond)
}
