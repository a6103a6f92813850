package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/storage"
)

func newTestRepo(t *testing.T) *FragmentRepository {
	t.Helper()
	backend, repo, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func testFragment(id, contents string) *core.Fragment {
	return &core.Fragment{
		Id:       id,
		Contents: contents,
	}
}

func testResult(fragmentID string) *core.EnrichmentResult {
	return &core.EnrichmentResult{
		FragmentID:    fragmentID,
		Summary:       "Patient presented with acute chest pain.",
		SummaryMethod: core.MethodService,
		Keywords:      []string{"chest pain", "acute", "patient"},
		KeywordScores: []float64{0.95, 0.8, 0.6},
		KeywordMethod: core.MethodService,
		SummaryQuality: core.QualityScore{
			Overall: 0.55,
			Level:   core.QualityFair,
		},
		KeywordQuality: core.QualityScore{
			Overall: 0.75,
			Level:   core.QualityGood,
		},
		ProcessingTime: 250 * time.Millisecond,
		ProcessedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestInsertFragments(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	fragments := []*core.Fragment{
		testFragment("frag-1", "The patient was diagnosed with hypertension."),
		testFragment("frag-2", "Treatment includes lisinopril 10mg daily."),
	}

	inserted, err := repo.InsertFragments(ctx, fragments...)
	require.NoError(t, err)
	require.Len(t, inserted, 2)

	for _, f := range inserted {
		assert.False(t, f.HasMetadata)
		assert.False(t, f.InsertedAt.IsZero())
		assert.Equal(t, f.InsertedAt, f.UpdatedAt)
	}

	got, err := repo.GetFragment(ctx, "frag-1")
	require.NoError(t, err)
	assert.Equal(t, "The patient was diagnosed with hypertension.", got.Contents)
	assert.False(t, got.HasMetadata)
	assert.Empty(t, got.Summary)
}

func TestInsertFragmentsInvalid(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.InsertFragments(context.Background(), testFragment("frag-1", ""))
	assert.ErrorIs(t, err, core.ErrEmptyContent)
}

func TestGetFragmentNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetFragment(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetFragmentsSkipsMissing(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.InsertFragments(ctx, testFragment("frag-1", "content one"))
	require.NoError(t, err)

	got, err := repo.GetFragments(ctx, "frag-1", "missing", "frag-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestApplyEnrichment(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.InsertFragments(ctx, testFragment("frag-1", "Patient presented with acute chest pain radiating to the left arm."))
	require.NoError(t, err)

	result := testResult("frag-1")
	require.NoError(t, repo.ApplyEnrichment(ctx, result))

	got, err := repo.GetFragment(ctx, "frag-1")
	require.NoError(t, err)
	assert.True(t, got.HasMetadata)
	assert.Equal(t, result.Summary, got.Summary)
	assert.Equal(t, core.MethodService, got.SummaryMethod)
	assert.Equal(t, result.Keywords, got.Keywords)
	assert.Equal(t, result.KeywordScores, got.KeywordScores)
	assert.Equal(t, result.SummaryQuality.Overall, got.SummaryQuality)
	assert.Equal(t, core.QualityFair, got.SummaryLevel)
	assert.Equal(t, result.KeywordQuality.Overall, got.KeywordQuality)
	assert.Equal(t, core.QualityGood, got.KeywordLevel)
	assert.Equal(t, result.ProcessedAt, got.ProcessedAt)
	assert.Equal(t, result.ProcessedAt, got.UpdatedAt)
	// The original content is never touched by enrichment
	assert.Equal(t, "Patient presented with acute chest pain radiating to the left arm.", got.Contents)
}

func TestApplyEnrichmentIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.InsertFragments(ctx, testFragment("frag-1", "Patient presented with acute chest pain."))
	require.NoError(t, err)

	result := testResult("frag-1")
	require.NoError(t, repo.ApplyEnrichment(ctx, result))

	first, err := repo.GetFragment(ctx, "frag-1")
	require.NoError(t, err)

	// A duplicate delivery of the same result must leave the record unchanged
	require.NoError(t, repo.ApplyEnrichment(ctx, result))

	second, err := repo.GetFragment(ctx, "frag-1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestApplyEnrichmentUnknownFragment(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.ApplyEnrichment(context.Background(), testResult("missing"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListUnenriched(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.InsertFragments(ctx,
		testFragment("frag-1", "content one"),
		testFragment("frag-2", "content two"),
		testFragment("frag-3", "content three"),
	)
	require.NoError(t, err)

	pending, err := repo.ListUnenriched(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	require.NoError(t, repo.ApplyEnrichment(ctx, testResult("frag-2")))

	pending, err = repo.ListUnenriched(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, f := range pending {
		assert.False(t, f.HasMetadata)
		assert.NotEqual(t, "frag-2", f.Id)
	}

	limited, err := repo.ListUnenriched(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestCountFragments(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	total, enriched, err := repo.CountFragments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Equal(t, 0, enriched)

	_, err = repo.InsertFragments(ctx,
		testFragment("frag-1", "content one"),
		testFragment("frag-2", "content two"),
	)
	require.NoError(t, err)

	require.NoError(t, repo.ApplyEnrichment(ctx, testResult("frag-1")))

	total, enriched, err = repo.CountFragments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, enriched)
}

func TestDeleteFragments(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.InsertFragments(ctx,
		testFragment("frag-1", "content one"),
		testFragment("frag-2", "content two"),
	)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteFragments(ctx, "frag-1"))

	_, err = repo.GetFragment(ctx, "frag-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Index entry goes with the record
	pending, err := repo.ListUnenriched(ctx, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "frag-2", pending[0].Id)

	err = repo.DeleteFragments(ctx, "frag-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
