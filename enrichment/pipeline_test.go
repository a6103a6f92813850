package enrichment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/medenrich/ai"
	"github.com/poiesic/medenrich/ai/mock"
	"github.com/poiesic/medenrich/core"
	"github.com/poiesic/medenrich/quality"
)

const testPassage = "The patient presented with acute chest pain radiating to the left arm. " +
	"An electrocardiogram showed ST elevation and troponin levels were elevated. " +
	"The cardiology team initiated treatment for myocardial infarction."

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPipeline(summarizer *mock.MockSummarizer, extractor *mock.MockKeywordExtractor) *pipeline {
	return newPipeline(summarizer, extractor, quality.NewEvaluator(nil), 200, 10, discardLogger())
}

func pipelineTask(text string) *core.Task {
	return &core.Task{
		Id:         uuid.New(),
		FragmentID: "frag-1",
		Text:       text,
		Priority:   core.PriorityMedium,
		Status:     core.TaskProcessing,
		MaxRetries: 3,
	}
}

func TestPipelineBothServicesSucceed(t *testing.T) {
	summarizer := mock.NewMockSummarizer()
	extractor := mock.NewMockKeywordExtractor()
	pl := newTestPipeline(summarizer, extractor)

	result, err := pl.run(context.Background(), pipelineTask(testPassage))
	require.NoError(t, err)

	assert.Equal(t, "frag-1", result.FragmentID)
	assert.NotEmpty(t, result.Summary)
	assert.Equal(t, core.MethodService, result.SummaryMethod)
	assert.NotEmpty(t, result.Keywords)
	assert.Equal(t, core.MethodService, result.KeywordMethod)
	assert.Len(t, result.KeywordScores, len(result.Keywords))
	assert.False(t, result.ProcessedAt.IsZero())
	assert.Greater(t, result.SummaryQuality.Overall, 0.0)
	assert.Greater(t, result.KeywordQuality.Overall, 0.0)
}

func TestPipelineSummaryServiceUnavailable(t *testing.T) {
	summarizer := mock.NewMockSummarizer().WithSummarizeFunc(
		func(ctx context.Context, text string, maxLength int) (string, error) {
			return "", errors.New("connection refused")
		})
	extractor := mock.NewMockKeywordExtractor()
	pl := newTestPipeline(summarizer, extractor)

	result, err := pl.run(context.Background(), pipelineTask(testPassage))
	require.NoError(t, err)

	assert.Equal(t, core.MethodFallback, result.SummaryMethod)
	assert.NotEmpty(t, result.Summary)
	assert.LessOrEqual(t, len(result.Summary), 200)
	// The keyword branch is an independent failure domain
	assert.Equal(t, core.MethodService, result.KeywordMethod)
}

func TestPipelineKeywordServiceUnavailable(t *testing.T) {
	summarizer := mock.NewMockSummarizer()
	extractor := mock.NewMockKeywordExtractor().WithExtractKeywordsFunc(
		func(ctx context.Context, text string) ([]ai.Keyword, error) {
			return nil, errors.New("connection refused")
		})
	pl := newTestPipeline(summarizer, extractor)

	result, err := pl.run(context.Background(), pipelineTask(testPassage))
	require.NoError(t, err)

	assert.Equal(t, core.MethodService, result.SummaryMethod)
	assert.Equal(t, core.MethodFallback, result.KeywordMethod)
	assert.NotEmpty(t, result.Keywords)
	assert.Len(t, result.KeywordScores, len(result.Keywords))
}

func TestPipelineTransientSummaryErrorPropagates(t *testing.T) {
	summarizer := mock.NewMockSummarizer().WithSummarizeFunc(
		func(ctx context.Context, text string, maxLength int) (string, error) {
			return "", ai.ErrTimeout
		})
	extractor := mock.NewMockKeywordExtractor()
	pl := newTestPipeline(summarizer, extractor)

	result, err := pl.run(context.Background(), pipelineTask(testPassage))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ai.ErrTimeout)
}

func TestPipelineTransientKeywordErrorPropagates(t *testing.T) {
	summarizer := mock.NewMockSummarizer()
	extractor := mock.NewMockKeywordExtractor().WithExtractKeywordsFunc(
		func(ctx context.Context, text string) ([]ai.Keyword, error) {
			return nil, ai.ErrRateLimited
		})
	pl := newTestPipeline(summarizer, extractor)

	result, err := pl.run(context.Background(), pipelineTask(testPassage))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ai.ErrRateLimited)
}

func TestPipelineBothBranchesFallBack(t *testing.T) {
	summarizer := mock.NewMockSummarizer().WithSummarizeFunc(
		func(ctx context.Context, text string, maxLength int) (string, error) {
			return "", errors.New("summarizer down")
		})
	extractor := mock.NewMockKeywordExtractor().WithExtractKeywordsFunc(
		func(ctx context.Context, text string) ([]ai.Keyword, error) {
			return nil, errors.New("extractor down")
		})
	pl := newTestPipeline(summarizer, extractor)

	result, err := pl.run(context.Background(), pipelineTask(testPassage))
	require.NoError(t, err)

	assert.Equal(t, core.MethodFallback, result.SummaryMethod)
	assert.Equal(t, core.MethodFallback, result.KeywordMethod)
}
