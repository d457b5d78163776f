package engine

import (
	"context"
	"testing"

	"logsift/analysis"
	"logsift/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackMatchSameSemanticsAsUnits(t *testing.T) {
	logger := testutils.NewTestLogger(t)
	entries := newTestCorpus(400)
	dictionary := newTestDictionary()

	fallbackSummaries, err := fallbackMatch(context.Background(), logger, nil, entries, dictionary)
	require.Nil(t, err)

	// Running the same dictionary as partitioned units and merging must give
	// the same content the fallback produced.
	var partials [][]analysis.CategoryMatchSummary
	for i, batch := range partitionPatterns(dictionary, 4) {
		u := newMatchUnit(logger, nil, i, batch)
		summaries, unitErr := u.matchCorpus(context.Background(), entries, nil)
		u.rxEngine.Close()
		require.Nil(t, unitErr)
		partials = append(partials, summaries)
	}

	merged := mergeSummaries(dictionary, partials)
	fallbackMerged := mergeSummaries(dictionary, [][]analysis.CategoryMatchSummary{fallbackSummaries})

	assert.Equal(t, merged, fallbackMerged)
}

func TestFallbackMatchSkipsInvalidPatterns(t *testing.T) {
	logger := testutils.NewTestLogger(t)
	entries := testutils.SyntheticCorpus(50, map[int]string{
		7: "saw alpha in the payload",
	})
	dictionary := []analysis.PatternRecord{
		newTestPattern("Broken", `(unclosed`, analysis.High),
		newTestPattern("Valid", `alpha`, analysis.Medium),
	}

	summaries, err := fallbackMatch(context.Background(), logger, nil, entries, dictionary)

	require.Nil(t, err)
	require.Equal(t, 1, len(summaries))
	assert.Equal(t, "Valid", summaries[0].Pattern.Category)
	assert.Equal(t, 7, summaries[0].FirstMatch.Position)
}

func TestFallbackMatchCrashComesBackAsError(t *testing.T) {
	logger := testutils.NewTestLogger(t)
	entries := testutils.SyntheticCorpus(10, nil)
	dictionary := []analysis.PatternRecord{
		newTestPattern("Whatever", `alpha`, analysis.High),
	}

	factory := newPanickingEngineFactory("alpha", 1)
	_, err := fallbackMatch(context.Background(), logger, factory, entries, dictionary)

	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "crashed")
}
