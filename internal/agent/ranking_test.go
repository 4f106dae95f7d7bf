package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarkchat/internal/domain"
	"bookmarkchat/internal/ontology"
)

func TestMostLikedNoTopic(t *testing.T) {
	onto := ontology.Default()
	records := []domain.Record{
		{ID: "1", Text: "first", Likes: 5},
		{ID: "2", Text: "second", Likes: 9},
		{ID: "3", Text: "third", Likes: 9},
	}
	best, ok := MostLiked(records, "show my most liked tweet", onto)
	require.True(t, ok)
	assert.Equal(t, "2", best.ID, "ties resolve to the first record in input order")
}

func TestMostLikedTopicScoped(t *testing.T) {
	onto := ontology.Default()
	records := []domain.Record{
		{ID: "1", Text: "cat pictures", Likes: 100},
		{ID: "2", Text: "cricket highlights", Likes: 10},
		{ID: "3", Text: "ipl final over", Likes: 40},
	}
	best, ok := MostLiked(records, "most liked tweet about cricket", onto)
	require.True(t, ok)
	assert.Equal(t, "3", best.ID)
}

func TestMostLikedAILexiconInclusion(t *testing.T) {
	onto := ontology.Default()
	// "anthropic" is in the AI lexicon but not an "ai" synonym, so only the
	// auxiliary inclusion rule can pick up record 2.
	records := []domain.Record{
		{ID: "1", Text: "gardening tips", Likes: 50},
		{ID: "2", Text: "anthropic released a model", Likes: 20},
	}
	best, ok := MostLiked(records, "most liked ai tweet", onto)
	require.True(t, ok)
	assert.Equal(t, "2", best.ID)
}

func TestMostLikedNoMatch(t *testing.T) {
	onto := ontology.Default()
	_, ok := MostLiked(nil, "most liked tweet", onto)
	assert.False(t, ok)

	zero := []domain.Record{{ID: "1", Text: "meh", Likes: 0}}
	_, ok = MostLiked(zero, "most liked tweet", onto)
	assert.False(t, ok, "all-zero likes is a no-match, not a winner")
}

func TestMostRecent(t *testing.T) {
	_, ok := MostRecent(nil)
	assert.False(t, ok)

	records := []domain.Record{{ID: "newest"}, {ID: "older"}}
	r, ok := MostRecent(records)
	require.True(t, ok)
	assert.Equal(t, "newest", r.ID)
}

func TestTopAuthors(t *testing.T) {
	records := []domain.Record{
		{Author: "A"}, {Author: "A"}, {Author: "B"},
		{Author: "A"}, {Author: "C"}, {Author: "B"},
	}
	top := TopAuthors(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, AuthorCount{Name: "A", Count: 3}, top[0])
	assert.Equal(t, AuthorCount{Name: "B", Count: 2}, top[1])
}

func TestTopAuthorsTieBreakFirstSeen(t *testing.T) {
	records := []domain.Record{
		{Author: "B"}, {Author: "A"}, {Author: "A"}, {Author: "B"},
	}
	top := TopAuthors(records, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "B", top[0].Name, "equal counts keep first-encountered order")
}

func TestApplyThresholds(t *testing.T) {
	onto := ontology.Default()
	records := []domain.Record{
		{ID: "1", Text: "ok", Likes: 5, Views: 100},
		{ID: "2", Text: "ok", Likes: 50, Views: 10},
		{ID: "3", Text: "ok", Likes: 50, Views: 1000},
	}
	got := ApplyThresholds(records, FilterDescriptor{Likes: 10, Views: 100}, onto)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestApplyThresholdsSentiment(t *testing.T) {
	onto := ontology.Default()
	records := []domain.Record{
		{ID: "1", Text: "this is great stuff", Likes: 5},
		{ID: "2", Text: "bland report", Likes: 5},
	}
	got := ApplyThresholds(records, FilterDescriptor{SentimentPositive: true}, onto)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestSortByLikesStable(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Likes: 5}, {ID: "2", Likes: 9}, {ID: "3", Likes: 5},
	}
	got := SortByLikes(records)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "1", got[1].ID)
	assert.Equal(t, "3", got[2].ID)
}

func TestSentimentLadderStrict(t *testing.T) {
	onto := ontology.Default()
	records := []domain.Record{{ID: "1", Text: "xai is great", Likes: 1}}
	got, tier := SentimentLadder(records, FilterDescriptor{SentimentPositive: true}, onto)
	assert.Equal(t, TierStrict, tier)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestSentimentLadderFallback(t *testing.T) {
	onto := ontology.Default()
	records := []domain.Record{{ID: "1", Text: "xai launched", Likes: 1}}
	got, tier := SentimentLadder(records, FilterDescriptor{SentimentPositive: true}, onto)
	assert.Equal(t, TierFallback, tier)
	assert.Len(t, got, 1)
}

func TestSentimentLadderNoMatch(t *testing.T) {
	onto := ontology.Default()
	records := []domain.Record{{ID: "1", Text: "unrelated", Likes: 1}}
	got, tier := SentimentLadder(records, FilterDescriptor{SentimentPositive: true}, onto)
	assert.Equal(t, TierNoMatch, tier)
	assert.Empty(t, got)
}

func TestSentimentLadderAppliesThresholds(t *testing.T) {
	onto := ontology.Default()
	records := []domain.Record{
		{ID: "1", Text: "xai is great", Likes: 1},
		{ID: "2", Text: "llm progress is amazing", Likes: 100},
	}
	got, tier := SentimentLadder(records, FilterDescriptor{SentimentPositive: true, Likes: 50}, onto)
	assert.Equal(t, TierStrict, tier)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestDetectTopicTermPrefersLonger(t *testing.T) {
	onto := ontology.Default()
	term := DetectTopicTerm("what did elon musk say", onto)
	assert.Equal(t, "elon musk", term)
}
