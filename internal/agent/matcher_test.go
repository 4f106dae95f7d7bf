package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookmarkchat/internal/domain"
)

func rec(id, text string) domain.Record {
	return domain.Record{ID: id, Text: text}
}

func TestMatchBroadWholeWord(t *testing.T) {
	records := []domain.Record{
		rec("1", "He said nothing of note"),
		rec("2", "AI agents are everywhere"),
		rec("3", "the maid cleaned up"),
	}
	got := MatchBroad(records, []string{"ai"})
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestMatchBroadSearchesAuthorFields(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Text: "launch day", Author: "Elon Musk", AuthorHandle: "@elonmusk"},
		{ID: "2", Text: "unrelated post", Author: "Someone", AuthorHandle: "@someone"},
	}
	got := MatchBroad(records, []string{"musk"})
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestMatchEntityIgnoresAuthorFields(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Text: "launch day", Author: "Elon Musk", AuthorHandle: "@elonmusk"},
		{ID: "2", Text: "Musk announced a new rocket", Author: "Reporter"},
	}
	got := MatchEntity(records, []string{"musk"})
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestMatchPreservesInputOrder(t *testing.T) {
	records := []domain.Record{
		rec("a", "cricket season opener"),
		rec("b", "no sport here"),
		rec("c", "ipl finals tonight"),
		rec("d", "cricket and more cricket"),
	}
	got := MatchBroad(records, []string{"cricket", "ipl"})
	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "c", "d"}, ids)
}

func TestMatchHandleSynonym(t *testing.T) {
	records := []domain.Record{
		{ID: "1", Text: "big news from @elonmusk today", AuthorHandle: "@elonmusk"},
		{ID: "2", Text: "mail me at user@elonmusk.com"},
		{ID: "3", Text: "elonmusk without the at sign"},
	}
	got := MatchBroad(records, []string{"@elonmusk"})
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestMatchHashtagSynonym(t *testing.T) {
	records := []domain.Record{
		rec("1", "#ai is moving fast"),
		rec("2", "plain ai mention"),
		rec("3", "ordinary text"),
	}
	got := MatchBroad(records, []string{"#ai"})
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestMatchEmptySynonyms(t *testing.T) {
	records := []domain.Record{rec("1", "anything")}
	assert.Empty(t, MatchBroad(records, nil))
	assert.Empty(t, MatchBroad(records, []string{"  "}))
}

func TestMatchCaseInsensitive(t *testing.T) {
	records := []domain.Record{rec("1", "Thoughts on MACHINE LEARNING today")}
	got := MatchBroad(records, []string{"machine learning"})
	assert.Len(t, got, 1)
}
