package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBasic(t *testing.T) {
	data := []byte(`[
		{
			"content": "hello world",
			"author_name": "Alice",
			"author_handle": "@alice",
			"tweet_url": "https://x.com/alice/status/1",
			"tweet_date": "2025-01-02 10:00:00 UTC",
			"likes": 12,
			"retweets": 3,
			"replies": 1,
			"views": 4000
		}
	]`)
	records, err := Normalize(data, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "https://x.com/alice/status/1", r.ID)
	assert.Equal(t, "hello world", r.Text)
	assert.Equal(t, "Alice", r.Author)
	assert.Equal(t, "@alice", r.AuthorHandle)
	assert.Equal(t, 12, r.Likes)
	assert.Equal(t, 4000, r.Views)
}

func TestNormalizeTextFieldPriority(t *testing.T) {
	data := []byte(`[
		{"full_text": "full", "text": "short", "title": "t", "content": "c", "tweet_url": "u1"},
		{"text": "short", "content": "c", "tweet_url": "u2"},
		{"content": "c only", "tweet_url": "u3"}
	]`)
	records, err := Normalize(data, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "full", records[0].Text)
	assert.Equal(t, "short", records[1].Text)
	assert.Equal(t, "c only", records[2].Text)
}

func TestNormalizeDropsInvalid(t *testing.T) {
	data := []byte(`[
		{"content": "N/A", "tweet_url": "u1"},
		{"content": "   ", "tweet_url": "u2"},
		{"author_name": "no text at all", "tweet_url": "u3"},
		{"content": "kept", "tweet_url": "u4"}
	]`)
	records, err := Normalize(data, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "kept", records[0].Text)
}

func TestNormalizeDedupByURL(t *testing.T) {
	data := []byte(`[
		{"content": "first copy", "tweet_url": "u1", "likes": 1},
		{"content": "second copy", "tweet_url": "u1", "likes": 2},
		{"content": "other", "tweet_url": "u2"}
	]`)
	records, err := Normalize(data, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first copy", records[0].Text, "first occurrence wins")
}

func TestNormalizeMalformedMetrics(t *testing.T) {
	data := []byte(`[
		{"content": "a", "tweet_url": "u1", "likes": "not a number", "views": -5},
		{"content": "b", "tweet_url": "u2", "likes": "42"}
	]`)
	records, err := Normalize(data, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].Likes)
	assert.Equal(t, 0, records[0].Views, "negative metrics clamp to zero")
	assert.Equal(t, 42, records[1].Likes, "numeric strings are coerced")
}

func TestNormalizeSynthesizesID(t *testing.T) {
	data := []byte(`[{"content": "no url here"}]`)
	records, err := Normalize(data, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
}

func TestNormalizeAllInvalid(t *testing.T) {
	_, err := Normalize([]byte(`[]`), nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = Normalize([]byte(`[{"content": "N/A"}]`), nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = Normalize([]byte(`not json`), nil)
	assert.Error(t, err)
}

func TestNormalizePreservesOrder(t *testing.T) {
	data := []byte(`[
		{"content": "newest", "tweet_url": "u1"},
		{"content": "middle", "tweet_url": "u2"},
		{"content": "oldest", "tweet_url": "u3"}
	]`)
	records, err := Normalize(data, nil)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "newest", records[0].Text)
	assert.Equal(t, "oldest", records[2].Text)
}
