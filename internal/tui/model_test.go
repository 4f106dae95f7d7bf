package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarkchat/internal/domain"
)

type fakeResponse struct {
	text  string
	shown []domain.Record
	err   error
}

// fakeEngine replays queued responses and records the search space it was
// handed on each call.
type fakeEngine struct {
	responses []fakeResponse
	spaces    [][]domain.Record
	setSize   int
}

func (f *fakeEngine) Invoke(_ context.Context, _ string, space []domain.Record) (string, []domain.Record, error) {
	f.spaces = append(f.spaces, space)
	i := len(f.spaces) - 1
	if i >= len(f.responses) {
		return "", nil, nil
	}
	r := f.responses[i]
	return r.text, r.shown, r.err
}

func (f *fakeEngine) WorkingSetSize() int {
	if f.setSize == 0 {
		return 5
	}
	return f.setSize
}

func TestAskFollowupUsesWorkingSet(t *testing.T) {
	r1 := domain.Record{ID: "r1", Text: "cricket highlights"}
	eng := &fakeEngine{responses: []fakeResponse{
		{text: "here", shown: []domain.Record{r1}},
		{text: "that one", shown: []domain.Record{r1}},
	}}
	m := New(eng, "")
	m = m.ask("tweets about cricket")
	m = m.ask("the most liked one of these")

	require.Len(t, eng.spaces, 2)
	assert.Nil(t, eng.spaces[0])
	assert.Equal(t, []domain.Record{r1}, eng.spaces[1])
}

func TestAskNoMatchClearsWorkingSet(t *testing.T) {
	r1 := domain.Record{ID: "r1", Text: "cricket highlights"}
	eng := &fakeEngine{responses: []fakeResponse{
		{text: "here", shown: []domain.Record{r1}},
		{text: "No bookmarks found related to \"pottery\"."},
		{text: "fine"},
	}}
	m := New(eng, "")
	m = m.ask("tweets about cricket")
	m = m.ask("tweets about pottery")
	m = m.ask("the most liked one of these")

	require.Len(t, eng.spaces, 3)
	assert.Nil(t, eng.spaces[2], "a no-match turn must not leave the earlier records as the follow-up space")
	assert.Empty(t, m.workingSet)
}

func TestAskCapsWorkingSet(t *testing.T) {
	shown := []domain.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	eng := &fakeEngine{
		setSize: 2,
		responses: []fakeResponse{
			{text: "here", shown: shown},
			{text: "that one"},
		},
	}
	m := New(eng, "")
	m = m.ask("tweets about cricket")
	m = m.ask("the last one of these")

	require.Len(t, eng.spaces, 2)
	assert.Equal(t, shown[:2], eng.spaces[1])
}

func TestAskErrorKeepsWorkingSet(t *testing.T) {
	r1 := domain.Record{ID: "r1"}
	eng := &fakeEngine{responses: []fakeResponse{
		{text: "here", shown: []domain.Record{r1}},
		{err: errors.New("connection refused")},
	}}
	m := New(eng, "")
	m = m.ask("tweets about cricket")
	m = m.ask("tweets about crypto")

	assert.Contains(t, m.status, "connection refused")
	assert.Equal(t, []domain.Record{r1}, m.workingSet, "a failed turn leaves the set for a retry")
}

func TestIsFollowup(t *testing.T) {
	assert.True(t, isFollowup("show the most liked one"))
	assert.True(t, isFollowup("what about the ones above"))
	assert.False(t, isFollowup("tweets about cricket"))
}
