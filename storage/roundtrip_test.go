package storage_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/askboard/models"
	"github.com/cppla/askboard/storage"
	"github.com/cppla/askboard/store"
)

func TestStoreRoundTripThroughFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "questions.json")
	body := strings.Repeat("long enough body ", 3)

	s, err := store.Open(ctx, storage.NewFile(path))
	require.NoError(t, err)
	q, err := s.CreateQuestion(ctx, store.QuestionDraft{
		Title: "round trip question", Description: body, Tags: []string{"Go", "JSON"}, AuthorID: "me",
	})
	require.NoError(t, err)
	q, err = s.AddAnswer(ctx, q.ID, store.AnswerDraft{Content: body})
	require.NoError(t, err)
	_, err = s.AddAnswer(ctx, q.ID, store.AnswerDraft{Content: body, AuthorID: "you"})
	require.NoError(t, err)
	_, err = s.CastVote(ctx, q.ID, q.Answers[0].ID, "", models.VoteUp)
	require.NoError(t, err)
	_, err = s.CastVote(ctx, q.ID, q.Answers[0].ID, "x", models.VoteUp)
	require.NoError(t, err)
	_, err = s.CastVote(ctx, q.ID, q.Answers[0].ID, "x", models.VoteUp)
	require.NoError(t, err)
	_, err = s.AcceptAnswer(ctx, q.ID, q.Answers[0].ID, "me")
	require.NoError(t, err)

	reloaded, err := store.Open(ctx, storage.NewFile(path))
	require.NoError(t, err)
	assert.Equal(t, s.ListQuestions(), reloaded.ListQuestions())
	assert.Equal(t, s.Snapshot(), reloaded.Snapshot())
}
