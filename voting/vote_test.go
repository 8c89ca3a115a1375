package voting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/askboard/models"
)

func TestDeltaTable(t *testing.T) {
	tests := []struct {
		name      string
		current   models.VoteDirection
		requested models.VoteDirection
		wantDelta int
		wantNext  models.VoteDirection
	}{
		{"new upvote", models.VoteNone, models.VoteUp, 1, models.VoteUp},
		{"new downvote", models.VoteNone, models.VoteDown, -1, models.VoteDown},
		{"toggle upvote off", models.VoteUp, models.VoteUp, -1, models.VoteNone},
		{"toggle downvote off", models.VoteDown, models.VoteDown, 1, models.VoteNone},
		{"swing up to down", models.VoteUp, models.VoteDown, -2, models.VoteDown},
		{"swing down to up", models.VoteDown, models.VoteUp, 2, models.VoteUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, next, err := Delta(tt.current, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDelta, delta)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

func TestDeltaRejectsNone(t *testing.T) {
	_, next, err := Delta(models.VoteUp, models.VoteNone)
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.Equal(t, models.VoteUp, next)
}

func TestApplySequence(t *testing.T) {
	votes, state := 0, models.VoteNone
	var err error
	for _, d := range []models.VoteDirection{models.VoteUp, models.VoteUp, models.VoteDown} {
		votes, state, err = Apply(votes, state, d)
		require.NoError(t, err)
	}
	assert.Equal(t, -1, votes)
	assert.Equal(t, models.VoteDown, state)
}

func TestApplyScoreIsSumOfDeltas(t *testing.T) {
	seq := []models.VoteDirection{
		models.VoteDown, models.VoteUp, models.VoteUp, models.VoteDown,
		models.VoteDown, models.VoteUp, models.VoteDown, models.VoteDown,
	}
	votes, state := 0, models.VoteNone
	sum := 0
	for _, d := range seq {
		delta, _, err := Delta(state, d)
		require.NoError(t, err)
		sum += delta
		votes, state, err = Apply(votes, state, d)
		require.NoError(t, err)
	}
	assert.Equal(t, sum, votes)
	// One viewer can only move the score within [-1, 1].
	assert.GreaterOrEqual(t, votes, -1)
	assert.LessOrEqual(t, votes, 1)
}

func TestAccept(t *testing.T) {
	answers := []models.Answer{
		{ID: 1, IsAccepted: true},
		{ID: 2},
		{ID: 3},
	}

	out, err := Accept(answers, 2)
	require.NoError(t, err)
	assert.False(t, out[0].IsAccepted)
	assert.True(t, out[1].IsAccepted)
	assert.False(t, out[2].IsAccepted)
	assert.True(t, answers[0].IsAccepted, "input must not be modified")

	again, err := Accept(out, 2)
	require.NoError(t, err)
	assert.Equal(t, out, again)

	accepted := 0
	for _, a := range again {
		if a.IsAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestAcceptUnknownAnswer(t *testing.T) {
	_, err := Accept([]models.Answer{{ID: 1}}, 9)
	assert.ErrorIs(t, err, ErrAnswerNotFound)
}
