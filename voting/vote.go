// Package voting holds the answer vote and acceptance state machine. It does
// no I/O; callers own the answers they pass in.
package voting

import (
	"errors"

	"github.com/cppla/askboard/models"
)

var (
	// ErrInvalidDirection is returned when the requested direction is not
	// an upvote or a downvote.
	ErrInvalidDirection = errors.New("vote direction must be upvote or downvote")
	// ErrAnswerNotFound is returned by Accept when no answer has the id.
	ErrAnswerNotFound = errors.New("answer not found")
)

// Delta returns the score change and resulting direction for a viewer whose
// current vote is current and who requests requested.
//
//	none     + up   -> up,   +1
//	none     + down -> down, -1
//	up       + up   -> none, -1
//	down     + down -> none, +1
//	up       + down -> down, -2
//	down     + up   -> up,   +2
func Delta(current, requested models.VoteDirection) (int, models.VoteDirection, error) {
	if requested != models.VoteUp && requested != models.VoteDown {
		return 0, current, ErrInvalidDirection
	}
	if !current.Valid() {
		current = models.VoteNone
	}
	switch {
	case current == requested:
		return -weight(requested), models.VoteNone, nil
	case current == models.VoteNone:
		return weight(requested), requested, nil
	default:
		return 2 * weight(requested), requested, nil
	}
}

// Apply folds one vote action into a running score.
func Apply(votes int, current, requested models.VoteDirection) (int, models.VoteDirection, error) {
	d, next, err := Delta(current, requested)
	if err != nil {
		return votes, current, err
	}
	return votes + d, next, nil
}

// Accept marks answerID accepted and every other answer not accepted. The
// input slice is left untouched. Accepting the same answer twice yields the
// same result.
func Accept(answers []models.Answer, answerID int64) ([]models.Answer, error) {
	found := false
	out := make([]models.Answer, len(answers))
	for i, a := range answers {
		out[i] = a.Clone()
		out[i].IsAccepted = a.ID == answerID
		if out[i].IsAccepted {
			found = true
		}
	}
	if !found {
		return nil, ErrAnswerNotFound
	}
	return out, nil
}

func weight(d models.VoteDirection) int {
	if d == models.VoteDown {
		return -1
	}
	return 1
}
