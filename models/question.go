package models

import "time"

// Question is a posted question together with its answers.
type Question struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	AuthorID    string    `json:"authorId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Answers     []Answer  `json:"answers"`
	IsAnswered  bool      `json:"isAnswered"`
	Views       int       `json:"views"`
}

// Clone returns a deep copy; mutations on the copy never reach q.
func (q Question) Clone() Question {
	out := q
	out.Tags = append([]string{}, q.Tags...)
	out.Answers = make([]Answer, len(q.Answers))
	for i, a := range q.Answers {
		out.Answers[i] = a.Clone()
	}
	return out
}

// FindAnswer returns the index of the answer with the given id, or -1.
func (q Question) FindAnswer(id int64) int {
	for i := range q.Answers {
		if q.Answers[i].ID == id {
			return i
		}
	}
	return -1
}

// HasAccepted reports whether any answer is accepted.
func (q Question) HasAccepted() bool {
	for _, a := range q.Answers {
		if a.IsAccepted {
			return true
		}
	}
	return false
}

// ForViewer projects per-user ballots into UserVote for viewerID and drops
// the ballot map, so one viewer never sees another's vote.
func (q Question) ForViewer(viewerID string) Question {
	out := q.Clone()
	for i := range out.Answers {
		out.Answers[i].UserVote = out.Answers[i].Ballots[viewerID]
		out.Answers[i].Ballots = nil
	}
	return out
}
