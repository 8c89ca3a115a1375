package models

import "time"

// Answer is a reply to a question.
type Answer struct {
	ID         int64         `json:"id"`
	Content    string        `json:"content"`
	AuthorID   string        `json:"authorId,omitempty"`
	Votes      int           `json:"votes"`
	UserVote   VoteDirection `json:"userVote"`
	IsAccepted bool          `json:"isAccepted"`
	CreatedAt  time.Time     `json:"createdAt"`

	// Ballots holds each voter's current direction, keyed by user id.
	// The anonymous viewer is keyed by "".
	Ballots map[string]VoteDirection `json:"ballots,omitempty"`
}

// Clone returns a copy that shares no maps with a.
func (a Answer) Clone() Answer {
	out := a
	if a.Ballots != nil {
		out.Ballots = make(map[string]VoteDirection, len(a.Ballots))
		for k, v := range a.Ballots {
			out.Ballots[k] = v
		}
	}
	return out
}
