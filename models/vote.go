package models

import (
	"encoding/json"
	"fmt"
)

// VoteDirection is a viewer's vote on an answer.
type VoteDirection string

const (
	VoteNone VoteDirection = ""
	VoteUp   VoteDirection = "upvote"
	VoteDown VoteDirection = "downvote"
)

// ParseVoteDirection accepts the wire spellings used by clients.
func ParseVoteDirection(s string) (VoteDirection, error) {
	switch s {
	case "upvote", "up":
		return VoteUp, nil
	case "downvote", "down":
		return VoteDown, nil
	case "", "none", "null":
		return VoteNone, nil
	}
	return VoteNone, fmt.Errorf("unknown vote direction %q", s)
}

// Valid reports whether d is one of the three known states.
func (d VoteDirection) Valid() bool {
	return d == VoteNone || d == VoteUp || d == VoteDown
}

// MarshalJSON writes none as null, the way older corpora stored it.
func (d VoteDirection) MarshalJSON() ([]byte, error) {
	if d == VoteNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

func (d *VoteDirection) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = VoteNone
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseVoteDirection(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
