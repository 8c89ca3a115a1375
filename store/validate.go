package store

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinTitleLength       = 10
	MaxTitleLength       = 150
	MinDescriptionLength = 30
	MinAnswerLength      = 30
	MinTags              = 1
	MaxTags              = 5
	MaxTagLength         = 32
)

// QuestionDraft is the caller-supplied part of a new question.
type QuestionDraft struct {
	Title       string
	Description string
	Tags        []string
	AuthorID    string
}

// AnswerDraft is the caller-supplied part of a new answer.
type AnswerDraft struct {
	Content  string
	AuthorID string
}

// normalize trims the title and tags and rejects drafts the ask form
// would not have let through.
func (d QuestionDraft) normalize() (QuestionDraft, error) {
	d.Title = strings.TrimSpace(d.Title)
	n := utf8.RuneCountInString(d.Title)
	if n < MinTitleLength {
		return d, invalid("title", fmt.Sprintf("must be at least %d characters", MinTitleLength))
	}
	if n > MaxTitleLength {
		return d, invalid("title", fmt.Sprintf("must not exceed %d characters", MaxTitleLength))
	}
	if utf8.RuneCountInString(d.Description) < MinDescriptionLength {
		return d, invalid("description", fmt.Sprintf("must be at least %d characters", MinDescriptionLength))
	}

	if len(d.Tags) < MinTags {
		return d, invalid("tags", "at least one tag is required")
	}
	if len(d.Tags) > MaxTags {
		return d, invalid("tags", fmt.Sprintf("at most %d tags are allowed", MaxTags))
	}
	tags := make([]string, 0, len(d.Tags))
	seen := make(map[string]bool, len(d.Tags))
	for _, t := range d.Tags {
		t = strings.TrimSpace(t)
		if t == "" {
			return d, invalid("tags", "tags must not be empty")
		}
		if utf8.RuneCountInString(t) > MaxTagLength {
			return d, invalid("tags", fmt.Sprintf("tag %q exceeds %d characters", t, MaxTagLength))
		}
		if seen[t] {
			return d, invalid("tags", fmt.Sprintf("duplicate tag %q", t))
		}
		seen[t] = true
		tags = append(tags, t)
	}
	d.Tags = tags
	return d, nil
}

func (d AnswerDraft) validate() error {
	if utf8.RuneCountInString(d.Content) < MinAnswerLength {
		return invalid("content", fmt.Sprintf("answer must be at least %d characters", MinAnswerLength))
	}
	return nil
}
