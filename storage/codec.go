// Package storage holds the persistence adapters for the question corpus.
// Each adapter keeps the whole corpus as one serialized value under one key.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cppla/askboard/models"
)

// DefaultKey is the key the corpus is stored under.
const DefaultKey = "questions"

// Encode serializes the corpus as a JSON array.
func Encode(corpus []models.Question) ([]byte, error) {
	if corpus == nil {
		corpus = []models.Question{}
	}
	b, err := json.Marshal(corpus)
	if err != nil {
		return nil, fmt.Errorf("encode corpus: %w", err)
	}
	return b, nil
}

// Decode parses a serialized corpus. An empty value decodes to an empty
// corpus, and absent optional fields get their defaults.
func Decode(b []byte) ([]models.Question, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return []models.Question{}, nil
	}
	var corpus []models.Question
	if err := json.Unmarshal(b, &corpus); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	for i := range corpus {
		if corpus[i].Tags == nil {
			corpus[i].Tags = []string{}
		}
		if corpus[i].Answers == nil {
			corpus[i].Answers = []models.Answer{}
		}
	}
	return corpus, nil
}
