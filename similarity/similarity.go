// Package similarity ranks questions related to a focal question.
package similarity

import (
	"html"
	"sort"
	"strings"

	"github.com/cppla/askboard/models"
)

const (
	tagWeight     = 0.5
	titleWeight   = 0.3
	containWeight = 0.2

	// DefaultLimit is how many related questions Related returns when
	// Options.Limit is not set.
	DefaultLimit = 3
)

// Options tunes Related. The zero value reproduces the historical ranking.
type Options struct {
	Limit int
	// DedupTitleWords counts each distinct focal title word once. When
	// false a word repeated in the focal title counts once per repetition.
	DedupTitleWords bool
}

// Score rates candidate against focal in [0, 1]. It is directional: the tag
// and title terms are normalised by the focal question's sizes, so
// Score(a, b) and Score(b, a) can differ.
func Score(focal, candidate models.Question) float64 {
	return score(focal, candidate, false)
}

func score(focal, candidate models.Question, dedup bool) float64 {
	return tagWeight*tagOverlap(focal.Tags, candidate.Tags) +
		titleWeight*titleOverlap(focal.Title, candidate.Title, dedup) +
		containment(focal.Title, candidate.Description)
}

// Related returns up to opts.Limit questions from corpus, most relevant
// first. Equal scores keep corpus order. The focal question is never
// included.
func Related(focal models.Question, corpus []models.Question, opts Options) []models.Question {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	type scored struct {
		q     models.Question
		score float64
	}
	ranked := make([]scored, 0, len(corpus))
	for _, c := range corpus {
		if c.ID == focal.ID {
			continue
		}
		ranked = append(ranked, scored{q: c, score: score(focal, c, opts.DedupTitleWords)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]models.Question, len(ranked))
	for i, r := range ranked {
		out[i] = r.q
	}
	return out
}

func tagOverlap(focal, candidate []string) float64 {
	if len(focal) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(candidate))
	for _, t := range candidate {
		have[t] = struct{}{}
	}
	common := 0
	for _, t := range focal {
		if _, ok := have[t]; ok {
			common++
		}
	}
	return float64(common) / float64(len(focal))
}

func titleOverlap(focal, candidate string, dedup bool) float64 {
	words := strings.Fields(strings.ToLower(focal))
	if dedup {
		words = unique(words)
	}
	if len(words) == 0 {
		return 0
	}
	have := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(candidate)) {
		have[w] = struct{}{}
	}
	common := 0
	for _, w := range words {
		if _, ok := have[w]; ok {
			common++
		}
	}
	return float64(common) / float64(len(words))
}

// containment is case-sensitive and runs against the stored description,
// markup included. Character references are decoded first, so sanitized
// HTML still matches a plain-text title.
func containment(title, description string) float64 {
	if title != "" && strings.Contains(html.UnescapeString(description), title) {
		return containWeight
	}
	return 0
}

func unique(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := words[:0:0]
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
