package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/askboard/models"
)

func q(id int64, title, desc string, tags ...string) models.Question {
	return models.Question{ID: id, Title: title, Description: desc, Tags: tags}
}

func ids(qs []models.Question) []int64 {
	out := make([]int64, len(qs))
	for i, x := range qs {
		out[i] = x.ID
	}
	return out
}

func TestScoreTerms(t *testing.T) {
	focal := q(1, "How to use React hooks", "", "React", "JavaScript")

	t.Run("tags only", func(t *testing.T) {
		c := q(2, "unrelated words here", "", "React")
		assert.InDelta(t, 0.25, Score(focal, c), 1e-9)
	})
	t.Run("title words are case-insensitive", func(t *testing.T) {
		c := q(2, "HOW TO USE react HOOKS", "")
		assert.InDelta(t, 0.3, Score(focal, c), 1e-9)
	})
	t.Run("containment is case-sensitive", func(t *testing.T) {
		hit := q(2, "x", "<p>How to use React hooks</p>")
		miss := q(3, "x", "how to use react hooks")
		assert.InDelta(t, 0.2, Score(focal, hit), 1e-9)
		assert.InDelta(t, 0.0, Score(focal, miss), 1e-9)
	})
	t.Run("containment decodes character references", func(t *testing.T) {
		f := q(1, "What's the Q&A format?", "")
		escaped := q(2, "x", "<p>I asked: What&#39;s the Q&amp;A format?</p>")
		assert.InDelta(t, 0.2, Score(f, escaped), 1e-9)
	})
	t.Run("all terms", func(t *testing.T) {
		c := q(2, "how to use react hooks", "How to use React hooks", "React", "JavaScript")
		assert.InDelta(t, 1.0, Score(focal, c), 1e-9)
	})
}

func TestScoreZeroGuards(t *testing.T) {
	focal := q(1, "   ", "")
	c := q(2, "anything", "anything", "React")
	assert.Equal(t, 0.0, Score(focal, c))
}

// Scores are normalised by the focal question, so swapping the arguments is
// expected to change the value.
func TestScoreIsDirectional(t *testing.T) {
	a := q(1, "react state", "", "React")
	b := q(2, "react state management patterns", "", "React", "Redux", "TypeScript", "CSS")

	ab := Score(a, b)
	ba := Score(b, a)
	assert.InDelta(t, 0.5+0.3, ab, 1e-9)
	assert.InDelta(t, 0.5*0.25+0.3*0.5, ba, 1e-9)
	assert.NotEqual(t, ab, ba)
}

func TestTagWeightOutranksTitleWeight(t *testing.T) {
	q1 := q(1, "alpha beta gamma", "", "Go", "Docker")
	q3 := q(3, "alpha beta gamma", "", "CSS")
	q2 := q(2, "delta epsilon zeta", "", "Go", "Docker")

	got := Related(q1, []models.Question{q1, q3, q2}, Options{})
	require.Len(t, got, 2)
	assert.Equal(t, []int64{2, 3}, ids(got))
}

func TestRelatedExcludesFocalAndLimits(t *testing.T) {
	focal := q(1, "go channels explained", "", "Go")
	corpus := []models.Question{
		focal,
		q(2, "go channels", "", "Go"),
		q(3, "go", "", "Go"),
		q(4, "channels", "", "Go"),
		q(5, "explained", "", "Go"),
		q(6, "nothing in common", ""),
	}

	got := Related(focal, corpus, Options{})
	assert.Len(t, got, 3)
	assert.NotContains(t, ids(got), int64(1))
	assert.Equal(t, int64(2), got[0].ID)
}

func TestRelatedStableOnTies(t *testing.T) {
	focal := q(1, "focal title words", "", "A")
	corpus := []models.Question{
		q(10, "x", "", "A"),
		q(11, "y", "", "A"),
		focal,
		q(12, "z", "", "A"),
		q(13, "w", "", "A"),
	}

	first := Related(focal, corpus, Options{Limit: 4})
	assert.Equal(t, []int64{10, 11, 12, 13}, ids(first))

	second := Related(focal, corpus, Options{Limit: 4})
	assert.Equal(t, first, second)
}

func TestRelatedEmptyCorpus(t *testing.T) {
	focal := q(1, "lonely question", "")
	assert.Empty(t, Related(focal, nil, Options{}))
	assert.Empty(t, Related(focal, []models.Question{focal}, Options{}))
}

// A repeated focal title word counts once per repetition by default. The
// dedup switch changes the title term and nothing else.
func TestDuplicateTitleWords(t *testing.T) {
	focal := q(1, "go go go channels", "")
	c := q(2, "go routines", "")

	assert.InDelta(t, 0.3*3.0/4.0, Score(focal, c), 1e-9)
	assert.InDelta(t, 0.3*1.0/2.0, score(focal, c, true), 1e-9)
}

func TestDedupChangesRanking(t *testing.T) {
	focal := q(1, "go go go channels", "")
	goOnly := q(2, "go", "")
	chanOnly := q(3, "channels", "")
	corpus := []models.Question{chanOnly, goOnly}

	assert.Equal(t, []int64{2, 3}, ids(Related(focal, corpus, Options{})))
	assert.Equal(t, []int64{3, 2}, ids(Related(focal, corpus, Options{DedupTitleWords: true})))
}
