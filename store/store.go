// Package store owns the question corpus. Every mutation is a single commit:
// the affected question is rebuilt as a copy, the whole corpus is persisted,
// and only then does the copy replace the original.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cppla/askboard/models"
	"github.com/cppla/askboard/similarity"
	"github.com/cppla/askboard/voting"
)

// Persister reads and writes the full serialized corpus.
type Persister interface {
	Load(ctx context.Context) ([]models.Question, error)
	Save(ctx context.Context, corpus []models.Question) error
}

// Store is safe for concurrent use. Mutations are serialized by one lock.
type Store struct {
	mu    sync.RWMutex
	order []int64 // most recent first
	byID  map[int64]models.Question
	ids   idGenerator

	persister Persister
	logger    *zap.Logger
	now       func() time.Time
	related   similarity.Options
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSimilarity sets the options Related ranks with.
func WithSimilarity(opts similarity.Options) Option {
	return func(s *Store) { s.related = opts }
}

// Open loads the corpus from p and returns a ready Store.
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := &Store{
		byID:      map[int64]models.Question{},
		persister: p,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	s.ids.now = s.now

	corpus, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	s.adopt(corpus)
	s.logger.Info("corpus loaded", zap.Int("questions", len(s.order)))
	return s, nil
}

// adopt replaces the in-memory corpus with corpus, normalising records
// written by older versions. Caller holds the write lock or owns s.
func (s *Store) adopt(corpus []models.Question) {
	s.order = make([]int64, 0, len(corpus))
	s.byID = make(map[int64]models.Question, len(corpus))
	for _, q := range corpus {
		s.ids.observe(q.ID)
		for _, a := range q.Answers {
			s.ids.observe(a.ID)
		}
	}
	for _, q := range corpus {
		var demoted int
		q, demoted = normalize(q.Clone())
		if demoted > 0 {
			s.logger.Warn("extra accepted answers cleared", zap.Int64("question_id", q.ID), zap.Int("cleared", demoted))
		}
		if _, dup := s.byID[q.ID]; dup {
			old := q.ID
			q.ID = s.ids.next()
			s.logger.Warn("duplicate question id reassigned", zap.Int64("old_id", old), zap.Int64("new_id", q.ID))
		}
		s.order = append(s.order, q.ID)
		s.byID[q.ID] = q
	}
}

// normalize fills defaults and moves a legacy single-viewer userVote into
// the anonymous viewer's ballot. Only the first accepted answer stays
// accepted; demoted counts the others.
func normalize(q models.Question) (models.Question, int) {
	demoted := 0
	accepted := false
	if q.Tags == nil {
		q.Tags = []string{}
	}
	if q.Answers == nil {
		q.Answers = []models.Answer{}
	}
	for i := range q.Answers {
		a := &q.Answers[i]
		if a.IsAccepted {
			if accepted {
				a.IsAccepted = false
				demoted++
			}
			accepted = true
		}
		if !a.UserVote.Valid() {
			a.UserVote = models.VoteNone
		}
		if len(a.Ballots) == 0 && a.UserVote != models.VoteNone {
			a.Ballots = map[string]models.VoteDirection{"": a.UserVote}
		}
		for k, v := range a.Ballots {
			if v == models.VoteNone || !v.Valid() {
				delete(a.Ballots, k)
			}
		}
		if len(a.Ballots) == 0 {
			a.Ballots = nil
		}
		a.UserVote = models.VoteNone
	}
	q.IsAnswered = q.HasAccepted()
	return q, demoted
}

// persistable is the on-disk form of q: userVote mirrors the anonymous
// viewer so single-session readers keep working.
func persistable(q models.Question) models.Question {
	out := q.Clone()
	for i := range out.Answers {
		out.Answers[i].UserVote = out.Answers[i].Ballots[""]
	}
	return out
}

// commit persists the corpus as it would look with changed in place and
// with the given order, then publishes it. Caller holds the write lock.
func (s *Store) commit(ctx context.Context, order []int64, changed models.Question) error {
	corpus := make([]models.Question, 0, len(order))
	for _, id := range order {
		q, ok := s.byID[id]
		if id == changed.ID {
			q, ok = changed, true
		}
		if !ok {
			continue
		}
		corpus = append(corpus, persistable(q))
	}
	if err := s.persister.Save(ctx, corpus); err != nil {
		s.logger.Error("persist corpus failed", zap.Int64("question_id", changed.ID), zap.Error(err))
		return fmt.Errorf("persist corpus: %w", err)
	}
	s.order = order
	s.byID[changed.ID] = changed
	return nil
}

// CreateQuestion validates draft, stores a new question at the front of the
// corpus and returns it.
func (s *Store) CreateQuestion(ctx context.Context, draft QuestionDraft) (models.Question, error) {
	d, err := draft.normalize()
	if err != nil {
		return models.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q := models.Question{
		ID:          s.ids.next(),
		Title:       d.Title,
		Description: d.Description,
		Tags:        d.Tags,
		AuthorID:    d.AuthorID,
		CreatedAt:   s.now().UTC(),
		Answers:     []models.Answer{},
	}
	order := make([]int64, 0, len(s.order)+1)
	order = append(order, q.ID)
	order = append(order, s.order...)
	if err := s.commit(ctx, order, q); err != nil {
		return models.Question{}, err
	}
	s.logger.Info("question created", zap.Int64("question_id", q.ID), zap.Strings("tags", q.Tags))
	return q.Clone(), nil
}

// GetQuestion returns a copy of the question with id.
func (s *Store) GetQuestion(id int64) (models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.byID[id]
	if !ok {
		return models.Question{}, questionNotFound(id)
	}
	return q.Clone(), nil
}

// ListQuestions returns the corpus, most recent first.
func (s *Store) ListQuestions() []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(0)
}

// Recent returns the n most recent questions.
func (s *Store) Recent(n int) []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		return []models.Question{}
	}
	return s.snapshotLocked(n)
}

// Snapshot returns the corpus in its persisted form.
func (s *Store) Snapshot() []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Question, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, persistable(s.byID[id]))
	}
	return out
}

func (s *Store) snapshotLocked(limit int) []models.Question {
	n := len(s.order)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Question, 0, n)
	for _, id := range s.order[:n] {
		out = append(out, s.byID[id].Clone())
	}
	return out
}

// AddAnswer appends a new answer to the question with questionID.
func (s *Store) AddAnswer(ctx context.Context, questionID int64, draft AnswerDraft) (models.Question, error) {
	if err := draft.validate(); err != nil {
		return models.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[questionID]
	if !ok {
		return models.Question{}, questionNotFound(questionID)
	}
	q := cur.Clone()
	a := models.Answer{
		ID:        s.ids.next(),
		Content:   draft.Content,
		AuthorID:  draft.AuthorID,
		UserVote:  models.VoteNone,
		CreatedAt: s.now().UTC(),
	}
	q.Answers = append(q.Answers, a)
	if err := s.commit(ctx, s.order, q); err != nil {
		return models.Question{}, err
	}
	s.logger.Info("answer added", zap.Int64("question_id", q.ID), zap.Int64("answer_id", a.ID))
	return q.Clone(), nil
}

// CastVote applies voterID's vote in direction to an answer.
func (s *Store) CastVote(ctx context.Context, questionID, answerID int64, voterID string, direction models.VoteDirection) (models.Question, error) {
	if direction != models.VoteUp && direction != models.VoteDown {
		return models.Question{}, invalid("direction", "must be upvote or downvote")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[questionID]
	if !ok {
		return models.Question{}, questionNotFound(questionID)
	}
	i := cur.FindAnswer(answerID)
	if i < 0 {
		return models.Question{}, answerNotFound(answerID)
	}

	q := cur.Clone()
	a := &q.Answers[i]
	votes, ballot, err := voting.Apply(a.Votes, a.Ballots[voterID], direction)
	if err != nil {
		return models.Question{}, invalid("direction", err.Error())
	}
	a.Votes = votes
	if ballot == models.VoteNone {
		delete(a.Ballots, voterID)
		if len(a.Ballots) == 0 {
			a.Ballots = nil
		}
	} else {
		if a.Ballots == nil {
			a.Ballots = map[string]models.VoteDirection{}
		}
		a.Ballots[voterID] = ballot
	}

	if err := s.commit(ctx, s.order, q); err != nil {
		return models.Question{}, err
	}
	s.logger.Debug("vote cast",
		zap.Int64("question_id", questionID),
		zap.Int64("answer_id", answerID),
		zap.String("direction", string(direction)),
		zap.Int("votes", votes),
	)
	return q.Clone(), nil
}

// AcceptAnswer marks answerID as the accepted answer. Only the question's
// author may do this; a question without an author can only be accepted by
// an anonymous requester.
func (s *Store) AcceptAnswer(ctx context.Context, questionID, answerID int64, requesterID string) (models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[questionID]
	if !ok {
		return models.Question{}, questionNotFound(questionID)
	}
	if cur.FindAnswer(answerID) < 0 {
		return models.Question{}, answerNotFound(answerID)
	}
	if requesterID != cur.AuthorID {
		return models.Question{}, &PermissionError{Action: "accept answers on this question", UserID: requesterID}
	}

	answers, err := voting.Accept(cur.Answers, answerID)
	if err != nil {
		return models.Question{}, answerNotFound(answerID)
	}
	q := cur.Clone()
	q.Answers = answers
	q.IsAnswered = true
	if err := s.commit(ctx, s.order, q); err != nil {
		return models.Question{}, err
	}
	s.logger.Info("answer accepted", zap.Int64("question_id", questionID), zap.Int64("answer_id", answerID))
	return q.Clone(), nil
}

// Related ranks the rest of the corpus against the question with id.
// limit <= 0 uses the store's configured limit.
func (s *Store) Related(id int64, limit int) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	focal, ok := s.byID[id]
	if !ok {
		return nil, questionNotFound(id)
	}
	corpus := make([]models.Question, 0, len(s.order))
	for _, qid := range s.order {
		corpus = append(corpus, s.byID[qid])
	}
	opts := s.related
	if limit > 0 {
		opts.Limit = limit
	}
	related := similarity.Related(focal, corpus, opts)
	for i := range related {
		related[i] = related[i].Clone()
	}
	return related, nil
}

// Replace swaps the whole corpus, as when importing an export. Every
// question and answer must pass the same checks as a new draft.
func (s *Store) Replace(ctx context.Context, corpus []models.Question) error {
	checked := make([]models.Question, len(corpus))
	for i, q := range corpus {
		d, err := QuestionDraft{Title: q.Title, Description: q.Description, Tags: q.Tags}.normalize()
		if err != nil {
			return fmt.Errorf("question %d: %w", q.ID, err)
		}
		for _, a := range q.Answers {
			if err := (AnswerDraft{Content: a.Content}).validate(); err != nil {
				return fmt.Errorf("question %d answer %d: %w", q.ID, a.ID, err)
			}
		}
		q = q.Clone()
		q.Title, q.Tags = d.Title, d.Tags
		checked[i] = q
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &Store{logger: s.logger, ids: s.ids}
	staged.adopt(checked)
	out := make([]models.Question, 0, len(staged.order))
	for _, id := range staged.order {
		out = append(out, persistable(staged.byID[id]))
	}
	if err := s.persister.Save(ctx, out); err != nil {
		return fmt.Errorf("persist corpus: %w", err)
	}
	s.order, s.byID, s.ids = staged.order, staged.byID, staged.ids
	s.logger.Info("corpus replaced", zap.Int("questions", len(s.order)))
	return nil
}

// TagCount is how many questions carry a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Stats summarises the corpus.
type Stats struct {
	Questions  int        `json:"questions"`
	Answers    int        `json:"answers"`
	Answered   int        `json:"answered"`
	Unanswered int        `json:"unanswered"`
	NetVotes   int        `json:"net_votes"`
	Tags       []TagCount `json:"tags"`
}

// Stats computes corpus totals and tag usage, most used tag first.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Questions: len(s.order)}
	counts := map[string]int{}
	for _, id := range s.order {
		q := s.byID[id]
		st.Answers += len(q.Answers)
		if q.IsAnswered {
			st.Answered++
		}
		for _, a := range q.Answers {
			st.NetVotes += a.Votes
		}
		for _, t := range q.Tags {
			counts[t]++
		}
	}
	st.Unanswered = st.Questions - st.Answered
	st.Tags = make([]TagCount, 0, len(counts))
	for t, n := range counts {
		st.Tags = append(st.Tags, TagCount{Tag: t, Count: n})
	}
	sort.Slice(st.Tags, func(i, j int) bool {
		if st.Tags[i].Count != st.Tags[j].Count {
			return st.Tags[i].Count > st.Tags[j].Count
		}
		return st.Tags[i].Tag < st.Tags[j].Tag
	})
	return st
}
