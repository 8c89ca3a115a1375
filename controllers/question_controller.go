package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/askboard/middleware"
	"github.com/cppla/askboard/models"
	"github.com/cppla/askboard/store"
	"github.com/cppla/askboard/utils"
)

// QuestionController serves questions, answers, votes and acceptance.
type QuestionController struct {
	store        *store.Store
	recentLimit  int
	similarLimit int
}

// NewQuestionController creates a new QuestionController instance.
// Non-positive limits fall back to three.
func NewQuestionController(s *store.Store, recentLimit, similarLimit int) *QuestionController {
	if recentLimit <= 0 {
		recentLimit = 3
	}
	if similarLimit <= 0 {
		similarLimit = 3
	}
	return &QuestionController{store: s, recentLimit: recentLimit, similarLimit: similarLimit}
}

// questionSummary is the card shown in question lists.
type questionSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Tags        []string  `json:"tags"`
	AuthorID    string    `json:"authorId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	AnswerCount int       `json:"answerCount"`
	IsAnswered  bool      `json:"isAnswered"`
	Views       int       `json:"views"`
}

func summarize(q models.Question) questionSummary {
	return questionSummary{
		ID:          q.ID,
		Title:       q.Title,
		Excerpt:     utils.Excerpt(q.Description, utils.ExcerptLength),
		Tags:        q.Tags,
		AuthorID:    q.AuthorID,
		CreatedAt:   q.CreatedAt,
		AnswerCount: len(q.Answers),
		IsAnswered:  q.IsAnswered,
		Views:       q.Views,
	}
}

func summaries(qs []models.Question) []questionSummary {
	out := make([]questionSummary, 0, len(qs))
	for _, q := range qs {
		out = append(out, summarize(q))
	}
	return out
}

// ListQuestions returns question cards, newest first.
// ?id= narrows the list to one question, ?tag= to questions carrying a tag.
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	questions := c.store.ListQuestions()

	if raw := ctx.Query("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, codeBadID, "invalid id")
			return
		}
		questions = filter(questions, func(q models.Question) bool { return q.ID == id })
	}
	if tag := strings.TrimSpace(ctx.Query("tag")); tag != "" {
		questions = filter(questions, func(q models.Question) bool { return hasTag(q, tag) })
	}

	utils.Success(ctx, gin.H{
		"questions": summaries(questions),
		"total":     len(questions),
	})
}

// RecentQuestions returns the newest few questions.
func (c *QuestionController) RecentQuestions(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"questions": summaries(c.store.Recent(c.recentLimit))})
}

// GetQuestion returns a question with its answers as the viewer sees them.
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	q, err := c.store.GetQuestion(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, q.ForViewer(middleware.UserID(ctx)))
}

// SimilarQuestions returns the questions most related to :id.
func (c *QuestionController) SimilarQuestions(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	limit := c.similarLimit
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.Error(ctx, http.StatusBadRequest, codeInvalid, "invalid limit")
			return
		}
		limit = n
	}
	related, err := c.store.Related(id, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"questions": summaries(related)})
}

// CreateQuestion posts a new question authored by the viewer.
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, codeBadPayload, "invalid request payload")
		return
	}

	tags := make([]string, len(req.Tags))
	for i, t := range req.Tags {
		tags[i] = utils.PlainText(t)
	}
	q, err := c.store.CreateQuestion(ctx.Request.Context(), store.QuestionDraft{
		Title:       utils.PlainText(req.Title),
		Description: utils.Sanitize(req.Description),
		Tags:        tags,
		AuthorID:    middleware.UserID(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, q.ForViewer(middleware.UserID(ctx)))
}

// AddAnswer appends the viewer's answer to :id.
func (c *QuestionController) AddAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, codeBadPayload, "invalid request payload")
		return
	}

	viewer := middleware.UserID(ctx)
	q, err := c.store.AddAnswer(ctx.Request.Context(), id, store.AnswerDraft{
		Content:  utils.Sanitize(req.Content),
		AuthorID: viewer,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Created(ctx, q.ForViewer(viewer))
}

// Vote applies the viewer's upvote or downvote to an answer. Repeating
// the current vote withdraws it.
func (c *QuestionController) Vote(ctx *gin.Context) {
	qid, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	aid, ok := parseID(ctx, "answerId")
	if !ok {
		return
	}
	var req struct {
		Direction string `json:"direction"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, codeBadPayload, "invalid request payload")
		return
	}
	dir, err := models.ParseVoteDirection(strings.ToLower(strings.TrimSpace(req.Direction)))
	if err != nil || dir == models.VoteNone {
		utils.Error(ctx, http.StatusBadRequest, codeBadDirection, "direction must be upvote or downvote")
		return
	}

	viewer := middleware.UserID(ctx)
	q, err := c.store.CastVote(ctx.Request.Context(), qid, aid, viewer, dir)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, q.ForViewer(viewer))
}

// Accept marks an answer accepted. Only the question's author may do so.
func (c *QuestionController) Accept(ctx *gin.Context) {
	qid, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	aid, ok := parseID(ctx, "answerId")
	if !ok {
		return
	}

	viewer := middleware.UserID(ctx)
	q, err := c.store.AcceptAnswer(ctx.Request.Context(), qid, aid, viewer)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.Success(ctx, q.ForViewer(viewer))
}

func filter(qs []models.Question, keep func(models.Question) bool) []models.Question {
	out := qs[:0]
	for _, q := range qs {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

func hasTag(q models.Question, tag string) bool {
	for _, t := range q.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
