package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cppla/askboard/store"
	"github.com/cppla/askboard/utils"
)

// StatsController provides board statistics and the tag vocabulary.
type StatsController struct {
	store      *store.Store
	tagOptions []string
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(s *store.Store, tagOptions []string) *StatsController {
	return &StatsController{store: s, tagOptions: tagOptions}
}

// GetStats returns aggregate statistics for the board.
func (s *StatsController) GetStats(ctx *gin.Context) {
	utils.Success(ctx, s.store.Stats())
}

// GetTags returns the suggested tags offered by the ask form and the tags
// actually in use with their counts.
func (s *StatsController) GetTags(ctx *gin.Context) {
	options := s.tagOptions
	if options == nil {
		options = []string{}
	}
	utils.Success(ctx, gin.H{
		"options": options,
		"used":    s.store.Stats().Tags,
	})
}
