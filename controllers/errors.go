package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/askboard/store"
	"github.com/cppla/askboard/utils"
)

// Application error codes carried in the response envelope.
const (
	codeBadPayload   = 40000
	codeBadID        = 40010
	codeInvalid      = 40020
	codeBadDirection = 40021
	codeNotFound     = 40401
	codePermission   = 40301
	codeInternal     = 50020
)

// statusFor maps store errors onto HTTP status and application code.
func statusFor(err error) (int, int) {
	switch {
	case errors.Is(err, store.ErrValidation):
		return http.StatusBadRequest, codeInvalid
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, store.ErrPermission):
		return http.StatusForbidden, codePermission
	default:
		return http.StatusInternalServerError, codeInternal
	}
}

func respondError(ctx *gin.Context, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		utils.Logger.Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.String(utils.RequestIDKey, ctx.GetString(utils.RequestIDKey)),
			zap.Error(err))
		utils.Error(ctx, status, code, "internal error")
		return
	}
	utils.Error(ctx, status, code, err.Error())
}

func parseID(ctx *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, codeBadID, "invalid "+param)
		return 0, false
	}
	return id, true
}
