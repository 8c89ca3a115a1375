package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cppla/askboard/store"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   int
	}{
		{&store.ValidationError{Field: "title", Reason: "too short"}, http.StatusBadRequest, codeInvalid},
		{&store.NotFoundError{Kind: "question", ID: 1}, http.StatusNotFound, codeNotFound},
		{fmt.Errorf("wrapped: %w", &store.PermissionError{Action: "accept answers"}), http.StatusForbidden, codePermission},
		{errors.New("disk full"), http.StatusInternalServerError, codeInternal},
	}
	for _, tt := range tests {
		status, code := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
