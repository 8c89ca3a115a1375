package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/askboard/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(secret string) *gin.Engine {
	r := gin.New()
	r.Use(CurrentUser(secret))
	r.GET("/", func(ctx *gin.Context) { ctx.String(http.StatusOK, UserID(ctx)) })
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCurrentUser(t *testing.T) {
	token, err := utils.GenerateToken("s3cret", "alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		header map[string]string
		want   string
	}{
		{"anonymous", "", nil, ""},
		{"header", "", map[string]string{UserIDHeader: " bob "}, "bob"},
		{"token", "s3cret", map[string]string{"Authorization": "Bearer " + token}, "alice"},
		{"token beats header", "s3cret", map[string]string{"Authorization": "Bearer " + token, UserIDHeader: "bob"}, "alice"},
		{"bad token is anonymous", "s3cret", map[string]string{"Authorization": "Bearer junk", UserIDHeader: "bob"}, ""},
		{"header ignored with secret", "s3cret", map[string]string{UserIDHeader: "bob"}, ""},
		{"tokens ignored without secret", "", map[string]string{"Authorization": "Bearer " + token}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(whoami(tt.secret), tt.header)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(ctx *gin.Context) { ctx.String(http.StatusOK, ctx.GetString(utils.RequestIDKey)) })

	w := get(r, nil)
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, w.Body.String())

	inbound := uuid.NewString()
	w = get(r, map[string]string{RequestIDHeader: inbound})
	assert.Equal(t, inbound, w.Header().Get(RequestIDHeader))

	w = get(r, map[string]string{RequestIDHeader: "not-a-uuid"})
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(4))
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	// burst is perMinute/2
	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, nil).Code)
}

func TestLimiterSetExpiresIdle(t *testing.T) {
	set := newLimiterSet(2)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	set.now = func() time.Time { return now }

	assert.True(t, set.allow("a"))
	assert.False(t, set.allow("a"))

	now = now.Add(limiterIdle + time.Second)
	set.allow("b")
	_, ok := set.limiters["a"]
	assert.False(t, ok)
}
