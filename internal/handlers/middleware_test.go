package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wishlink/internal/models"
	"wishlink/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + a protected endpoint
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/secure", h.currentUserMiddleware, func(c *gin.Context) {
		u, _ := currentUser(c)
		c.JSON(http.StatusOK, gin.H{"ok": true, "username": u.Username})
	})
	return r
}

func TestCurrentUserMiddleware_Errors(t *testing.T) {
	type want struct {
		code   int
		errMsg string
	}
	cases := []struct {
		name     string
		header   string
		parseErr error
		want     want
	}{
		{
			name:   "missing header",
			header: "",
			want:   want{code: http.StatusUnauthorized, errMsg: "missing Authorization header"},
		},
		{
			name:   "invalid scheme",
			header: "Token abc",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "bearer without token",
			header: "Bearer",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:     "invalid token",
			header:   "Bearer garbage",
			parseErr: service.ErrInvalidToken,
			want:     want{code: http.StatusUnauthorized, errMsg: "invalid or expired token"},
		},
		{
			name:     "timed out token keeps its message",
			header:   "Bearer stale",
			parseErr: service.ErrTokenTimedOut,
			want:     want{code: http.StatusUnauthorized, errMsg: "token has timed out"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseErr: tc.parseErr}
			s := &service.Service{Authorization: auth}
			r := newMiddlewareOnlyRouter(s)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.want.code {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.want.code, w.Body.String())
			}

			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.want.errMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.want.errMsg)
			}
		})
	}
}

func TestCurrentUserMiddleware_Success(t *testing.T) {
	auth := &mockAuth{parseUser: &models.User{ID: 1, Username: "alice"}}
	s := &service.Service{Authorization: auth}
	r := newMiddlewareOnlyRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer tok123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["username"] != "alice" {
		t.Fatalf("expected username alice, got %v", m["username"])
	}
	if auth.lastParseToken != "tok123" {
		t.Fatalf("expected raw token passed to service, got %q", auth.lastParseToken)
	}
}
