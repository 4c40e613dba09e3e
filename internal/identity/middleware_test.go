package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeVerifier struct {
	calls int
	user  User
	err   error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (User, error) {
	f.calls++
	if f.err != nil {
		return User{}, f.err
	}
	return f.user, nil
}

func newAuthRouter(v Verifier, opts MiddlewareOptions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireUser(v, nil, opts))
	r.GET("/api/v1/trades", func(c *gin.Context) {
		u, _ := UserFromContext(c.Request.Context())
		c.String(http.StatusOK, u.ID)
	})
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestRequireUserMissingToken(t *testing.T) {
	r := newAuthRouter(&fakeVerifier{}, MiddlewareOptions{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireUserInjectsUser(t *testing.T) {
	v := &fakeVerifier{user: User{ID: "u-42"}}
	r := newAuthRouter(v, MiddlewareOptions{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "u-42" {
		t.Fatalf("status = %d body = %q", w.Code, w.Body.String())
	}
}

func TestRequireUserCachesVerifiedTokens(t *testing.T) {
	v := &fakeVerifier{user: User{ID: "u-42"}}
	r := newAuthRouter(v, MiddlewareOptions{})
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
	if v.calls != 1 {
		t.Fatalf("verifier called %d times, want 1", v.calls)
	}
}

func TestRequireUserRejectsBadToken(t *testing.T) {
	v := &fakeVerifier{err: ErrUnauthorized}
	r := newAuthRouter(v, MiddlewareOptions{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireUserOpenPaths(t *testing.T) {
	r := newAuthRouter(&fakeVerifier{err: ErrUnauthorized}, MiddlewareOptions{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", w.Code)
	}
}

func TestRequireUserDisabledInjectsDevUser(t *testing.T) {
	v := &fakeVerifier{}
	r := newAuthRouter(v, MiddlewareOptions{Disabled: true})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/trades", nil))
	if w.Code != http.StatusOK || w.Body.String() != "dev" {
		t.Fatalf("status = %d body = %q", w.Code, w.Body.String())
	}
	if v.calls != 0 {
		t.Fatalf("verifier consulted while disabled")
	}
}
