package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/uniajc/educadigital/internal/app/system/sessions"
	"go.uber.org/zap"
)

// WithChiURLParam injects a chi route parameter into the request
// context, so handlers using chi.URLParam can be tested directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var initSessionsOnce sync.Once

// InitSessions initializes the global cookie session store with a fixed
// test key. Safe to call from multiple tests.
func InitSessions(t *testing.T) {
	t.Helper()
	initSessionsOnce.Do(func() {
		if err := sessions.Init("0123456789abcdef0123456789abcdef", "educadigital-test", "", false, zap.NewNop()); err != nil {
			panic(err)
		}
	})
}

// CopyCookies carries the cookies set by a previous response onto the
// next request, simulating a browser session across requests.
func CopyCookies(req *http.Request, rec *httptest.ResponseRecorder) {
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
}

// ServeQuiet invokes handler, swallowing the panic template rendering
// raises when no template engine is booted in tests. Assertions should
// target the handler's side effects (status, headers, cookies), not the
// rendered body.
func ServeQuiet(handler http.HandlerFunc, rec *httptest.ResponseRecorder, req *http.Request) {
	defer func() { _ = recover() }()
	handler(rec, req)
}
