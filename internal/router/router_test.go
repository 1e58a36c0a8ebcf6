package router

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterMatchesMethodAndPath(t *testing.T) {
	r := New()

	called := false
	r.Get("/widgets/{id}", func(w http.ResponseWriter, req *http.Request) {
		called = true
		assert.Equal(t, "42", req.PathValue("id"))
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/widgets/42", nil))

	require.True(t, called, "handler was not called")
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/widgets/42", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouterMiddlewareOrder(t *testing.T) {
	var order []string

	named := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, "before "+name)
				next.ServeHTTP(w, r)
				order = append(order, "after "+name)
			})
		}
	}

	r := New(named("global"))
	r.Get("/test", func(w http.ResponseWriter, req *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	}, named("route"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, []string{
		"before global", "before route", "handler", "after route", "after global",
	}, order)
}

func TestRouterGroupInheritsChain(t *testing.T) {
	var seen []string

	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New(mark("global"))
	admin := r.Group(mark("admin"))
	admin.Get("/admin/stats", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/public", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, []string{"global", "admin"}, seen)

	seen = nil
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, []string{"global"}, seen)
}

func TestRecoveryReturnsJSON(t *testing.T) {
	r := New(Recovery(slog.New(slog.DiscardHandler)))
	r.Get("/boom", func(w http.ResponseWriter, req *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"error","message":"internal server error"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	r := New(CORS([]string{"https://shop.example.com"}))
	r.Get("/test", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
