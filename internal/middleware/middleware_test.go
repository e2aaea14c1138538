package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/caioogatalabs/dashboard-workshop/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogging(), CORS(), ErrorHandler())
	r.GET("/test", h)
	r.OPTIONS("/test", h)
	return r
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body %q: %v", w.Body.String(), err)
	}
	return body.Error.Code, body.Error.Message
}

func TestErrorHandler(t *testing.T) {
	t.Run("app_error", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) {
			_ = c.Error(apperrors.ErrGoalNotFound)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if code, _ := errorBody(t, w); code != "GOAL_NOT_FOUND" {
			t.Errorf("expected GOAL_NOT_FOUND, got %s", code)
		}
	})

	t.Run("bind_error", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) {
			_ = c.Error(errors.New("amount is required")).SetType(gin.ErrorTypeBind)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		code, msg := errorBody(t, w)
		if code != "INVALID_INPUT" || msg != "amount is required" {
			t.Errorf("unexpected error body %s: %s", code, msg)
		}
	})

	t.Run("unexpected_error_is_hidden", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) {
			_ = c.Error(errors.New("disk on fire"))
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if _, msg := errorBody(t, w); msg == "disk on fire" {
			t.Error("internal error message leaked to client")
		}
	})

	t.Run("written_response_is_kept", func(t *testing.T) {
		r := newEngine(func(c *gin.Context) {
			c.JSON(http.StatusTeapot, gin.H{"ok": true})
			_ = c.Error(errors.New("late"))
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		if w.Code != http.StatusTeapot {
			t.Errorf("expected 418, got %d", w.Code)
		}
	})
}

func TestRequestLogging(t *testing.T) {
	r := newEngine(func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(requestIDKey))
	})

	t.Run("generates_id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		id := w.Header().Get("X-Request-ID")
		if id == "" || id != w.Body.String() {
			t.Errorf("expected generated request id in header and context, got %q / %q", id, w.Body.String())
		}
	})

	t.Run("reuses_valid_incoming_id", func(t *testing.T) {
		incoming := "0192f5c8-3b0a-7c3e-9a51-2f6d8b1e4c70"
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", incoming)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != incoming {
			t.Errorf("expected %s, got %s", incoming, got)
		}
	})

	t.Run("replaces_garbage_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got == "not-a-uuid" {
			t.Error("expected invalid request id to be replaced")
		}
	})
}

func TestCORS(t *testing.T) {
	called := false
	r := newEngine(func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/test", nil))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", w.Code)
	}
	if called {
		t.Error("preflight should not reach the handler")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("expected max age 3600, got %q", got)
	}
}
