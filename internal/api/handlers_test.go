package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsisay/alemu-portfolio-backend/internal"
	"github.com/alexsisay/alemu-portfolio-backend/internal/chat"
	"github.com/alexsisay/alemu-portfolio-backend/internal/fallback"
	"github.com/alexsisay/alemu-portfolio-backend/internal/metrics"
	"github.com/alexsisay/alemu-portfolio-backend/internal/provider"
	"github.com/alexsisay/alemu-portfolio-backend/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubAssistant struct {
	answer chat.Answer
	err    error
	status provider.Status
	asked  []string
}

func (s *stubAssistant) Ask(_ context.Context, q string) (chat.Answer, error) {
	s.asked = append(s.asked, q)
	return s.answer, s.err
}

func (s *stubAssistant) Status() provider.Status { return s.status }

type failingProvider struct{}

func (failingProvider) Name() provider.Name { return provider.Gemini }
func (failingProvider) Model() string       { return "gemini-test" }
func (failingProvider) Generate(context.Context, provider.Prompt) (string, error) {
	return "", errors.New("upstream unavailable")
}

func setUpRouter(t *testing.T, assistant Assistant) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	content, err := store.Load("")
	require.NoError(t, err)

	if assistant == nil {
		assistant = newFallbackResponder(t, nil)
	}

	m := metrics.New()
	h := NewHandler(content, assistant, "test", zerolog.Nop())
	return NewRouter(h, RouterConfig{
		AllowedOrigins: []string{"http://localhost:3000"},
		Metrics:        m,
		Logger:         zerolog.Nop(),
	}), m
}

func newFallbackResponder(t *testing.T, p provider.Provider) *chat.Responder {
	t.Helper()
	matcher, err := fallback.Load("")
	require.NoError(t, err)
	cfg := chat.Config{Provider: p, Matcher: matcher, Timeout: time.Second, Logger: zerolog.Nop()}
	if p != nil {
		cfg.Status = provider.Status{Name: p.Name(), Model: p.Model(), Available: true}
	}
	r, err := chat.New(cfg)
	require.NoError(t, err)
	return r
}

func do(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

/* ---------------- content ---------------- */

func TestIndexAndHealth(t *testing.T) {
	r, _ := setUpRouter(t, nil)

	w := do(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/ai-chat")

	w = do(r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestProfile(t *testing.T) {
	r, _ := setUpRouter(t, nil)

	w := do(r, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var p internal.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Alemu Sisay Nigru", p.Personal.Name)
	assert.NotEmpty(t, p.Education)
	assert.NotEmpty(t, p.Projects)
}

func TestBlog(t *testing.T) {
	r, _ := setUpRouter(t, nil)

	t.Run("List", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/blog", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var posts []internal.BlogPost
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		require.NotEmpty(t, posts)
		assert.Empty(t, posts[0].Content)
	})

	t.Run("Single", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/blog/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var post internal.BlogPost
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
		assert.Equal(t, "1", post.ID)
		assert.NotEmpty(t, post.Content)
	})

	t.Run("UnknownID", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/blog/does-not-exist", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Post not found")
	})
}

func TestDashboard(t *testing.T) {
	r, _ := setUpRouter(t, nil)

	w := do(r, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var d internal.Dashboard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, 3, d.TotalPublications)
	assert.Equal(t, 3, d.TotalProjects)
	assert.Equal(t, 3, d.BlogPosts)
	assert.Equal(t, 5, d.YearsOfExperience)
	assert.Contains(t, d.ResearchAreas, "Healthcare")
}

/* ---------------- AI ---------------- */

func TestAIStatus(t *testing.T) {
	t.Run("NoProvider", func(t *testing.T) {
		r, _ := setUpRouter(t, nil)
		w := do(r, http.MethodGet, "/api/ai-status", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var st internal.AIStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
		assert.Equal(t, "none", st.Provider)
		assert.False(t, st.Available)
		assert.True(t, st.Fallback)
	})

	t.Run("Configured", func(t *testing.T) {
		r, _ := setUpRouter(t, newFallbackResponder(t, failingProvider{}))
		w := do(r, http.MethodGet, "/api/ai-status", nil)

		var st internal.AIStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
		assert.Equal(t, "gemini", st.Provider)
		assert.Equal(t, "gemini-test", st.Model)
		assert.True(t, st.Available)
		assert.False(t, st.Fallback)
	})
}

func TestChat(t *testing.T) {
	r, _ := setUpRouter(t, nil)

	t.Run("ResearchQuestion", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/ai-chat", []byte(`{"question":"What is Alemu's research focus?"}`))
		require.Equal(t, http.StatusOK, w.Code)

		var resp internal.ChatResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Fallback)
		assert.Equal(t, "none", resp.Provider)
		assert.Contains(t, resp.Response, "research")
		assert.False(t, resp.Timestamp.IsZero())
	})

	t.Run("EmptyQuestion", func(t *testing.T) {
		for _, body := range []string{`{"question":""}`, `{"question":"   "}`, `{}`} {
			w := do(r, http.MethodPost, "/api/ai-chat", []byte(body))
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/ai-chat", []byte(`{bad-json`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("RecordsRouteMetrics", func(t *testing.T) {
		body, err := io.ReadAll(do(r, http.MethodGet, "/metrics", nil).Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), `route="/api/ai-chat"`)
	})
}

func TestChatProviderFailureFallsBack(t *testing.T) {
	r, _ := setUpRouter(t, newFallbackResponder(t, failingProvider{}))

	w := do(r, http.MethodPost, "/api/ai-chat", []byte(`{"question":"How can I contact Alemu?"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp internal.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Fallback)
	assert.Equal(t, "gemini", resp.Provider)
	assert.Contains(t, resp.Response, "LinkedIn")
}

func TestChatPassesQuestionThrough(t *testing.T) {
	stub := &stubAssistant{answer: chat.Answer{
		Text:     "live",
		Provider: provider.Status{Name: provider.OpenAI, Available: true},
	}}
	r, _ := setUpRouter(t, stub)

	w := do(r, http.MethodPost, "/api/ai-chat", []byte(`{"question":"hi there"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"hi there"}, stub.asked)
	assert.Contains(t, w.Body.String(), `"response":"live"`)
	assert.Contains(t, w.Body.String(), `"fallback":false`)
}

func TestChatCallerGone(t *testing.T) {
	stub := &stubAssistant{err: context.Canceled}
	r, _ := setUpRouter(t, stub)

	w := do(r, http.MethodPost, "/api/ai-chat", []byte(`{"question":"hi"}`))
	assert.Equal(t, statusClientClosedRequest, w.Code)
	assert.Zero(t, w.Body.Len())
}

/* ---------------- middleware ---------------- */

func TestCORS(t *testing.T) {
	r, _ := setUpRouter(t, nil)

	t.Run("AllowedOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("OtherOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/ai-chat", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "POST"))
	})

	t.Run("Wildcard", func(t *testing.T) {
		e := gin.New()
		e.Use(CORS([]string{"*"}))
		e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("ListedOriginBesideWildcard", func(t *testing.T) {
		e := gin.New()
		e.Use(CORS([]string{"*", "http://localhost:3000"}))
		e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		e.ServeHTTP(w, req)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestRecoverLogsPanic(t *testing.T) {
	content, err := store.Load("")
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	h := NewHandler(content, newFallbackResponder(t, nil), "test", logger)
	r := NewRouter(h, RouterConfig{Logger: logger})
	r.GET("/panic", func(*gin.Context) { panic("handler exploded") })

	w := do(r, http.MethodGet, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")

	var found map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "panic recovered" {
			found = entry
		}
	}
	require.NotNil(t, found, "panic was not logged through zerolog: %s", buf.String())
	assert.Equal(t, "error", found["level"])
	assert.Equal(t, "handler exploded", found["panic"])
	assert.Equal(t, "/panic", found["path"])
	assert.NotEmpty(t, found["request_id"])
}

func TestRequestID(t *testing.T) {
	r, _ := setUpRouter(t, nil)

	w := do(r, http.MethodGet, "/api/health", nil)
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	e := gin.New()
	e.Use(RequestID(), AccessLog(zerolog.New(&buf)))
	e.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	do(e, http.MethodGet, "/boom", nil)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, float64(500), entry["status"])
	assert.Equal(t, "/boom", entry["path"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestUnknownRoute(t *testing.T) {
	r, _ := setUpRouter(t, nil)
	w := do(r, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}
