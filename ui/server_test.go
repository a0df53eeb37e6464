package ui

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sukuyo/adapters/catalog"
	"sukuyo/adapters/ephemeris"
	"sukuyo/app"
	"sukuyo/internal/render"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := catalog.NewEmbedded()
	require.NoError(t, err)
	renderer, err := render.New()
	require.NoError(t, err)

	service := app.NewDiagnosisService(ephemeris.NewLinear(), repo, renderer, time.UTC, nil)
	return NewServer(service, nil, ServerOptions{GinMode: gin.TestMode})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, "healthy", gjson.Get(body, "status").String())
	_, err := time.Parse(time.RFC3339, gjson.Get(body, "timestamp").String())
	assert.NoError(t, err)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "linear", gjson.Get(w.Body.String(), "ephemeris").String())
	assert.True(t, gjson.Get(w.Body.String(), "endpoints.#").Int() >= 4)
}

func TestDiagnose(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/api/diagnose", `{"name":"山田","birthdate":"2024-01-01"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.True(t, gjson.Get(body, "success").Bool())
	assert.Equal(t, "山田", gjson.Get(body, "name").String())
	assert.Equal(t, "2024-01-01", gjson.Get(body, "birthdate").String())
	assert.Equal(t, "角宿", gjson.Get(body, "primary.name").String())
	assert.Equal(t, int64(9), gjson.Get(body, "karma.index").Int())
	assert.Equal(t, int64(25), gjson.Get(body, "origin.index").Int())
	assert.Equal(t, "左旋内集", gjson.Get(body, "kanagi").String())
	assert.Contains(t, gjson.Get(body, "result").String(), "角宿")
	assert.False(t, gjson.Get(body, "result_html").Exists())
	assert.NotEmpty(t, gjson.Get(body, "id").String())

	longitude := gjson.Get(body, "longitude").Float()
	assert.GreaterOrEqual(t, longitude, 0.0)
	assert.Less(t, longitude, 360.0)
	assert.Contains(t, []string{"yin", "yang"}, gjson.Get(body, "phase").String())
}

func TestDiagnoseHTML(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/api/diagnose", `{"birthdate":"2024/01/01","format":"html"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, gjson.Get(w.Body.String(), "result_html").String(), "<p>")
}

func TestDiagnoseBadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed date", `{"birthdate":"not-a-date"}`},
		{"impossible date", `{"birthdate":"2023-02-30"}`},
		{"missing birthdate", `{"name":"x"}`},
		{"not json", `birthdate=2024-01-01`},
		{"bad format", `{"birthdate":"2024-01-01","format":"pdf"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/diagnose", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, gjson.Get(w.Body.String(), "success").Bool())
			assert.Equal(t, "INVALID_INPUT", gjson.Get(w.Body.String(), "error").String())
		})
	}
}

func TestShuku(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/shuku/1", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Equal(t, int64(1), gjson.Get(body, "shuku_id").Int())
	assert.Equal(t, "婁宿", gjson.Get(body, "shuku_name").String())
	assert.Equal(t, "ろうしゅく", gjson.Get(body, "shuku_reading").String())
	assert.Equal(t, "西方白虎", gjson.Get(body, "detail.category").String())
}

func TestShukuOutOfRange(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/shuku/0", "/api/shuku/28", "/api/shuku/-1"} {
		w := do(t, s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "OUT_OF_RANGE", gjson.Get(w.Body.String(), "error").String(), path)
	}

	w := do(t, s, http.MethodGet, "/api/shuku/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", gjson.Get(w.Body.String(), "error").String())
}

func TestMansions(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/mansions", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(28), gjson.Get(w.Body.String(), "count").Int())
	assert.Equal(t, "角宿", gjson.Get(w.Body.String(), "mansions.0.name").String())
	assert.Equal(t, "軫宿", gjson.Get(w.Body.String(), "mansions.27.name").String())
}

func TestPremiumPreview(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/api/premium-preview", `{"birthdate":"2024-01-01"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "角宿", gjson.Get(w.Body.String(), "shuku_name").String())
	assert.Contains(t, gjson.Get(w.Body.String(), "preview_text").String(), "角宿")

	w = do(t, s, http.MethodPost, "/api/premium-preview", `{"birthdate":"yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "trace-123")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(requestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/diagnose", nil)
	req.Header.Set("Origin", "https://example.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	repo, err := catalog.NewEmbedded()
	require.NoError(t, err)
	renderer, err := render.New()
	require.NoError(t, err)
	service := app.NewDiagnosisService(ephemeris.NewLinear(), repo, renderer, nil, nil)
	s := NewServer(service, nil, ServerOptions{GinMode: gin.TestMode, CORSOrigins: []string{"https://ok.test"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.test")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", gjson.Get(w.Body.String(), "error").String())
	assert.Equal(t, "endpoint /api/nope not found", gjson.Get(w.Body.String(), "detail").String())
}

func TestPanicIsReportedAsInternalError(t *testing.T) {
	s := newTestServer(t)
	s.router.GET("/boom", func(c *gin.Context) {
		panic("secret connection string")
	})

	w := do(t, s, http.MethodGet, "/boom", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	assert.False(t, gjson.Get(body, "success").Bool())
	assert.Equal(t, "INTERNAL_ERROR", gjson.Get(body, "error").String())
	assert.Equal(t, "internal server error", gjson.Get(body, "detail").String())
	assert.NotContains(t, body, "secret")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestDiagnoseWithoutNameReturnsNullName(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/api/diagnose", `{"birthdate":"2024-01-01"}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	name := gjson.Get(w.Body.String(), "name")
	assert.True(t, name.Exists())
	assert.Equal(t, gjson.Null, name.Type)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "healthy", gjson.GetBytes(body, "status").String())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
