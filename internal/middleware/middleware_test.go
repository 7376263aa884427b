package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orgchart/internal/metrics"
	"orgchart/internal/service"
	applog "orgchart/pkg/log"
	"orgchart/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeAuthService struct {
	authenticateFn func(ctx context.Context, accessToken string) (*token.Claims, error)
}

func (f *fakeAuthService) Login(username, password string) (string, string, error) {
	return "", "", nil
}

func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	return "", "", nil
}

func (f *fakeAuthService) Logout(ctx context.Context, accessToken string) error {
	return nil
}

func (f *fakeAuthService) Authenticate(ctx context.Context, accessToken string) (*token.Claims, error) {
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, accessToken)
	}
	return &token.Claims{Username: "admin", Role: service.RoleAdmin}, nil
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	applog.Init("error", "console", "")
	m.Run()
}

func newAuthRouter(svc service.AuthService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no claims")
			return
		}
		c.String(http.StatusOK, claims.Username+" "+c.GetString(ContextKeyAccessToken))
	})
	return r
}

func doGet(r http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_Success(t *testing.T) {
	var seen string
	svc := &fakeAuthService{
		authenticateFn: func(ctx context.Context, accessToken string) (*token.Claims, error) {
			seen = accessToken
			return &token.Claims{Username: "admin", Role: service.RoleAdmin}, nil
		},
	}
	w := doGet(newAuthRouter(svc), "/protected", "bearer tok-123")
	if w.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if seen != "tok-123" || w.Body.String() != "admin tok-123" {
		t.Fatalf("unexpected token/body: %q / %q", seen, w.Body.String())
	}
}

func TestAuthMiddleware_InvalidHeader(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{})
	for _, header := range []string{"", "tok-123", "Basic abc", "Bearer a b"} {
		if w := doGet(r, "/protected", header); w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expect 401, got %d", header, w.Code)
		}
	}
}

func TestAuthMiddleware_Rejected(t *testing.T) {
	svc := &fakeAuthService{
		authenticateFn: func(ctx context.Context, accessToken string) (*token.Claims, error) {
			return nil, service.ErrUnauthorized
		},
	}
	if w := doGet(newAuthRouter(svc), "/protected", "Bearer tok"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expect 401, got %d", w.Code)
	}
}

func TestAuthMiddleware_InternalError(t *testing.T) {
	svc := &fakeAuthService{
		authenticateFn: func(ctx context.Context, accessToken string) (*token.Claims, error) {
			return nil, errors.Join(service.ErrInternal, errors.New("redis down"))
		},
	}
	if w := doGet(newAuthRouter(svc), "/protected", "Bearer tok"); w.Code != http.StatusInternalServerError {
		t.Fatalf("expect 500, got %d", w.Code)
	}

	if w := doGet(newAuthRouter(nil), "/protected", "Bearer tok"); w.Code != http.StatusInternalServerError {
		t.Fatalf("nil service: expect 500, got %d", w.Code)
	}
}

func TestRequestLogger_KeepsRequestBody(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger())
	r.POST("/echo", func(c *gin.Context) {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(c.Request.Body)
		c.String(http.StatusOK, buf.String())
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"salary":1300}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != `{"salary":1300}` {
		t.Fatalf("handler should still read the body, got %d %q", w.Code, w.Body.String())
	}
}

func TestBodyLogWriter_Truncates(t *testing.T) {
	r := gin.New()
	var captured *BodyLogWriter
	r.GET("/big", func(c *gin.Context) {
		captured = &BodyLogWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = captured
		c.String(http.StatusOK, strings.Repeat("x", maxLoggedBody*2))
	})

	w := doGet(r, "/big", "")
	if w.Body.Len() != maxLoggedBody*2 {
		t.Fatalf("client should receive the full body, got %d bytes", w.Body.Len())
	}
	if captured.body.Len() != maxLoggedBody {
		t.Fatalf("logged body should be truncated to %d, got %d", maxLoggedBody, captured.body.Len())
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := gin.New()
	r.Use(Metrics(metrics.NewCollector(reg)))
	r.GET("/api/v1/org/nodes/:name", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	doGet(r, "/api/v1/org/nodes/Alice", "")
	doGet(r, "/api/v1/org/nodes/Bob", "")
	doGet(r, "/nowhere", "")

	expected := `
# HELP orgchart_http_requests_total Total number of HTTP requests
# TYPE orgchart_http_requests_total counter
orgchart_http_requests_total{method="GET",path="/api/v1/org/nodes/:name",status="404"} 2
orgchart_http_requests_total{method="GET",path="unmatched",status="404"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "orgchart_http_requests_total"); err != nil {
		t.Fatalf("unexpected metrics: %v", err)
	}
}
