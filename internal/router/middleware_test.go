package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/fidelio-loyalty/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		name             string
		origin           string
		allowedOrigins   []string
		allowCredentials bool
		want             string
	}{
		{name: "wildcard", origin: "https://a.example", allowedOrigins: []string{"*"}, want: "*"},
		{name: "wildcard with credentials echoes origin", origin: "https://a.example", allowedOrigins: []string{"*"}, allowCredentials: true, want: "https://a.example"},
		{name: "exact match", origin: "https://a.example", allowedOrigins: []string{"https://a.example"}, want: "https://a.example"},
		{name: "case insensitive match", origin: "https://A.example", allowedOrigins: []string{"https://a.example"}, want: "https://A.example"},
		{name: "no match", origin: "https://b.example", allowedOrigins: []string{"https://a.example"}, want: ""},
		{name: "empty origin no wildcard", origin: "", allowedOrigins: []string{"https://a.example"}, want: ""},
		{name: "empty list", origin: "https://a.example", allowedOrigins: nil, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveAllowedOrigin(tc.origin, tc.allowedOrigins, tc.allowCredentials)
			if got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, getRequestID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	generated := w.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("request id should be generated")
	}
	if w.Body.String() != generated {
		t.Fatalf("context id %q should match header %q", w.Body.String(), generated)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "trace-42")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "trace-42" {
		t.Fatalf("caller id should be reused, got %q", got)
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("envelope always ships with HTTP 200, got %d", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body.StatusCode != response.CodeUnauthorized {
		t.Fatalf("status_code want %d got %d", response.CodeUnauthorized, body.StatusCode)
	}
}

func TestIsIssuedAfterInvalidBefore(t *testing.T) {
	now := time.Now()
	issued := jwt.NewNumericDate(now)

	if !isIssuedAfterInvalidBefore(issued, nil) {
		t.Fatalf("no revocation mark means valid")
	}
	cutoff := now.Add(time.Hour)
	if isIssuedAfterInvalidBefore(issued, &cutoff) {
		t.Fatalf("token issued before the cutoff must be rejected")
	}
	past := now.Add(-time.Hour)
	if !isIssuedAfterInvalidBefore(issued, &past) {
		t.Fatalf("token issued after the cutoff is valid")
	}
	if isIssuedAfterInvalidBefore(nil, &past) {
		t.Fatalf("missing iat fails closed when a cutoff exists")
	}

	if !isIssuedAfterInvalidBeforeUnix(issued, 0) {
		t.Fatalf("zero cutoff means valid")
	}
	if isIssuedAfterInvalidBeforeUnix(issued, now.Add(time.Hour).Unix()) {
		t.Fatalf("unix cutoff in the future must reject")
	}
}

func TestIsActiveUserStatus(t *testing.T) {
	if !isActiveUserStatus(" Active ") {
		t.Fatalf("status compare is trimmed and case-insensitive")
	}
	if isActiveUserStatus("disabled") {
		t.Fatalf("disabled is not active")
	}
	if isActiveUserStatus("") {
		t.Fatalf("empty status is not active")
	}
}
