package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{
		Prefix:        "test",
		WindowSeconds: 60,
		MaxRequests:   1,
	}, KeyByIP))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != "ok" {
			t.Fatalf("without redis the limiter is a no-op, got %d %q", w.Code, w.Body.String())
		}
	}
}

func TestKeyByIPAndJSONField(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"email":" User@Example.com ","password":"secret"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))

	key := KeyByIPAndJSONField("email")(c)
	if !strings.HasPrefix(key, "user@example.com|") {
		t.Fatalf("key should start with the lowered field value, got %q", key)
	}

	// The body must survive for the handler's own bind.
	restored, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read restored body failed: %v", err)
	}
	if string(restored) != body {
		t.Fatalf("body was consumed by the key func")
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))

	key := KeyByIPAndJSONField("email")(c)
	if key != c.ClientIP() {
		t.Fatalf("missing field should fall back to the IP, got %q", key)
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("not-json"))
	if key := KeyByIPAndJSONField("email")(c); key != c.ClientIP() {
		t.Fatalf("invalid json should fall back to the IP, got %q", key)
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", value: int64(7), want: 7, ok: true},
		{name: "int", value: 8, want: 8, ok: true},
		{name: "float64", value: float64(9), want: 9, ok: true},
		{name: "uint32", value: uint32(10), want: 10, ok: true},
		{name: "string", value: "11", ok: false},
		{name: "nil", value: nil, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.value)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("want (%d,%v) got (%d,%v)", tc.want, tc.ok, got, ok)
			}
		})
	}
}
