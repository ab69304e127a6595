package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-discovery-booking/internal/config"
)

func rateContext(userID interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/home", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/home")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestBuildRateKey(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_user_route"}

	t.Run("authenticated requests key on the user", func(t *testing.T) {
		key := buildRateKey(cfg, rateContext(float64(7)))
		if !strings.Contains(key, ":user:7:") {
			t.Fatalf("key %q does not carry user 7", key)
		}
		if strings.Contains(key, "anon") {
			t.Fatalf("authenticated key %q fell back to anon", key)
		}
	})

	t.Run("anonymous requests key on anon", func(t *testing.T) {
		key := buildRateKey(cfg, rateContext(nil))
		if !strings.Contains(key, ":user:anon:") {
			t.Fatalf("key %q does not mark the caller anonymous", key)
		}
	})

	t.Run("different users get different buckets", func(t *testing.T) {
		k1 := buildRateKey(cfg, rateContext(uint64(7)))
		k2 := buildRateKey(cfg, rateContext(uint64(8)))
		if k1 == k2 {
			t.Fatalf("users 7 and 8 share bucket %s", k1)
		}
	})
}
