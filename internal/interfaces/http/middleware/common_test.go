package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func corsRouter(cfg CORSConfig) *gin.Engine {
	router := gin.New()
	router.Use(CORSWithConfig(cfg))
	router.GET("/clients", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func sendWithOrigin(router *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/clients", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS_DefaultConfig(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/clients", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("cross-origin request gets no CORS headers until configured", func(t *testing.T) {
		w := sendWithOrigin(router, "GET", "http://untrusted.example")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("same-origin request passes", func(t *testing.T) {
		w := sendWithOrigin(router, "GET", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("preflight still answers 204", func(t *testing.T) {
		w := sendWithOrigin(router, "OPTIONS", "http://untrusted.example")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("allows a whitelisted origin", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		})

		w := sendWithOrigin(router, "GET", "http://localhost:3000")

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("each whitelisted origin is echoed back", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{"http://localhost:3000", "https://office.acme-freight.example"},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Content-Type"},
		})

		for _, origin := range []string{"http://localhost:3000", "https://office.acme-freight.example"} {
			w := sendWithOrigin(router, "GET", origin)
			assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
		}
	})

	t.Run("origin outside the whitelist gets no headers", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{"http://allowed.example"},
		})

		w := sendWithOrigin(router, "GET", "http://other.example")

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty whitelist sets nothing", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Content-Type"},
		})

		w := sendWithOrigin(router, "GET", "http://any.example")

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
		})

		w := sendWithOrigin(router, "GET", "http://any.example")

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("max-age is rendered in seconds", func(t *testing.T) {
		tests := []struct {
			duration time.Duration
			expected string
		}{
			{time.Hour, "3600"},
			{12 * time.Hour, "43200"},
			{time.Minute, "60"},
		}

		for _, tt := range tests {
			router := corsRouter(CORSConfig{
				AllowOrigins: []string{"http://localhost:3000"},
				AllowMethods: []string{"GET"},
				AllowHeaders: []string{"Content-Type"},
				MaxAge:       tt.duration,
			})

			w := sendWithOrigin(router, "GET", "http://localhost:3000")
			assert.Equal(t, tt.expected, w.Header().Get("Access-Control-Max-Age"))
		}
	})

	t.Run("expose headers are joined", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowMethods:  []string{"GET"},
			AllowHeaders:  []string{"Content-Type"},
			ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining"},
		})

		w := sendWithOrigin(router, "GET", "http://localhost:3000")

		assert.Equal(t, "X-Request-ID, X-RateLimit-Remaining", w.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("preflight from a whitelisted origin", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PUT"},
			AllowHeaders: []string{"Content-Type", "Authorization"},
		})

		w := sendWithOrigin(router, "OPTIONS", "http://localhost:3000")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, PUT", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("preflight from a disallowed origin", func(t *testing.T) {
		router := corsRouter(CORSConfig{
			AllowOrigins: []string{"http://allowed.example"},
			AllowMethods: []string{"GET", "POST"},
		})

		w := sendWithOrigin(router, "OPTIONS", "http://other.example")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()

	assert.Empty(t, cfg.AllowOrigins)
	assert.Contains(t, cfg.AllowMethods, "GET")
	assert.Contains(t, cfg.AllowMethods, "POST")
	assert.Contains(t, cfg.AllowHeaders, "Content-Type")
	assert.Contains(t, cfg.AllowHeaders, "Authorization")
	assert.Contains(t, cfg.AllowHeaders, "X-Tenant-ID")
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, 12*time.Hour, cfg.MaxAge)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/clients", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	t.Run("generates an ID when none supplied", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/clients", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		id := w.Header().Get("X-Request-ID")
		assert.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())

		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("honors a caller-supplied ID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/clients", nil)
		req.Header.Set("X-Request-ID", "req-from-gateway")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "req-from-gateway", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "req-from-gateway", w.Body.String())
	})

	t.Run("IDs are unique across requests", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, httptest.NewRequest("GET", "/clients", nil))
		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, httptest.NewRequest("GET", "/clients", nil))

		assert.NotEqual(t, w1.Header().Get("X-Request-ID"), w2.Header().Get("X-Request-ID"))
	})
}

func secureRouter(cfg SecurityConfig) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(SecureWithConfig(cfg))
	router.GET("/clients", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/clients", nil))
	return w
}

func TestSecure_Defaults(t *testing.T) {
	router := gin.New()
	router.Use(Secure())
	router.GET("/clients", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/clients", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))

	csp := w.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "default-src 'self'")
	assert.Contains(t, csp, "frame-ancestors 'none'")

	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	permPolicy := w.Header().Get("Permissions-Policy")
	assert.Contains(t, permPolicy, "camera=()")
	assert.Contains(t, permPolicy, "microphone=()")
}

func TestSecureWithConfig(t *testing.T) {
	t.Run("custom CSP directive", func(t *testing.T) {
		w := secureRouter(SecurityConfig{
			CSPEnabled:   true,
			CSPDirective: "default-src 'none'; script-src 'self'",
		})

		assert.Equal(t, "default-src 'none'; script-src 'self'", w.Header().Get("Content-Security-Policy"))
		assert.Empty(t, w.Header().Get("Permissions-Policy"))
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("HSTS with all options", func(t *testing.T) {
		w := secureRouter(SecurityConfig{
			HSTSEnabled:           true,
			HSTSMaxAge:            63072000,
			HSTSIncludeSubdomains: true,
			HSTSPreload:           true,
		})

		assert.Equal(t, "max-age=63072000; includeSubDomains; preload", w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("HSTS with max-age only", func(t *testing.T) {
		w := secureRouter(SecurityConfig{
			HSTSEnabled: true,
			HSTSMaxAge:  31536000,
		})

		assert.Equal(t, "max-age=31536000", w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("custom Permissions-Policy directive", func(t *testing.T) {
		w := secureRouter(SecurityConfig{
			PermissionsPolicyEnabled:   true,
			PermissionsPolicyDirective: "geolocation=(self), microphone=()",
		})

		assert.Equal(t, "geolocation=(self), microphone=()", w.Header().Get("Permissions-Policy"))
	})

	t.Run("optional headers disabled", func(t *testing.T) {
		w := secureRouter(SecurityConfig{})

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
		assert.Empty(t, w.Header().Get("Permissions-Policy"))
	})
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	assert.False(t, cfg.HSTSEnabled)
	assert.Equal(t, 31536000, cfg.HSTSMaxAge)
	assert.True(t, cfg.HSTSIncludeSubdomains)
	assert.False(t, cfg.HSTSPreload)

	assert.True(t, cfg.CSPEnabled)
	assert.Contains(t, cfg.CSPDirective, "default-src 'self'")
	assert.Contains(t, cfg.CSPDirective, "frame-ancestors 'none'")

	assert.True(t, cfg.PermissionsPolicyEnabled)
	assert.Contains(t, cfg.PermissionsPolicyDirective, "camera=()")
}
