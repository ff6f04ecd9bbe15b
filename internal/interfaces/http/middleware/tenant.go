package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/servex/backend/internal/infrastructure/logger"
)

// Gin context keys and the wire header for tenant identity
const (
	TenantIDKey     = "tenant_id"
	TenantCodeKey   = "tenant_code"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantInfo holds the resolved tenant identity
type TenantInfo struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

// TenantValidator checks that a tenant exists and is active
type TenantValidator interface {
	ValidateTenant(tenantID string) (*TenantInfo, error)
}

// TenantMiddlewareConfig holds configuration for tenant middleware.
// Resolution order is JWT claims, then the X-Tenant-ID header, then the
// request subdomain when SubdomainEnabled and BaseDomain are set.
type TenantMiddlewareConfig struct {
	HeaderEnabled    bool
	JWTEnabled       bool
	SubdomainEnabled bool
	BaseDomain       string
	SkipPaths        []string
	Required         bool
	Validator        TenantValidator
	Logger           *zap.Logger
}

// DefaultTenantConfig returns the default tenant middleware configuration
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		HeaderEnabled: true,
		JWTEnabled:    true,
		SkipPaths:     []string{"/health", "/healthz", "/ready", "/api/v1/health"},
		Required:      true,
	}
}

// TenantMiddleware resolves the tenant with the default configuration
func TenantMiddleware() gin.HandlerFunc {
	return TenantMiddlewareWithConfig(DefaultTenantConfig())
}

// TenantMiddlewareWithConfig returns tenant middleware with custom configuration
func TenantMiddlewareWithConfig(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skippedPath(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		tenantID, source := resolveTenant(c, cfg)

		if tenantID != "" {
			if _, err := uuid.Parse(tenantID); err != nil {
				respondUnauthorized(c, "Invalid tenant ID format")
				return
			}
		}

		if tenantID == "" && cfg.Required {
			respondUnauthorized(c, "Tenant identification required")
			return
		}

		var tenantInfo *TenantInfo
		if tenantID != "" && cfg.Validator != nil {
			var err error
			tenantInfo, err = cfg.Validator.ValidateTenant(tenantID)
			if err != nil {
				log := cfg.Logger
				if log == nil {
					log = logger.FromContext(c.Request.Context())
				}
				log.Warn("Tenant validation failed",
					zap.String("tenant_id", tenantID),
					zap.Error(err),
				)
				respondUnauthorized(c, "Invalid or inactive tenant")
				return
			}
		}

		if tenantID != "" {
			c.Set(TenantIDKey, tenantID)
			if tenantInfo != nil {
				c.Set(TenantCodeKey, tenantInfo.Code)
			}

			// Propagate into the request context so repositories and the
			// gorm logger see the tenant without a gin dependency
			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithTenantID(ctx, log, tenantID)
			c.Request = c.Request.WithContext(ctx)

			if cfg.Logger != nil {
				cfg.Logger.Debug("Tenant identified",
					zap.String("tenant_id", tenantID),
					zap.String("method", source),
				)
			}
		}

		c.Next()
	}
}

func skippedPath(skipPaths []string, path string) bool {
	for _, skip := range skipPaths {
		if path == skip || strings.HasPrefix(path, skip+"/") {
			return true
		}
	}
	return false
}

// resolveTenant returns the tenant ID and which source produced it
func resolveTenant(c *gin.Context, cfg TenantMiddlewareConfig) (string, string) {
	if cfg.JWTEnabled {
		if jwtTenantID, ok := c.Get("jwt_tenant_id"); ok {
			if id, valid := jwtTenantID.(string); valid && id != "" {
				return id, "jwt"
			}
		}
	}

	if cfg.HeaderEnabled {
		if headerTenantID := c.GetHeader(TenantHeaderKey); headerTenantID != "" {
			return headerTenantID, "header"
		}
	}

	if cfg.SubdomainEnabled && cfg.BaseDomain != "" {
		if sub := tenantFromSubdomain(c.Request.Host, cfg.BaseDomain); sub != "" {
			return sub, "subdomain"
		}
	}

	return "", ""
}

// tenantFromSubdomain extracts the tenant code from the host, e.g.
// "acme.servex.app" with base domain "servex.app" yields "acme"
func tenantFromSubdomain(host, baseDomain string) string {
	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}

	if !strings.HasSuffix(host, baseDomain) {
		return ""
	}

	subdomain := strings.TrimSuffix(host, "."+baseDomain)
	if subdomain == host || subdomain == "" || subdomain == "www" {
		return ""
	}

	// Only the leftmost label counts for multi-level subdomains
	parts := strings.Split(subdomain, ".")
	return parts[0]
}

func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetTenantID retrieves the tenant ID set by the middleware
func GetTenantID(c *gin.Context) string {
	if tenantID, ok := c.Get(TenantIDKey); ok {
		if id, valid := tenantID.(string); valid {
			return id
		}
	}
	return ""
}

// GetTenantUUID retrieves the tenant ID as a UUID. Returns uuid.Nil with
// no error when the middleware resolved no tenant.
func GetTenantUUID(c *gin.Context) (uuid.UUID, error) {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(tenantID)
}

// GetTenantCode retrieves the validated tenant code, when a validator ran
func GetTenantCode(c *gin.Context) string {
	if tenantCode, ok := c.Get(TenantCodeKey); ok {
		if code, valid := tenantCode.(string); valid {
			return code
		}
	}
	return ""
}
