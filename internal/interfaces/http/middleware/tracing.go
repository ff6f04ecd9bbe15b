// Package middleware provides HTTP middleware for the freight back office.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Caps on header-sourced trace attributes. Request IDs over the cap are
// truncated; tenant IDs must parse as UUIDs or they are dropped.
const (
	MaxRequestIDLength = 128
	MaxTenantIDLength  = 64
)

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns the default tracing configuration
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "servex-backend",
		Enabled:     true,
	}
}

// Tracing returns the tracing middleware with default configuration
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin and enriches each request span with
// request_id, tenant_id and user_id so traces can be sliced by tenant.
// Span names come from otelgin as "METHOD route_pattern".
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	base := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		base(c)

		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpan(c, span)
		}
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if requestID := traceRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}
	if tenantID := traceTenantID(c); tenantID != "" {
		span.SetAttributes(attribute.String("tenant_id", tenantID))
	}
	if userID, ok := c.Get(JWTUserIDKey); ok {
		if id, valid := userID.(string); valid && id != "" {
			span.SetAttributes(attribute.String("user_id", id))
		}
	}
}

// traceRequestID prefers the ID set by the RequestID middleware and falls
// back to the raw header, truncated to the cap
func traceRequestID(c *gin.Context) string {
	if requestID, ok := c.Get("request_id"); ok {
		if id, valid := requestID.(string); valid && id != "" {
			return id
		}
	}

	headerID := c.GetHeader("X-Request-ID")
	if len(headerID) > MaxRequestIDLength {
		return headerID[:MaxRequestIDLength]
	}
	return headerID
}

// traceTenantID prefers JWT claims over the X-Tenant-ID header, which is
// only accepted when it looks like a UUID
func traceTenantID(c *gin.Context) string {
	if tenantID, ok := c.Get(JWTTenantIDKey); ok {
		if id, valid := tenantID.(string); valid && id != "" {
			return id
		}
	}

	if headerTenantID := c.GetHeader("X-Tenant-ID"); isValidTenantID(headerTenantID) {
		return headerTenantID
	}
	return ""
}

func isValidTenantID(tenantID string) bool {
	if tenantID == "" || len(tenantID) > MaxTenantIDLength {
		return false
	}
	return uuidRegex.MatchString(tenantID)
}

// SpanErrorMarker marks the request span with an error status on 4xx/5xx
// responses. Place it after the Tracing middleware.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode < http.StatusBadRequest {
			return
		}

		var message string
		switch {
		case statusCode >= http.StatusInternalServerError:
			message = "Internal Server Error"
		case statusCode == http.StatusUnauthorized:
			message = "Unauthorized"
		case statusCode == http.StatusForbidden:
			message = "Forbidden"
		case statusCode == http.StatusNotFound:
			message = "Not Found"
		default:
			message = "Client Error"
		}

		span.SetStatus(codes.Error, message)
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
}

// TracingAttributeInjector re-enriches the span after auth middleware has
// populated JWT claims. Place it after both Tracing and the JWT middleware.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpan(c, span)
		}
		c.Next()
	}
}
