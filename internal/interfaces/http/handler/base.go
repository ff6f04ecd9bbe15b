package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/interfaces/http/dto"
	"github.com/servex/backend/internal/interfaces/http/middleware"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "X-Request-ID"

// devTenantID is assumed when a request carries no tenant at all, so the
// API stays usable from curl during local development.
var devTenantID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// BaseHandler provides the response and identity helpers every domain
// handler embeds. Handlers never write to gin directly; everything goes
// through these so the envelope stays uniform.
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDKey)
}

// getUserID resolves the acting user from JWT claims, falling back to the
// X-User-ID header for development
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetJWTUserID(c)
	if userIDStr == "" {
		userIDStr = c.GetHeader("X-User-ID")
	}
	if userIDStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(userIDStr)
}

// getTenantID resolves the tenant from JWT claims or the X-Tenant-ID
// header, defaulting to the development tenant when neither is present
func getTenantID(c *gin.Context) (uuid.UUID, error) {
	tenantIDStr := middleware.GetJWTTenantID(c)
	if tenantIDStr == "" {
		tenantIDStr = c.GetHeader("X-Tenant-ID")
	}
	if tenantIDStr == "" {
		return devTenantID, nil
	}
	return uuid.Parse(tenantIDStr)
}

// getActor builds the acting user with their role, preferring JWT claims
// and falling back to X-User-ID / X-Role headers for development
func getActor(c *gin.Context) (shared.Actor, error) {
	if claims := middleware.GetJWTClaims(c); claims != nil {
		return claims.Actor()
	}

	userID, err := getUserID(c)
	if err != nil {
		return shared.Actor{}, err
	}

	role := shared.Role(c.GetHeader("X-Role"))
	if !role.IsValid() {
		role = shared.RoleStaff
	}

	return shared.Actor{UserID: userID, Role: role}, nil
}

// Success sends a 200 response with the standard envelope
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response with the standard envelope
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends an empty 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// respond writes the error envelope, stamped with the request ID so a
// client-reported failure can be matched against the logs.
func (h *BaseHandler) respond(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// Error sends an error response with an explicit status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	h.respond(c, statusCode, code, message)
}

// ErrorWithCode sends an error response, deriving the status from the code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.respond(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.respond(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// BindError sends a 400 response for a request binding failure, with
// per-field details when the failure came from struct validation
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		middleware.HandleValidationError(c, err)
		return
	}
	h.BadRequest(c, err.Error())
}

// NotFound sends a 404 response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.respond(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.respond(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// Forbidden sends a 403 response
func (h *BaseHandler) Forbidden(c *gin.Context, message string) {
	h.respond(c, http.StatusForbidden, dto.ErrCodeForbidden, message)
}

// Conflict sends a 409 response
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	h.respond(c, http.StatusConflict, dto.ErrCodeConflict, message)
}

// UnprocessableEntity sends a 422 response with a caller-chosen code
func (h *BaseHandler) UnprocessableEntity(c *gin.Context, code, message string) {
	h.respond(c, http.StatusUnprocessableEntity, code, message)
}

// InternalError sends a 500 response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.respond(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// TooManyRequests sends a 429 response
func (h *BaseHandler) TooManyRequests(c *gin.Context, message string) {
	h.respond(c, http.StatusTooManyRequests, dto.ErrCodeRateLimited, message)
}

// ValidationError sends a 400 response carrying per-field details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// writeDomainError maps a *shared.DomainError (possibly wrapped) onto the
// wire: legacy codes are normalized and the status derived from the code.
// Reports false when err is not a domain error.
func (h *BaseHandler) writeDomainError(c *gin.Context, err error) bool {
	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		return false
	}
	code := dto.NormalizeErrorCode(domainErr.Code)
	h.respond(c, dto.GetHTTPStatus(code), code, domainErr.Message)
	return true
}

// HandleDomainError converts a domain error to its HTTP response; anything
// else becomes a 500
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	if h.writeDomainError(c, err) {
		return
	}
	h.InternalError(c, "An unexpected error occurred")
}

// HandleError is the catch-all for service-layer errors. Domain errors keep
// their code and status; opaque errors are not leaked to the client.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if h.writeDomainError(c, err) {
		return
	}
	h.InternalError(c, "An unexpected error occurred")
}
