package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/agentvault/agentvault/internal/auth/service"
	authUseCase "github.com/agentvault/agentvault/internal/auth/usecase"
	apperrors "github.com/agentvault/agentvault/internal/errors"
	"github.com/agentvault/agentvault/internal/httputil"
)

// AuthenticationMiddleware provides authentication via Bearer token in the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Hashes the token using tokenService.HashToken()
// 3. Resolves the token using principalUseCase.Authenticate()
// 4. Stores the authenticated principal in the request context
// 5. Allows downstream handlers to access the principal via GetPrincipal()
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Unknown token → 401 Unauthorized
//   - Inactive principal → 403 Forbidden
func AuthenticationMiddleware(
	principalUseCase authUseCase.PrincipalUseCase,
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		tokenHash := tokenService.HashToken(plainToken)

		principal, err := principalUseCase.Authenticate(c.Request.Context(), tokenHash)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("principal_id", principal.ID.String()),
			slog.String("principal_name", principal.Name))

		c.Next()
	}
}

// RequireAdmin gates a route on the admin allow-list.
//
// MUST be used after AuthenticationMiddleware. Returns 401 if no authenticated
// principal is in the context and 403 if the principal is not an admin.
func RequireAdmin(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok || principal == nil {
			logger.Debug("admin check failed: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !principal.IsAdmin {
			logger.Debug("admin check failed: principal is not an admin",
				slog.String("principal_id", principal.ID.String()))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
