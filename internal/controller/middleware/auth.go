package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pharmasuccess/examportal/internal/dto"
	"github.com/pharmasuccess/examportal/internal/model"
	"github.com/pharmasuccess/examportal/internal/service"
	"github.com/rs/zerolog/log"
)

const claimsContextKey = "auth_claims"

// RequireAuth validates the Bearer token and stores the parsed claims in the
// request context for handlers downstream.
func RequireAuth(authService service.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Missing or malformed Authorization header"))
			return
		}

		claims, err := authService.ParseToken(token)
		if err != nil {
			log.Warn().Err(err).Msg("RequireAuth: token rejected")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Invalid or expired token"))
			return
		}

		ctx.Set(claimsContextKey, claims)
		ctx.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := CurrentUser(ctx)
		if claims == nil || claims.UserType != model.UserTypeAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.Fail("Admin access required"))
			return
		}
		ctx.Next()
	}
}

// CurrentUser returns the claims stored by RequireAuth, or nil on an
// unauthenticated request.
func CurrentUser(ctx *gin.Context) *service.Claims {
	value, exists := ctx.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}
