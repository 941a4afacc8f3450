package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// actorClaims is the token claim set the identity middleware cares about:
// the actor's email, issued by the external auth collaborator.
type actorClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IdentityMiddleware extracts the acting user's email from the bearer token
// supplied by the caller's auth context. Authentication itself is external;
// this middleware only checks the shared-secret signature and lifts the email
// claim into the request context so services can stamp audit fields.
func IdentityMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &actorClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*actorClaims)
		if !ok || !token.Valid || claims.Email == "" {
			logger.Warn("Token valid but email claim missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token must carry an email claim"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), actorCtxKey, claims.Email)
		ctx = context.WithValue(ctx, loggerCtxKey, GetLoggerFromCtx(ctx).With(slog.String("actor", claims.Email)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActorFromCtx retrieves the acting user's email from a context.
// It returns the email and a boolean indicating if it was found.
func GetActorFromCtx(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorCtxKey).(string)
	return actor, ok && actor != ""
}
