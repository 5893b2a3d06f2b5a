package httpx

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"log/slog"

	"assistant/pkg/jwtauth"
)

const CtxKeyJWTClaims = "jwt_claims"

type verifier interface {
	ParseAndVerify(token string) (*jwtauth.Claims, error)
}

func AuthJWT(rootLog *slog.Logger, v verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		l := rootLog
		if rl, ok := c.Get(CtxKeyLogger); ok {
			if reqLog, ok := rl.(*slog.Logger); ok && reqLog != nil {
				l = reqLog
			}
		}

		authz := c.GetHeader("Authorization")
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			l.Warn("auth: missing/invalid Authorization")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}

		claims, err := v.ParseAndVerify(parts[1])
		if err != nil {
			l.Warn("auth: token verify failed", slog.String("err", err.Error()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxKeyJWTClaims, claims)
		c.Next()
	}
}
