package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const principalKey = "auth.principal"

// RequireAuth rejects requests without a valid bearer token and stores the
// principal on the gin context.
func (a *AuthService) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		h := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token", "code": "unauthenticated"})
			return
		}
		p, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Rejected bearer token")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token", "code": "unauthenticated"})
			return
		}
		ctx.Set(principalKey, p)
		ctx.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p, ok := FromGin(ctx)
		if !ok || !p.HasRole(roles...) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient role", "code": "permission_denied"})
			return
		}
		ctx.Next()
	}
}

func FromGin(ctx *gin.Context) (Principal, bool) {
	v, ok := ctx.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
