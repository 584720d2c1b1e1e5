package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
)

const identityKey = "identity"

// RequireIdentity rejects the request with 401 unless a user is signed in.
func RequireIdentity(source ports.IdentitySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := source.Current().Identity
		if identity == nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthenticated, GetLang(c)),
			)
			return
		}
		c.Set(identityKey, *identity)
		c.Next()
	}
}

func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}
