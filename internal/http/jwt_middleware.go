package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"admitpath/internal/service"
)

const (
	authClaimsKey = "auth_claims"
	authUserKey   = "user_id"
)

// JWTAuthMiddleware exige un access token del servicio de usuarios de la
// plataforma. Deja los claims y el user id en el contexto para los handlers
// y para el log de requests.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := jwtSvc.ParseAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(authClaimsKey, claims)
		c.Set(authUserKey, claims.UserID)
		c.Next()
	}
}

// bearerToken extrae el token de un header "Authorization: Bearer <token>".
func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len("bearer ") || !strings.EqualFold(header[:len("bearer ")], "bearer ") {
		return "", false
	}
	token := strings.TrimSpace(header[len("bearer "):])
	return token, token != ""
}

// GetAuthClaims recupera los claims que dejó el middleware.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
