package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/socialbattery/internal/common"
	"github.com/dmitrijs2005/socialbattery/internal/server/auth"
)

// contextIdentifierKey is where the middleware parks the authenticated
// identifier for downstream handlers.
const contextIdentifierKey = "identifier"

// RequireToken rejects requests without a valid bearer token and otherwise
// exposes the token's identifier via the gin context.
func (h *Handlers) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AccessTokenHeaderName)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("missing bearer token"))
			return
		}

		identifier, err := auth.GetIdentifierFromToken(token, h.secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("invalid or expired token"))
			return
		}

		c.Set(contextIdentifierKey, identifier)
		c.Next()
	}
}
