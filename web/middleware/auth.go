// Package middleware holds the gin middleware of the panel.
package middleware

import (
	"net/http"

	"sgi-panel/database/model"
	"sgi-panel/web/entity"
	"sgi-panel/web/session"

	"github.com/gin-gonic/gin"
)

// AuthRequired rejects requests without a logged-in session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsLogin(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				entity.ErrorMsg{Message: "Sesión no iniciada"})
			return
		}
		c.Next()
	}
}

// RequireAdmin limits a route group to ADMIN accounts.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				entity.ErrorMsg{Message: "Sesión no iniciada"})
			return
		}
		if user.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				entity.ErrorMsg{Message: "Acceso restringido a administradores"})
			return
		}
		c.Next()
	}
}
