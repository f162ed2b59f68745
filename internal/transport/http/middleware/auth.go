package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kairowan/gatehouse/internal/core/auth"
	"github.com/kairowan/gatehouse/internal/domain"
	"github.com/kairowan/gatehouse/internal/service"
	resp "github.com/kairowan/gatehouse/internal/transport/http/response"
)

// gin context keys set by the auth middlewares
const (
	KeyUserID     = "userId"
	KeyAuthRole   = "authRole"
	KeyAdminToken = "adminViaStore" // true 仅当 admin 角色来自 token 表
)

func bearer(c *gin.Context) (string, bool) {
	ah := c.GetHeader("Authorization")
	if !strings.HasPrefix(ah, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(ah, "Bearer "), true
}

// RequireStandard admits a login session JWT or any live store token. A
// session carries the caller's user id; a store token carries only its role.
func RequireStandard(j *auth.JWTer, authz *service.AuthzService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		if claims, err := j.Parse(tok); err == nil {
			c.Set(KeyUserID, claims.UID)
			c.Set(KeyAuthRole, domain.RoleStandard)
			c.Next()
			return
		}
		t, err := authz.Resolve(c.Request.Context(), tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, ""))
			return
		}
		if t == nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		c.Set(KeyAuthRole, t.Role)
		if t.Role == domain.RoleAdmin {
			c.Set(KeyAdminToken, true)
		}
		c.Next()
	}
}

// RequireAdmin admits only store tokens whose role is admin. The token table
// is the sole source of that decision.
func RequireAdmin(authz *service.AuthzService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		admin, err := authz.AuthorizeAdmin(c.Request.Context(), tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeServerError, ""))
			return
		}
		if !admin {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(KeyAuthRole, domain.RoleAdmin)
		c.Set(KeyAdminToken, true)
		c.Next()
	}
}
