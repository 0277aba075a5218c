package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Context keys below are set by the JWT middleware; handlers behind it
// may assume they exist.

func currentUsername(c *gin.Context) string {
	v, _ := c.Get("username")
	username, _ := v.(string)
	return username
}

func currentRole(c *gin.Context) string {
	v, _ := c.Get("role")
	role, _ := v.(string)
	return role
}

func currentTokenID(c *gin.Context) string {
	v, _ := c.Get("jti")
	jti, _ := v.(string)
	return jti
}

func currentTokenExpiry(c *gin.Context) time.Time {
	v, _ := c.Get("token_expires_at")
	exp, _ := v.(time.Time)
	return exp
}
