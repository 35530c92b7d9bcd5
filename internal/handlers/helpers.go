package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadflow/internal/authz"
	"leadflow/internal/middleware"
	"leadflow/internal/repositories"
	"leadflow/internal/services"
)

func currentUser(c *gin.Context) string {
	if u := c.GetString(middleware.CurrentUserKey); u != "" {
		return u
	}
	return authz.AdminUser
}

// respondError maps service errors to status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, repositories.ErrDuplicateID):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case services.IsClientError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
