package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/metrics"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/models"
	"github.com/25ayu25/BEGC-FinancialManagementSystem-sub002/internal/services"
)

const sessionCookieMaxAge = 12 * 60 * 60

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login verifies credentials and returns a session token. The token is
// also set as a cookie for clients that can't inject custom headers.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		if errors.Is(err, services.ErrInvalidCredentials) || errors.Is(err, services.ErrUserDisabled) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.SetCookie("session", resp.Token, sessionCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

// Logout clears the session cookie. Tokens are stateless, so the client
// is expected to drop its copy as well.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("session", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me returns the account behind the current session.
func (h *AuthHandler) Me(c *gin.Context, userID string) {
	user, err := h.auth.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
