package handler

import (
	identityapp "github.com/bakeryops/backend/internal/application/identity"
	"github.com/bakeryops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication API endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LogoutRequest represents a logout request
type LogoutRequest struct {
	AllDevices bool `json:"all_devices"`
}

// LogoutResponse confirms a logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// Login authenticates a user and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req identityapp.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout revokes the current token, or all of the user's tokens when
// all_devices is set
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		h.BadRequest(c, "Invalid user ID in token")
		return
	}

	// Body is optional; absence means current-device logout
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	err = h.authService.Logout(c.Request.Context(), identityapp.LogoutInput{
		UserID:     userID,
		JTI:        claims.ID,
		TokenTTL:   claims.GetRemainingTTL(),
		AllDevices: req.AllDevices,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LogoutResponse{
		Message: "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user's profile
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		h.BadRequest(c, "Invalid user ID in token")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword changes the authenticated user's password and revokes
// existing sessions
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Password changed successfully"})
}
