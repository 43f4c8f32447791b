package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kashieternal/rewardsgate/internal/server/http/dto"
	"github.com/kashieternal/rewardsgate/internal/server/http/middleware"
)

// AuthHandler processes the OTP login flow and admin login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// SendOTP handles POST /api/auth/send-otp.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.SendOTP(c.Request.Context(), req.Phone); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ResendOTP handles POST /api/auth/resend-otp.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req dto.SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ResendOTP(c.Request.Context(), req.Phone); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, profile, err := h.facade.VerifyOTP(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

// AdminLogin handles POST /api/auth/admin-login.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	token, admin, err := h.facade.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AdminLoginResponse{Name: admin.Name, Role: admin.Role})
}

// Logout handles POST /api/auth/logout. It succeeds regardless of whether a
// valid session token was presented.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.ExtractToken(c); token != "" {
		h.facade.Logout(c.Request.Context(), token)
	}
	middleware.ClearAuthCookie(c)
	c.Status(http.StatusOK)
}
