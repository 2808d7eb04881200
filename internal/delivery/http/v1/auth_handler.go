package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := public.Group("/auth")
	{
		auth.POST("/signup", handler.Signup)
		auth.GET("/verify/:token", handler.VerifyEmail)
		auth.POST("/login", handler.Login)
		auth.POST("/forgot-password", handler.ForgotPassword)
		auth.POST("/reset-password/:token", handler.ResetPassword)
	}
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,role"`
}

type LoginRequest struct {
	// Identifier is an email address or a username.
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string      `json:"token"`
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// Signup creates a User and mails a verification link.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	err := h.authUC.Register(c.Request.Context(), req.Username, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Signup successful. Check your email for verification.", nil)
}

// VerifyEmail consumes a one-time verification token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	if err := h.authUC.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email verification successful. You can now log in.", nil)
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, user, err := h.authUC.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Login successful", LoginResponse{
		Token:    token,
		ID:       user.ID.Hex(),
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
}

// ForgotPassword issues a reset token and mails a reset link.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password reset requested. Check your email for instructions.", nil)
}

// ResetPassword consumes a reset token and replaces the password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password reset successful. You can now log in.", nil)
}
