package admin

import (
	"errors"
	"time"

	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string                 `json:"token"`
	User      map[string]interface{} `json:"user"`
	ExpiresAt string                 `json:"expires_at"`
}

// Login 员工登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	staff, token, expiresAt, err := h.StaffAuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid username or password", nil)
			return
		}
		if errors.Is(err, service.ErrStaffDisabled) {
			respondError(c, response.CodeForbidden, "account is disabled", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	response.Success(c, LoginResponse{
		Token: token,
		User: map[string]interface{}{
			"id":           staff.ID,
			"username":     staff.Username,
			"display_name": staff.DisplayName,
			"role":         staff.Role,
		},
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// Me 返回当前登录员工信息
func (h *Handler) Me(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	staff, err := h.StaffRepo.GetByID(actor.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load profile", err)
		return
	}
	if staff == nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", nil)
		return
	}
	response.Success(c, staff)
}
