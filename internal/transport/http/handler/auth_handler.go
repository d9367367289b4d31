package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padel-ranking-api/internal/domain"
	"padel-ranking-api/internal/service"
	"padel-ranking-api/internal/transport/http/ez"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(a *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: a}
}

func (h *AuthHandler) Priority() int { return 0 }

type loginReq struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResp struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (h *AuthHandler) Mount(public, _ ez.EZ) {
	ez.RegisterAction(public, ez.Action[loginReq, loginResp]{
		Method: http.MethodPost, Path: "/auth/login", Binder: ez.BindJSON,
		Handler: h.login,
	})
}

func (h *AuthHandler) login(c *gin.Context, in *loginReq) (loginResp, error) {
	res, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		return loginResp{}, err
	}
	return loginResp{User: res.User, Token: res.Token}, nil
}
