package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padel-ranking-api/internal/domain"
	"padel-ranking-api/internal/service"
	"padel-ranking-api/internal/transport/http/ez"
	mdw "padel-ranking-api/internal/transport/http/middleware"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Priority() int { return 10 }

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

type updateUserReq struct {
	ID       uint    `uri:"id" json:"-" binding:"required"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Name     *string `json:"name"`
	LastName *string `json:"lastName"`
}

type deletedUser struct {
	ID uint `json:"id"`
}

func (h *UserHandler) Mount(public, authed ez.EZ) {
	ez.RegisterAction(public, ez.Action[registerReq, *domain.User]{
		Method: http.MethodPost, Path: "/users", Binder: ez.BindJSON, Status: http.StatusCreated,
		Handler: h.register,
	})

	ez.RegisterAction(authed, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet, Path: "/users", Binder: ez.BindNone,
		Handler: h.list,
	})
	ez.RegisterAction(authed, ez.Action[idURI, *domain.User]{
		Method: http.MethodGet, Path: "/users/:id", Binder: ez.BindURI,
		Handler: h.get,
	})
	// PUT 与 PATCH 都是部分更新
	for _, m := range []string{http.MethodPut, http.MethodPatch} {
		ez.RegisterAction(authed, ez.Action[updateUserReq, *domain.User]{
			Method: m, Path: "/users/:id", Binder: ez.BindURIJSON,
			Handler: h.update,
		})
	}
	ez.RegisterAction(authed, ez.Action[idURI, deletedUser]{
		Method: http.MethodDelete, Path: "/users/:id", Binder: ez.BindURI,
		Handler: h.delete,
	})
	ez.RegisterAction(authed, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet, Path: "/me", Binder: ez.BindNone,
		Handler: h.me,
	})
}

func (h *UserHandler) register(c *gin.Context, in *registerReq) (*domain.User, error) {
	return h.users.Register(c.Request.Context(), service.RegisterInput{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		LastName: in.LastName,
	})
}

func (h *UserHandler) list(c *gin.Context, _ *struct{}) ([]domain.User, error) {
	us, err := h.users.List(c.Request.Context())
	if us == nil && err == nil {
		us = []domain.User{}
	}
	return us, err
}

func (h *UserHandler) get(c *gin.Context, in *idURI) (*domain.User, error) {
	return h.users.Get(c.Request.Context(), in.ID)
}

func (h *UserHandler) update(c *gin.Context, in *updateUserReq) (*domain.User, error) {
	return h.users.Update(c.Request.Context(), in.ID, domain.UserPatch{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		LastName: in.LastName,
	})
}

func (h *UserHandler) delete(c *gin.Context, in *idURI) (deletedUser, error) {
	if err := h.users.Delete(c.Request.Context(), in.ID); err != nil {
		return deletedUser{}, err
	}
	return deletedUser{ID: in.ID}, nil
}

func (h *UserHandler) me(c *gin.Context, _ *struct{}) (*domain.User, error) {
	uid, ok := mdw.UserID(c)
	if !ok {
		return nil, domain.Unauthorized("unauthorized")
	}
	return h.users.Get(c.Request.Context(), uid)
}
