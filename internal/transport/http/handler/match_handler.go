package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padel-ranking-api/internal/service"
	"padel-ranking-api/internal/transport/http/ez"
)

type MatchHandler struct {
	matches *service.MatchService
}

func NewMatchHandler(m *service.MatchService) *MatchHandler {
	return &MatchHandler{matches: m}
}

func (h *MatchHandler) Priority() int { return 20 }

// 字段不加 binding 约束，校验顺序与文案由 service 统一给出
type createMatchReq struct {
	Date             string `json:"date"`
	Players          []uint `json:"players"`
	Winners          []uint `json:"winners"`
	PointsForWinners int    `json:"pointsForWinners"`
	PointsForLosers  int    `json:"pointsForLosers"`
}

func (h *MatchHandler) Mount(_, authed ez.EZ) {
	ez.RegisterAction(authed, ez.Action[createMatchReq, matchDTO]{
		Method: http.MethodPost, Path: "/matches", Binder: ez.BindJSON, Status: http.StatusCreated,
		Handler: h.create,
	})
	ez.RegisterAction(authed, ez.Action[pageQuery, []matchDTO]{
		Method: http.MethodGet, Path: "/matches", Binder: ez.BindQuery,
		Handler: h.list,
	})
	ez.RegisterAction(authed, ez.Action[idURI, matchDTO]{
		Method: http.MethodGet, Path: "/matches/:id", Binder: ez.BindURI,
		Handler: h.get,
	})
	ez.RegisterAction(authed, ez.Action[idURI, matchDTO]{
		Method: http.MethodDelete, Path: "/matches/:id", Binder: ez.BindURI,
		Handler: h.delete,
	})
}

func (h *MatchHandler) create(c *gin.Context, in *createMatchReq) (matchDTO, error) {
	m, err := h.matches.Create(c.Request.Context(), service.CreateMatchInput{
		Date:             in.Date,
		Players:          in.Players,
		Winners:          in.Winners,
		PointsForWinners: in.PointsForWinners,
		PointsForLosers:  in.PointsForLosers,
	})
	if err != nil {
		return matchDTO{}, err
	}
	return toMatchDTO(m), nil
}

func (h *MatchHandler) list(c *gin.Context, in *pageQuery) ([]matchDTO, error) {
	ms, err := h.matches.List(c.Request.Context(), in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return toMatchDTOs(ms), nil
}

func (h *MatchHandler) get(c *gin.Context, in *idURI) (matchDTO, error) {
	m, err := h.matches.Get(c.Request.Context(), in.ID)
	if err != nil {
		return matchDTO{}, err
	}
	return toMatchDTO(m), nil
}

func (h *MatchHandler) delete(c *gin.Context, in *idURI) (matchDTO, error) {
	m, err := h.matches.Delete(c.Request.Context(), in.ID)
	if err != nil {
		return matchDTO{}, err
	}
	return toMatchDTO(m), nil
}
