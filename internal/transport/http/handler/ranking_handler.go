package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"padel-ranking-api/internal/service"
	"padel-ranking-api/internal/transport/http/ez"
)

type RankingHandler struct {
	ranking *service.RankingService
}

func NewRankingHandler(r *service.RankingService) *RankingHandler {
	return &RankingHandler{ranking: r}
}

func (h *RankingHandler) Priority() int { return 30 }

type rankingQuery struct {
	Limit  int `form:"limit,default=10"`
	Offset int `form:"offset,default=0"`
}

func (h *RankingHandler) Mount(_, authed ez.EZ) {
	ez.RegisterAction(authed, ez.Action[rankingQuery, []rankingRow]{
		Method: http.MethodGet, Path: "/ranking", Binder: ez.BindQuery,
		Handler: h.list,
	})
	ez.RegisterAction(authed, ez.Action[struct{}, dashboardDTO]{
		Method: http.MethodGet, Path: "/ranking/dashboard", Binder: ez.BindNone,
		Handler: h.dashboard,
	})
}

func (h *RankingHandler) list(c *gin.Context, in *rankingQuery) ([]rankingRow, error) {
	rows, err := h.ranking.Ranking(c.Request.Context(), in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	return toRankingRows(rows), nil
}

func (h *RankingHandler) dashboard(c *gin.Context, _ *struct{}) (dashboardDTO, error) {
	d, err := h.ranking.Dashboard(c.Request.Context())
	if err != nil {
		return dashboardDTO{}, err
	}
	return toDashboardDTO(d), nil
}
