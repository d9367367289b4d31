package handler

import (
	"time"

	"padel-ranking-api/internal/domain"
	"padel-ranking-api/internal/service"
)

type idURI struct {
	ID uint `uri:"id" binding:"required"`
}

type pageQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// participantUser 来自创建比赛时的快照；用户被删后 id 为 null
type participantUser struct {
	ID       *uint  `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Email    string `json:"email"`
}

type participantDTO struct {
	ID       uint            `json:"id"`
	IsWinner bool            `json:"isWinner"`
	Points   int             `json:"points"`
	User     participantUser `json:"user"`
}

type matchDTO struct {
	ID               uint             `json:"id"`
	Date             time.Time        `json:"date"`
	PointsForWinners int              `json:"pointsForWinners"`
	PointsForLosers  int              `json:"pointsForLosers"`
	CreatedAt        time.Time        `json:"createdAt"`
	Participants     []participantDTO `json:"participants"`
}

func toMatchDTO(m *domain.Match) matchDTO {
	out := matchDTO{
		ID:               m.ID,
		Date:             m.Date,
		PointsForWinners: m.PointsForWinners,
		PointsForLosers:  m.PointsForLosers,
		CreatedAt:        m.CreatedAt,
		Participants:     make([]participantDTO, 0, len(m.Participants)),
	}
	for _, p := range m.Participants {
		out.Participants = append(out.Participants, participantDTO{
			ID:       p.ID,
			IsWinner: p.IsWinner,
			Points:   p.Points,
			User: participantUser{
				ID:       p.UserID,
				Name:     p.UserName,
				LastName: p.UserLastName,
				Email:    p.UserEmail,
			},
		})
	}
	return out
}

func toMatchDTOs(ms []domain.Match) []matchDTO {
	out := make([]matchDTO, 0, len(ms))
	for i := range ms {
		out = append(out, toMatchDTO(&ms[i]))
	}
	return out
}

type rankingRow struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	TotalPoints int64    `json:"total_points"`
	Matches     int64    `json:"matches"`
	Wins        int64    `json:"wins"`
	WinRate     *float64 `json:"win_rate"`
}

func toRankingRows(rows []domain.Standing) []rankingRow {
	out := make([]rankingRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, rankingRow{
			ID:          r.ID,
			Name:        r.Name,
			LastName:    r.LastName,
			Email:       r.Email,
			TotalPoints: r.TotalPoints,
			Matches:     r.Matches,
			Wins:        r.Wins,
			WinRate:     r.WinRate(),
		})
	}
	return out
}

type leaderDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	TotalPoints int64  `json:"total_points"`
}

type dashboardDTO struct {
	TotalPlayers  int64      `json:"totalPlayers"`
	Leader        *leaderDTO `json:"leader"`
	AveragePoints int64      `json:"averagePoints"`
}

func toDashboardDTO(d *service.Dashboard) dashboardDTO {
	out := dashboardDTO{TotalPlayers: d.TotalPlayers, AveragePoints: d.AveragePoints}
	if d.Leader != nil {
		out.Leader = &leaderDTO{
			ID:          d.Leader.ID,
			Name:        d.Leader.Name,
			LastName:    d.Leader.LastName,
			Email:       d.Leader.Email,
			TotalPoints: d.Leader.TotalPoints,
		}
	}
	return out
}
