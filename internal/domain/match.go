package domain

import (
	"context"
	"time"
)

const (
	PlayersPerMatch = 4
	WinnersPerMatch = 2
)

type Match struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	Date             time.Time          `gorm:"index;not null" json:"date"`
	PointsForWinners int                `gorm:"not null" json:"pointsForWinners"`
	PointsForLosers  int                `gorm:"not null" json:"pointsForLosers"`
	CreatedAt        time.Time          `json:"createdAt"`
	Participants     []MatchParticipant `gorm:"constraint:OnDelete:CASCADE" json:"participants"`
}

func (Match) TableName() string { return "matches" }

// MatchParticipant 保存记录比赛时球员身份的快照；用户删除后 UserID 置空
type MatchParticipant struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	MatchID      uint   `gorm:"index;not null" json:"matchId"`
	UserID       *uint  `gorm:"index" json:"userId"`
	User         *User  `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	UserName     string `gorm:"size:64" json:"userName"`
	UserLastName string `gorm:"size:64" json:"userLastName"`
	UserEmail    string `gorm:"size:191" json:"userEmail"`
	IsWinner     bool   `gorm:"not null" json:"isWinner"`
	Points       int    `gorm:"not null" json:"points"`
}

func (MatchParticipant) TableName() string { return "match_participants" }

// MatchRepository 查询不到时返回 (nil, nil)
type MatchRepository interface {
	// Create 在一个事务里确认 playerIDs 都存在、写入身份快照并保存比赛与参赛记录
	Create(ctx context.Context, m *Match, playerIDs []uint) error
	List(ctx context.Context, limit, offset int) ([]Match, error)
	FindByID(ctx context.Context, id uint) (*Match, error)
	Delete(ctx context.Context, id uint) (*Match, error)
}
