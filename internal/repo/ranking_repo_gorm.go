package repo

import (
	"context"

	"gorm.io/gorm"

	"padel-ranking-api/internal/domain"
)

// RankingRepo 所有数值都由 match_participants 实时聚合，不落库
type RankingRepo struct{ db *gorm.DB }

func NewRankingRepo(db *gorm.DB) *RankingRepo { return &RankingRepo{db: db} }

func (r *RankingRepo) perUser(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("users AS u").
		Joins("LEFT JOIN match_participants mp ON mp.user_id = u.id")
}

func (r *RankingRepo) Standings(ctx context.Context, limit, offset int) ([]domain.Standing, error) {
	var rows []domain.Standing
	err := r.perUser(ctx).
		Select(`u.id, u.name, u.last_name, u.email,
			COALESCE(SUM(mp.points), 0) AS total_points,
			COUNT(mp.id) AS matches,
			COALESCE(SUM(CASE WHEN mp.is_winner THEN 1 ELSE 0 END), 0) AS wins`).
		Group("u.id, u.name, u.last_name, u.email").
		Order("total_points DESC").
		Order("u.id ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RankingRepo) UserTotals(ctx context.Context) ([]int64, error) {
	var totals []int64
	err := r.perUser(ctx).
		Group("u.id").
		Pluck("COALESCE(SUM(mp.points), 0)", &totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
