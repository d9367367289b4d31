package service

import (
	"context"
	"math"

	"padel-ranking-api/internal/domain"
)

const DefaultRankingLimit = 10

type Dashboard struct {
	TotalPlayers  int64
	Leader        *domain.Standing // 没有用户时为 nil
	AveragePoints int64
}

type RankingService struct {
	ranking domain.RankingRepository
	users   domain.UserRepository
}

func NewRankingService(ranking domain.RankingRepository, users domain.UserRepository) *RankingService {
	return &RankingService{ranking: ranking, users: users}
}

// Ranking limit 最小 1、offset 最小 0，调用方传更小的值也会被抬上来
func (s *RankingService) Ranking(ctx context.Context, limit, offset int) ([]domain.Standing, error) {
	rows, err := s.ranking.Standings(ctx, max(1, limit), max(0, offset))
	if err != nil {
		return nil, domain.Internal("ranking query failed", err)
	}
	return rows, nil
}

// Dashboard 几条统计分开查询，不包事务
func (s *RankingService) Dashboard(ctx context.Context) (*Dashboard, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, domain.Internal("count users failed", err)
	}
	out := &Dashboard{TotalPlayers: total}
	if total == 0 {
		return out, nil
	}

	top, err := s.ranking.Standings(ctx, 1, 0)
	if err != nil {
		return nil, domain.Internal("leader query failed", err)
	}
	if len(top) > 0 {
		out.Leader = &top[0]
	}

	totals, err := s.ranking.UserTotals(ctx)
	if err != nil {
		return nil, domain.Internal("average query failed", err)
	}
	out.AveragePoints = averageRounded(totals)
	return out, nil
}

// averageRounded 四舍五入取整，.5 向正无穷进位
func averageRounded(totals []int64) int64 {
	if len(totals) == 0 {
		return 0
	}
	var sum int64
	for _, t := range totals {
		sum += t
	}
	return int64(math.Floor(float64(sum)/float64(len(totals)) + 0.5))
}
