package domain

import "context"

// Standing 某个用户在全部参赛记录上的汇总
type Standing struct {
	ID          uint
	Name        string
	LastName    string
	Email       string
	TotalPoints int64
	Matches     int64
	Wins        int64
}

// WinRate 胜率百分比保留两位小数（整数运算，.5 进位）；没有比赛时为 nil
func (s Standing) WinRate() *float64 {
	if s.Matches == 0 {
		return nil
	}
	// floor(wins*10000/matches + 1/2)
	q := (s.Wins*20000 + s.Matches) / (2 * s.Matches)
	r := float64(q) / 100
	return &r
}

type RankingRepository interface {
	Standings(ctx context.Context, limit, offset int) ([]Standing, error)
	// UserTotals 每个用户的 total_points，没打过比赛的记 0
	UserTotals(ctx context.Context) ([]int64, error)
}
