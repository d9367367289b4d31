package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"padel-ranking-api/internal/domain"
)

const DefaultMatchLimit = 50

type CreateMatchInput struct {
	Date             string
	Players          []uint
	Winners          []uint
	PointsForWinners int
	PointsForLosers  int
}

type MatchService struct {
	matches domain.MatchRepository
	metrics *Metrics
	log     *zap.Logger
}

func NewMatchService(matches domain.MatchRepository, m *Metrics, l *zap.Logger) *MatchService {
	return &MatchService{matches: matches, metrics: m, log: l}
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseMatchDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func distinct(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// validate 按固定顺序校验，遇到第一个错误即返回
func (in CreateMatchInput) validate() (time.Time, error) {
	if strings.TrimSpace(in.Date) == "" {
		return time.Time{}, domain.Validation("date is required")
	}
	date, ok := parseMatchDate(in.Date)
	if !ok {
		return time.Time{}, domain.Validation("date must be a valid timestamp")
	}
	if len(in.Players) != domain.PlayersPerMatch {
		return time.Time{}, domain.Validation("players must be an array of 4 user ids")
	}
	if len(in.Winners) != domain.WinnersPerMatch {
		return time.Time{}, domain.Validation("winners must be an array of 2 user ids")
	}
	players := distinct(in.Players)
	if len(players) != domain.PlayersPerMatch {
		return time.Time{}, domain.Validation("players must be 4 distinct users")
	}
	if len(distinct(in.Winners)) != domain.WinnersPerMatch {
		return time.Time{}, domain.Validation("winners must be 2 distinct users")
	}
	for _, w := range in.Winners {
		if _, ok := players[w]; !ok {
			return time.Time{}, domain.Validation("each winner must be one of the selected players")
		}
	}
	if in.PointsForWinners <= 0 {
		return time.Time{}, domain.Validation("pointsForWinners must be greater than 0")
	}
	if in.PointsForLosers < 0 {
		return time.Time{}, domain.Validation("pointsForLosers must not be negative")
	}
	return date, nil
}

// Create 校验通过后由仓储在单个事务里确认球员存在并写入 match + 4 条 participant
func (s *MatchService) Create(ctx context.Context, in CreateMatchInput) (*domain.Match, error) {
	date, err := in.validate()
	if err != nil {
		return nil, err
	}

	m := &domain.Match{
		Date:             date,
		PointsForWinners: in.PointsForWinners,
		PointsForLosers:  in.PointsForLosers,
		Participants:     make([]domain.MatchParticipant, 0, domain.PlayersPerMatch),
	}
	winners := distinct(in.Winners)
	for _, id := range in.Winners {
		m.Participants = append(m.Participants, domain.MatchParticipant{
			UserID: &id, IsWinner: true, Points: in.PointsForWinners,
		})
	}
	for _, id := range in.Players {
		if _, ok := winners[id]; ok {
			continue
		}
		m.Participants = append(m.Participants, domain.MatchParticipant{
			UserID: &id, IsWinner: false, Points: -in.PointsForLosers,
		})
	}

	if err := s.matches.Create(ctx, m, in.Players); err != nil {
		return nil, storeErr("create match failed", err)
	}
	s.metrics.matchRecorded()
	s.log.Info("match recorded",
		zap.Uint("match_id", m.ID),
		zap.Time("date", m.Date),
		zap.Uints("winners", in.Winners),
	)
	return m, nil
}

func (s *MatchService) List(ctx context.Context, limit, offset int) ([]domain.Match, error) {
	if limit < 1 {
		limit = DefaultMatchLimit
	}
	offset = max(0, offset)
	ms, err := s.matches.List(ctx, limit, offset)
	if err != nil {
		return nil, domain.Internal("list matches failed", err)
	}
	return ms, nil
}

func (s *MatchService) Get(ctx context.Context, id uint) (*domain.Match, error) {
	m, err := s.matches.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get match failed", err)
	}
	if m == nil {
		return nil, domain.NotFound("match not found")
	}
	return m, nil
}

func (s *MatchService) Delete(ctx context.Context, id uint) (*domain.Match, error) {
	m, err := s.matches.Delete(ctx, id)
	if err != nil {
		return nil, domain.Internal("delete match failed", err)
	}
	if m == nil {
		return nil, domain.NotFound("match not found")
	}
	s.metrics.matchDeleted()
	s.log.Info("match deleted", zap.Uint("match_id", id))
	return m, nil
}
