package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"padel-ranking-api/internal/domain"
)

type MatchRepo struct{ db *gorm.DB }

func NewMatchRepo(db *gorm.DB) *MatchRepo { return &MatchRepo{db: db} }

func preloadParticipants(db *gorm.DB) *gorm.DB {
	return db.Preload("Participants", func(q *gorm.DB) *gorm.DB { return q.Order("id ASC") })
}

// Create 在事务内确认 4 名球员存在、写入身份快照，再写 match + participants
func (r *MatchRepo) Create(ctx context.Context, m *domain.Match, playerIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users []domain.User
		if err := tx.Select("id", "name", "last_name", "email").
			Where("id IN ?", playerIDs).
			Find(&users).Error; err != nil {
			return err
		}
		if missing := len(playerIDs) - len(users); missing > 0 {
			return domain.Validationf("%d of the selected players do not exist", missing)
		}

		byID := make(map[uint]domain.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		for i := range m.Participants {
			p := &m.Participants[i]
			if p.UserID == nil {
				return domain.Validation("participant without user")
			}
			u, ok := byID[*p.UserID]
			if !ok {
				return domain.Validationf("player %d does not exist", *p.UserID)
			}
			p.UserName, p.UserLastName, p.UserEmail = u.Name, u.LastName, u.Email
		}
		return tx.Create(m).Error
	})
}

func (r *MatchRepo) List(ctx context.Context, limit, offset int) ([]domain.Match, error) {
	var ms []domain.Match
	err := preloadParticipants(r.db.WithContext(ctx)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Limit(limit).
		Offset(offset).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return ms, nil
}

func (r *MatchRepo) FindByID(ctx context.Context, id uint) (*domain.Match, error) {
	var m domain.Match
	err := preloadParticipants(r.db.WithContext(ctx)).First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete 先读后删，返回被删除的 match；不存在返回 (nil, nil)
func (r *MatchRepo) Delete(ctx context.Context, id uint) (*domain.Match, error) {
	var out *domain.Match
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m domain.Match
		err := preloadParticipants(tx).First(&m, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("match_id = ?", id).Delete(&domain.MatchParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Match{}, id).Error; err != nil {
			return err
		}
		out = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
