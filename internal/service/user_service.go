package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"padel-ranking-api/internal/core/cache"
	"padel-ranking-api/internal/domain"
	"padel-ranking-api/pkg/utils"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	LastName string
}

type UserService struct {
	users domain.UserRepository
	cache *cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewUserService c 可为 nil（不启用缓存）
func NewUserService(users domain.UserRepository, c *cache.Cache, ttl time.Duration, l *zap.Logger) *UserService {
	return &UserService{users: users, cache: c, ttl: ttl, log: l}
}

func userKey(id uint) string { return fmt.Sprintf("padel:user:%d", id) }

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Validation("email and password are required")
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Validation("password is not acceptable")
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		LastName:     strings.TrimSpace(in.LastName),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Validation("email already registered")
		}
		return nil, domain.Internal("create user failed", err)
	}
	s.log.Info("user registered", zap.Uint("user_id", u.ID))
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	us, err := s.users.List(ctx)
	if err != nil {
		return nil, domain.Internal("list users failed", err)
	}
	return us, nil
}

// Get 读穿缓存；缓存里的副本不含密码哈希
func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	return cache.GetOrLoadJSON(s.cache, ctx, userKey(id), s.ttl, func(ctx context.Context) (*domain.User, error) {
		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, domain.Internal("get user failed", err)
		}
		if u == nil {
			return nil, domain.NotFound("user not found")
		}
		return u, nil
	})
}

func (s *UserService) Update(ctx context.Context, id uint, p domain.UserPatch) (*domain.User, error) {
	if p.Empty() {
		return nil, domain.Validation("at least one field is required to update")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("get user failed", err)
	}
	if u == nil {
		return nil, domain.NotFound("user not found")
	}

	if domain.Set(p.Email) {
		email := normalizeEmail(*p.Email)
		if email == "" {
			return nil, domain.Validation("email cannot be empty")
		}
		u.Email = email
	}
	if domain.Set(p.Password) {
		hash, err := utils.HashPassword(*p.Password)
		if err != nil {
			return nil, domain.Validation("password is not acceptable")
		}
		u.PasswordHash = hash
	}
	if domain.Set(p.Name) {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if domain.Set(p.LastName) {
		u.LastName = strings.TrimSpace(*p.LastName)
	}

	if err := s.users.Update(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Validation("email already registered")
		}
		return nil, domain.Internal("update user failed", err)
	}
	s.forget(ctx, id)
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return domain.Internal("delete user failed", err)
	}
	if !ok {
		return domain.NotFound("user not found")
	}
	s.forget(ctx, id)
	s.log.Info("user deleted", zap.Uint("user_id", id))
	return nil
}

func (s *UserService) forget(ctx context.Context, id uint) {
	if err := s.cache.Invalidate(ctx, userKey(id)); err != nil {
		s.log.Warn("user cache invalidate failed", zap.Uint("user_id", id), zap.Error(err))
	}
}
