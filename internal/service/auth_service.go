package service

import (
	"context"

	"go.uber.org/zap"

	"padel-ranking-api/internal/core/auth"
	"padel-ranking-api/internal/domain"
	"padel-ranking-api/pkg/utils"
)

type LoginResult struct {
	User  *domain.User
	Token string
}

type AuthService struct {
	users   domain.UserRepository
	jwt     *auth.JWTer
	metrics *Metrics
	log     *zap.Logger
}

func NewAuthService(users domain.UserRepository, j *auth.JWTer, m *Metrics, l *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: j, metrics: m, log: l}
}

// Login 账号不存在与密码错误返回同一个错误，且都跑一次 bcrypt
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, domain.Internal("login failed", err)
	}
	if u == nil {
		utils.BurnPasswordCheck(password)
		s.metrics.loginFailed()
		return nil, domain.Unauthorized("invalid credentials")
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		s.metrics.loginFailed()
		return nil, domain.Unauthorized("invalid credentials")
	}
	tok, err := s.jwt.Issue(u.ID, u.Email)
	if err != nil {
		return nil, domain.Internal("issue token failed", err)
	}
	s.log.Debug("login ok", zap.Uint("user_id", u.ID))
	return &LoginResult{User: u, Token: tok}, nil
}
