package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"padel-ranking-api/internal/core/auth"
	"padel-ranking-api/internal/core/cache"
	"padel-ranking-api/internal/core/database"
	"padel-ranking-api/internal/domain"
	"padel-ranking-api/internal/repo"
	"padel-ranking-api/internal/service"
)

type fixture struct {
	db      *gorm.DB
	users   *service.UserService
	auth    *service.AuthService
	matches *service.MatchService
	ranking *service.RankingService
	jwt     *auth.JWTer
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newFixture(t *testing.T, c *cache.Cache) *fixture {
	t.Helper()
	db := setupTestDB(t)
	log := zap.NewNop()
	userRepo := repo.NewUserRepo(db)
	j := &auth.JWTer{Secret: []byte("test"), Issuer: "padel-test", TTL: time.Hour}
	return &fixture{
		db:      db,
		users:   service.NewUserService(userRepo, c, time.Minute, log),
		auth:    service.NewAuthService(userRepo, j, nil, log),
		matches: service.NewMatchService(repo.NewMatchRepo(db), nil, log),
		ranking: service.NewRankingService(repo.NewRankingRepo(db), userRepo),
		jwt:     j,
	}
}

func (f *fixture) register(t *testing.T, names ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(names))
	for _, n := range names {
		u, err := f.users.Register(context.Background(), service.RegisterInput{
			Email: n + "@padel.test", Password: "secret", Name: n, LastName: "L" + n,
		})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}
	return ids
}

func (f *fixture) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) standingOf(t *testing.T, id uint) domain.Standing {
	t.Helper()
	rows, err := f.ranking.Ranking(context.Background(), 100, 0)
	require.NoError(t, err)
	for _, r := range rows {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("user %d not in ranking", id)
	return domain.Standing{}
}
