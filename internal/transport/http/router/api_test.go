package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"padel-ranking-api/internal/core/auth"
	"padel-ranking-api/internal/core/config"
	"padel-ranking-api/internal/core/database"
	"padel-ranking-api/internal/repo"
	"padel-ranking-api/internal/service"
	"padel-ranking-api/internal/transport/http/handler"
	"padel-ranking-api/internal/transport/http/router"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type testAPI struct {
	t     *testing.T
	r     *gin.Engine
	jwt   *auth.JWTer
	token string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := database.NewGorm(database.Opts{
		Driver:   "sqlite",
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	log := zap.NewNop()
	reg := prometheus.NewRegistry()
	metrics := service.NewMetrics(reg)
	j := &auth.JWTer{Secret: []byte("test"), Issuer: "padel-test", TTL: time.Hour}
	users := repo.NewUserRepo(db)

	mods := &router.Registry{}
	mods.Register(
		handler.NewUserHandler(service.NewUserService(users, nil, time.Minute, log)),
		handler.NewAuthHandler(service.NewAuthService(users, j, metrics, log)),
		handler.NewMatchHandler(service.NewMatchService(repo.NewMatchRepo(db), metrics, log)),
		handler.NewRankingHandler(service.NewRankingService(repo.NewRankingRepo(db), users)),
	)
	r := router.NewAPIEngine(router.Deps{
		Log:     log,
		JWT:     j,
		Limits:  config.Limits{RPS: 1000, Burst: 1000, PerIPRPS: 1000, PerIPBurst: 1000},
		Metrics: reg,
		Ping:    func(ctx context.Context) error { return database.Ping(ctx, db) },
		Modules: mods,
	})
	return &testAPI{t: t, r: r, jwt: j}
}

func (a *testAPI) do(method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var rd *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = strings.NewReader(string(b))
	} else {
		rd = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
		assert.Equal(a.t, w.Code, env.Code, "envelope code mirrors the status")
	}
	return w, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

type userOut struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

func (a *testAPI) register(name string) uint {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/users", map[string]string{
		"email": name + "@padel.test", "password": "secret", "name": name, "lastName": "L" + name,
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[userOut](a.t, env).ID
}

func (a *testAPI) login(name string) {
	a.t.Helper()
	w, env := a.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": name + "@padel.test", "password": "secret",
	})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	a.token = decode[struct {
		Token string `json:"token"`
	}](a.t, env).Token
	require.NotEmpty(a.t, a.token)
}
