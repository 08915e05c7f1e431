package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/config"
	"github.com/Skotchmaster/marketplace/internal/db"
	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/tokens"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	e      *echo.Echo
	db     *gorm.DB
	repo   *repo.GormRepo
	issuer *tokens.Issuer
}

type envOption func(d *Deps)

func requireToken(d *Deps) { d.RequireToken = true }

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	gdb, err := db.Open(context.Background(), config.Config{DBDriver: db.DriverSQLite, SQLitePath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	issuer := &tokens.Issuer{Secret: testSecret, TTL: time.Hour}

	d := &Deps{
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: r, Tokens: issuer}},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: r, Users: r}},
		SearchHandler:  &SearchHTTP{Svc: &service.SearchService{}},
		DB:             gdb,
		JWTSecret:      testSecret,
	}
	for _, o := range opts {
		o(d)
	}

	e := echo.New()
	Register(e, d)

	return &testEnv{e: e, db: gdb, repo: r, issuer: issuer}
}

func (env *testEnv) do(t *testing.T, method, target string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, m := range mutate {
		m(req)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seedUser(t *testing.T, id uint, email string, role models.Role, shop *string) *models.User {
	t.Helper()
	u := &models.User{ID: id, Email: email, Username: "u" + email, Password: "x", Role: role, ShopName: shop}
	require.NoError(t, env.repo.CreateUserIfNotExists(context.Background(), u))
	return u
}

func (env *testEnv) bearer(t *testing.T, userID uint, role models.Role) func(*http.Request) {
	t.Helper()
	tok, _, err := env.issuer.CreateAccessToken(userID, string(role), time.Now())
	require.NoError(t, err)
	return func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+tok) }
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["message"]
}

func strPtr(s string) *string { return &s }
