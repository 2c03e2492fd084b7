package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appdb "github.com/Skotchmaster/ecommerce_api/internal/db"
	"github.com/Skotchmaster/ecommerce_api/internal/hash"
	"github.com/Skotchmaster/ecommerce_api/internal/httpserver"
	authmw "github.com/Skotchmaster/ecommerce_api/internal/middleware/auth"
	"github.com/Skotchmaster/ecommerce_api/internal/models"
	"github.com/Skotchmaster/ecommerce_api/internal/repo"
	"github.com/Skotchmaster/ecommerce_api/internal/service"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Store *repo.GormRepo
	Auth  *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, appdb.Migrate(db))

	store := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{
		Repo:          store,
		SessionSecret: []byte("test-session-secret"),
		SessionTTL:    time.Hour,
	}
	catalogSvc := &service.CatalogService{Repo: store}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		AuthService:    authSvc,
		AuthHandler:    &httpserver.AuthHandler{Svc: authSvc},
		ProductHandler: &httpserver.ProductHandler{Svc: catalogSvc},
		SearchHandler:  &httpserver.SearchHandler{},
	})

	return &testEnv{T: t, E: e, DB: db, Store: store, Auth: authSvc}
}

func (env *testEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) createUser(username, password string) models.User {
	env.T.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)
	user := models.User{Username: username, PasswordHash: pwHash}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

// login performs a real /login request and returns the session cookie
// the server set.
func (env *testEnv) login(username, password string) *http.Cookie {
	env.T.Helper()

	rec := env.do(http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(env.T, http.StatusOK, rec.Code)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == authmw.SessionCookie && ck.Value != "" {
			return ck
		}
	}
	env.T.Fatal("no session cookie in login response")
	return nil
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Message
}
