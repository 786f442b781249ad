package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/campusmitra/portal/internal/chat"
	"github.com/campusmitra/portal/internal/config"
	"github.com/campusmitra/portal/internal/filestore"
	"github.com/campusmitra/portal/internal/handler"
	"github.com/campusmitra/portal/internal/middleware"
	"github.com/campusmitra/portal/internal/model"
	"github.com/campusmitra/portal/internal/pkg/jwt"
	"github.com/campusmitra/portal/internal/pkg/password"
	"github.com/campusmitra/portal/internal/repo"
	"github.com/campusmitra/portal/internal/service"
	"github.com/campusmitra/portal/test/testutil"
)

var testJWTSecret = []byte("test-secret")

type testEnv struct {
	router http.Handler
	users  *repo.UserRepo
}

func setupRouter(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := testutil.OpenTestDB(t)
	userRepo := repo.NewUserRepo(db)
	announcementRepo := repo.NewAnnouncementRepo(db)
	exchangeRepo := repo.NewExchangeRepo(db)

	authService := service.NewAuthService(userRepo, testJWTSecret, time.Hour)
	announcementService := service.NewAnnouncementService(announcementRepo)
	docStore := chat.SeedStore()
	assistService := service.NewAssistService(
		chat.NewDetector(nil),
		docStore,
		chat.NewRetriever(docStore),
		chat.NewComposer(nil),
		exchangeRepo,
	)

	tmpDir, err := os.MkdirTemp("", "portal-upload-*")
	require.NoError(t, err)
	store, err := filestore.New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": tmpDir},
	})
	require.NoError(t, err)

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService),
		Announcements: handler.NewAnnouncementHandler(announcementService),
		Assist:        handler.NewAssistHandler(assistService),
		Files:         handler.NewFileHandler(store),
		JWTSecret:     testJWTSecret,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)

	env := &testEnv{router: engine, users: userRepo}
	return env, func() {
		cleanup()
		_ = os.RemoveAll(tmpDir)
	}
}

// seedUser inserts an account directly and mints its token, bypassing the
// register endpoint so tests can set arbitrary roles.
func (e *testEnv) seedUser(t *testing.T, id, email, role string) string {
	t.Helper()
	hash, err := password.Hash("secret")
	require.NoError(t, err)
	now := time.Now().UnixMilli()
	require.NoError(t, e.users.Create(context.Background(), &model.User{
		ID:           id,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		Ctime:        now,
		Mtime:        now,
	}))
	token, err := jwt.GenerateToken(id, role, email, testJWTSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}
