package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "student@example.edu",
		"password": "secret",
		"name":     "Student One",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var registered struct {
		Token string `json:"token"`
		User  struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeData(t, resp, &registered)
	require.NotEmpty(t, registered.Token)
	require.Equal(t, "student", registered.User.Role)

	resp = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "student@example.edu",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "student@example.edu",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAuthRegisterValidation(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "short@example.edu",
		"password": "123",
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAuthDuplicateRegister(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	body := map[string]string{"email": "dup@example.edu", "password": "secret"}
	resp := env.do(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = env.do(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusConflict, resp.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env, cleanup := setupRouter(t)
	defer cleanup()

	resp := env.do(t, http.MethodGet, "/api/v1/assist/history", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = env.do(t, http.MethodGet, "/api/v1/announcements", "bogus-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.Code)
}
