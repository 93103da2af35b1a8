package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/teamflow-app/teamflow/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	env := setupTestEnv(t)
	tc := newClient(t, env)

	w := tc.do(http.MethodPost, "/register/", url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"supersecret"},
		"confirm_password": {"supersecret"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login/", w.Header().Get("Location"))

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "alice@example.com").First(&user).Error)
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestRegisterPasswordMismatch(t *testing.T) {
	env := setupTestEnv(t)
	tc := newClient(t, env)

	w := tc.do(http.MethodPost, "/register/", url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"supersecret"},
		"confirm_password": {"different"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/register/", w.Header().Get("Location"))
	require.Equal(t, []string{"Error: Passwords doesn't match"}, tc.messages("/register/"))

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count, "no user row may be created")
}

func TestRegisterMissingFields(t *testing.T) {
	env := setupTestEnv(t)
	tc := newClient(t, env)

	w := tc.do(http.MethodPost, "/register/", url.Values{
		"username": {"alice"},
		"password": {"supersecret"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/register/", w.Header().Get("Location"))
	require.Equal(t, []string{"Error: Missing fields"}, tc.messages("/register/"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "alice", "alice@example.com", "supersecret")

	tc := newClient(t, env)
	w := tc.do(http.MethodPost, "/register/", url.Values{
		"username":         {"other"},
		"email":            {"alice@example.com"},
		"password":         {"newpassword"},
		"confirm_password": {"newpassword"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/register/", w.Header().Get("Location"))
	require.Equal(t, []string{"Email already registered."}, tc.messages("/register/"))
}

func TestLoginAndHome(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "alice", "alice@example.com", "supersecret")

	tc := newClient(t, env)
	login(t, tc, "alice@example.com", "supersecret")

	w := tc.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "alice", "alice@example.com", "supersecret")

	attempts := []url.Values{
		{"email": {"alice@example.com"}, "password": {"wrong"}},
		{"email": {"nobody@example.com"}, "password": {"supersecret"}},
		{"email": {"alice@example.com"}},
		{},
	}

	for _, form := range attempts {
		tc := newClient(t, env)
		w := tc.do(http.MethodPost, "/login/", form)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/login/", w.Header().Get("Location"))
		require.Equal(t, []string{"Invalid username and/or password."}, tc.messages("/login/"))
	}
}

func TestLogout(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "alice", "alice@example.com", "supersecret")

	tc := newClient(t, env)
	login(t, tc, "alice@example.com", "supersecret")

	w := tc.do(http.MethodGet, "/logout/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	w = tc.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login/", w.Header().Get("Location"))
}

func TestLoginPageLogsOutAuthenticatedVisitor(t *testing.T) {
	env := setupTestEnv(t)
	registerUser(t, env, "alice", "alice@example.com", "supersecret")

	tc := newClient(t, env)
	login(t, tc, "alice@example.com", "supersecret")

	w := tc.do(http.MethodGet, "/login/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login/", w.Header().Get("Location"))

	// Session is gone now.
	w = tc.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login/", w.Header().Get("Location"))
}
