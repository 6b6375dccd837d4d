package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/app/models"
	"inkwell/app/repositories/mock"
	"inkwell/app/sessions"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGuard(t *testing.T) (*Guard, *sessions.Manager, *mock.UserRepository) {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := mock.NewUserRepository()
	manager := sessions.NewManager(db, users, []byte("test-secret"))
	return &Guard{Sessions: manager}, manager, users
}

// loginAs registers a session for the user and returns a request carrying it.
func loginAs(t *testing.T, manager *sessions.Manager, userID uint) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	require.NoError(t, manager.Login(w, httptest.NewRequest("GET", "/", nil), userID))

	r := httptest.NewRequest("GET", "/new-post", nil)
	for _, cookie := range w.Result().Cookies() {
		r.AddCookie(cookie)
	}
	return r
}

func TestGuard_AdminOnly(t *testing.T) {
	guard, manager, users := setupGuard(t)

	admin := &models.User{Name: "Admin", Email: "admin@x.com", Password: "hash"}
	require.NoError(t, users.Create(admin))
	require.Equal(t, AdminUserID, admin.ID)

	alice := &models.User{Name: "Alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, users.Create(alice))

	var reached bool
	handler := guard.AdminOnly(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		reached = false
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/new-post", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
		assert.False(t, reached)
	})

	t.Run("authenticated non-admin gets 403", func(t *testing.T) {
		reached = false
		w := httptest.NewRecorder()
		handler(w, loginAs(t, manager, alice.ID))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.False(t, reached, "wrapped handler must never run")
	})

	t.Run("the admin passes through", func(t *testing.T) {
		reached = false
		w := httptest.NewRecorder()
		handler(w, loginAs(t, manager, admin.ID))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, reached)
	})
}

func TestGuard_RequireAuth(t *testing.T) {
	guard, manager, users := setupGuard(t)

	alice := &models.User{Name: "Alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, users.Create(alice))

	handler := guard.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous is redirected to login", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("any authenticated user passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler(w, loginAs(t, manager, alice.ID))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
