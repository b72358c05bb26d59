package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"Anchora/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	id    int
	email string
	hash  string
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]user
	fail  error
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]user{}}
}

func (m *memUsers) CreateUser(_ context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return 0, m.fail
	}
	if _, ok := m.users[login]; ok {
		return 0, errors.New("duplicate login")
	}
	id := len(m.users) + 1
	m.users[login] = user{id: id, email: email, hash: password}
	return id, nil
}

func (m *memUsers) GetByLogin(_ context.Context, login string) (int, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return 0, "", m.fail
	}
	u, ok := m.users[login]
	if !ok {
		return 0, "", repo.ErrNotFound
	}
	return u.id, u.hash, nil
}

func newEnv() (*Env, *memUsers) {
	users := newMemUsers()
	return &Env{JWTKey: []byte("test-key"), Users: users, Cost: bcrypt.MinCost}, users
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", cookieName)
	return nil
}

func TestRegisterAndLogin(t *testing.T) {
	env, users := newEnv()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"login":" alice ","password":"secret1","email":"a@example.com"}`))
	env.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	sessionCookie(t, rec)

	stored, ok := users.users["alice"]
	require.True(t, ok, "login should be trimmed before storing")
	assert.NotEqual(t, "secret1", stored.hash)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"alice","password":"secret1"}`))
	env.Login(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	id, login, err := env.ParseToken(sessionCookie(t, rec).Value)
	require.NoError(t, err)
	assert.Equal(t, stored.id, id)
	assert.Equal(t, "alice", login)
}

func TestRegister_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"missing email", `{"login":"bob","password":"secret1"}`, http.StatusBadRequest},
		{"short password", `{"login":"bob","password":"abc","email":"b@example.com"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := newEnv()
			rec := httptest.NewRecorder()
			env.Register(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	env, _ := newEnv()
	body := `{"login":"bob","password":"secret1","email":"b@example.com"}`

	rec := httptest.NewRecorder()
	env.Register(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	env.Register(rec, httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_Failures(t *testing.T) {
	env, users := newEnv()
	hash, err := env.HashPassword("secret1")
	require.NoError(t, err)
	users.users["carol"] = user{id: 7, hash: hash}

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown user", `{"login":"dave","password":"secret1"}`, http.StatusUnauthorized},
		{"wrong password", `{"login":"carol","password":"nope"}`, http.StatusUnauthorized},
		{"empty", `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			env.Login(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	users.fail = errors.New("connection reset")
	rec := httptest.NewRecorder()
	env.Login(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"login":"carol","password":"secret1"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireUser(t *testing.T) {
	env, _ := newEnv()
	var gotID int
	var gotLogin string
	protected := env.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r.Context())
		gotLogin = UserLogin(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	token, err := env.NewToken(42, "erin", time.Now())
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/projects", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 42, gotID)
		assert.Equal(t, "erin", gotLogin)
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/projects", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/projects", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired", func(t *testing.T) {
		old, err := env.NewToken(42, "erin", time.Now().Add(-2*tokenTTL))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/user/projects", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: old})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("foreign key", func(t *testing.T) {
		other := &Env{JWTKey: []byte("other-key")}
		forged, err := other.NewToken(42, "erin", time.Now())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/user/projects", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: forged})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	env, _ := newEnv()
	rec := httptest.NewRecorder()
	env.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	c := sessionCookie(t, rec)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}
