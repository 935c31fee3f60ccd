package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/backoffice/internal/api"
)

// fakeStore is an in-memory TokenStore with injectable failures.
type fakeStore struct {
	token    string
	tokenErr error
	saveErr  error
	clearErr error

	saves  int
	clears int
}

func (f *fakeStore) Token(ctx context.Context) (string, error) {
	return f.token, f.tokenErr
}

func (f *fakeStore) Save(ctx context.Context, token string) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.clears++
	if f.clearErr != nil {
		return f.clearErr
	}
	f.token = ""
	return nil
}

func adminToken(t *testing.T) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{"id": "42", "email": "a@b.com", "role": "admin"})
	require.NoError(t, err)
	return "hdr." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func newManager(t *testing.T, handler http.Handler, store TokenStore) *Manager {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewManager(api.New(srv.URL, nil, nil, nil), store, nil)
}

func TestInitialize_FromPersistedToken(t *testing.T) {
	store := &fakeStore{token: adminToken(t)}
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("initialize must not touch the network")
	}), store)

	m.Initialize(context.Background())

	snap := m.Snapshot()
	require.True(t, snap.Initialized)
	require.False(t, snap.Loading)
	require.True(t, snap.Authenticated())
	require.Equal(t, int64(42), snap.User.ID)
}

func TestInitialize_IdempotentAndStoreFailureSwallowed(t *testing.T) {
	store := &fakeStore{tokenErr: errors.New("access denied")}
	m := newManager(t, http.NewServeMux(), store)

	m.Initialize(context.Background())
	m.Initialize(context.Background())

	snap := m.Snapshot()
	require.True(t, snap.Initialized)
	require.False(t, snap.Authenticated())
	require.Empty(t, snap.Err)
}

func TestLogin_Success(t *testing.T) {
	token := adminToken(t)
	store := &fakeStore{}
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Auth/login", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "a@b.com", req["email"])
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(token + "\n"))
	}), store)

	require.NoError(t, m.Login(context.Background(), "a@b.com", "secret"))

	snap := m.Snapshot()
	require.Equal(t, token, snap.Token)
	require.True(t, snap.Authenticated())
	require.Equal(t, "admin", snap.User.Role)
	require.True(t, snap.Initialized)
	require.False(t, snap.Loading)
	require.Empty(t, snap.Err)
	require.Equal(t, token, store.token)
}

func TestLogin_FailureClearsTokenAndRecordsMessage(t *testing.T) {
	store := &fakeStore{token: "stale"}
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
	}), store)

	err := m.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.Status)

	snap := m.Snapshot()
	require.Empty(t, snap.Token)
	require.Nil(t, snap.User)
	require.Equal(t, "invalid credentials", snap.Err)
	require.True(t, snap.Initialized)
	require.False(t, snap.Loading)
	require.Empty(t, store.token)
}

func TestLogin_PersistFailureContinuesInMemory(t *testing.T) {
	token := adminToken(t)
	store := &fakeStore{saveErr: errors.New("disk full")}
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(token))
	}), store)

	require.NoError(t, m.Login(context.Background(), "a@b.com", "secret"))

	snap := m.Snapshot()
	require.Equal(t, token, snap.Token)
	require.True(t, snap.Authenticated())
}

func TestRegister_SendsDisplayName(t *testing.T) {
	token := adminToken(t)
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Auth/register", r.URL.Path)
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "Ann", req["usersName"])
		_, _ = w.Write([]byte(token))
	}), &fakeStore{})

	require.NoError(t, m.Register(context.Background(), "a@b.com", "secret", "Ann"))
	require.True(t, m.Snapshot().Authenticated())
}

func TestLogout_ClearsLocallyEvenWhenNetworkFails(t *testing.T) {
	store := &fakeStore{token: adminToken(t)}
	m := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}), store)

	m.Initialize(context.Background())
	require.True(t, m.Snapshot().Authenticated())

	err := m.Logout(context.Background())
	require.Error(t, err)

	snap := m.Snapshot()
	require.Empty(t, snap.Token)
	require.Nil(t, snap.User)
	require.Empty(t, store.token)
	require.Equal(t, 1, store.clears)
}

func TestSubscribe_NotifiedAndCancel(t *testing.T) {
	m := NewManager(api.New("http://unused", nil, nil, nil), nil, nil)

	var seen []Snapshot
	cancel := m.Subscribe(func(s Snapshot) { seen = append(seen, s) })

	m.Initialize(context.Background())
	require.Len(t, seen, 1)
	require.True(t, seen[0].Initialized)

	cancel()
	m.Initialize(context.Background()) // no-op anyway
	require.Len(t, seen, 1)
}
