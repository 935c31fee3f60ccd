package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/avolkov/backoffice/internal/api"
	"github.com/avolkov/backoffice/internal/logging"
)

const (
	loginPath    = "api/Auth/login"
	registerPath = "api/Auth/register"
	logoutPath   = "api/Auth/logout"
)

// TokenStore persists the bearer token between runs. Implementations
// must treat the token as a single slot: last writer wins.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Snapshot is an immutable view of the session state. User is always
// exactly the decoded projection of Token's claims, or nil when the
// token is absent or undecodable.
type Snapshot struct {
	Token       string
	User        *Identity
	Loading     bool
	Err         string
	Initialized bool
}

func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// Manager owns the session state. All mutations go through Initialize,
// Login, Register and Logout; observers registered with Subscribe see
// every change. Safe for concurrent use.
type Manager struct {
	api   *api.Client
	store TokenStore
	log   logging.Logger

	mu      sync.Mutex
	state   Snapshot
	subs    map[int64]func(Snapshot)
	nextSub int64
}

func NewManager(apiClient *api.Client, store TokenStore, log logging.Logger) *Manager {
	if log == nil {
		log = logging.NewNop()
	}
	return &Manager{
		api:   apiClient,
		store: store,
		log:   log,
		subs:  map[int64]func(Snapshot){},
	}
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Token returns the current bearer token; wired into api.Client as its
// TokenFunc.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Token
}

// Subscribe registers an observer called after every state change with
// the new snapshot. The returned function cancels the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Initialize loads the persisted token, if any, and decodes it into an
// identity. It never touches the network, is idempotent, and always
// leaves the session initialized and not loading. A failing store is
// ignored: the session just starts unauthenticated.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	if m.state.Initialized {
		m.mu.Unlock()
		return
	}
	m.state.Loading = true

	token := ""
	if m.store != nil {
		t, err := m.store.Token(ctx)
		if err != nil {
			m.log.Warn(ctx, "persisted token unavailable", "error", err)
		} else {
			token = t
		}
	}
	m.state.Token = token
	m.state.User = IdentityFromToken(token)
	m.state.Loading = false
	m.state.Initialized = true
	snap := m.state
	m.mu.Unlock()

	m.notify(snap)
}

type credentialsRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UsersName string `json:"usersName,omitempty"`
}

// Login exchanges credentials for a bearer token. The response body is
// the raw token text. On failure the token is cleared, Err records the
// server's message, and the error is returned to the caller.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	return m.authenticate(ctx, loginPath, credentialsRequest{Email: email, Password: password})
}

// Register creates an account and logs in with the resulting token.
// Same contract as Login, plus the display name.
func (m *Manager) Register(ctx context.Context, email, password, usersName string) error {
	return m.authenticate(ctx, registerPath, credentialsRequest{Email: email, Password: password, UsersName: usersName})
}

func (m *Manager) authenticate(ctx context.Context, path string, req credentialsRequest) error {
	m.setLoading(true)

	resp, err := m.api.Do(ctx, http.MethodPost, path, req)
	if err != nil {
		m.fail(ctx, err)
		return fmt.Errorf("authenticate: %w", err)
	}

	m.apply(ctx, strings.TrimSpace(resp.Text()))
	return nil
}

// Logout tells the server to drop the session, best-effort, and clears
// the local token and identity in all cases before returning. A network
// failure is reported only after local state is already clean.
func (m *Manager) Logout(ctx context.Context) error {
	_, netErr := m.api.Do(ctx, http.MethodPost, logoutPath, nil)

	if m.store != nil {
		if err := m.store.Clear(ctx); err != nil {
			m.log.Warn(ctx, "persisted token not cleared", "error", err)
		}
	}

	m.mu.Lock()
	m.state.Token = ""
	m.state.User = nil
	m.state.Err = ""
	m.state.Loading = false
	m.state.Initialized = true
	snap := m.state
	m.mu.Unlock()
	m.notify(snap)

	if netErr != nil {
		return fmt.Errorf("logout: %w", netErr)
	}
	return nil
}

// apply installs a freshly issued token: persisted best-effort, decoded
// into an identity, loading finished.
func (m *Manager) apply(ctx context.Context, token string) {
	if m.store != nil {
		if err := m.store.Save(ctx, token); err != nil {
			m.log.Warn(ctx, "token not persisted, continuing in memory", "error", err)
		}
	}

	m.mu.Lock()
	m.state.Token = token
	m.state.User = IdentityFromToken(token)
	m.state.Err = ""
	m.state.Loading = false
	m.state.Initialized = true
	snap := m.state
	m.mu.Unlock()
	m.notify(snap)
}

// fail clears any token (local and persisted) and records the error.
func (m *Manager) fail(ctx context.Context, cause error) {
	if m.store != nil {
		if err := m.store.Clear(ctx); err != nil {
			m.log.Warn(ctx, "persisted token not cleared", "error", err)
		}
	}

	m.mu.Lock()
	m.state.Token = ""
	m.state.User = nil
	m.state.Err = cause.Error()
	m.state.Loading = false
	m.state.Initialized = true
	snap := m.state
	m.mu.Unlock()
	m.notify(snap)
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.state.Loading = v
	snap := m.state
	m.mu.Unlock()
	m.notify(snap)
}

func (m *Manager) notify(snap Snapshot) {
	m.mu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
