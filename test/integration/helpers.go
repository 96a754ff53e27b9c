package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/fracshare/rwaledger/internal/domain"
	"github.com/fracshare/rwaledger/internal/manager"
	"github.com/fracshare/rwaledger/internal/repository"
	"github.com/fracshare/rwaledger/internal/server"
)

// TestFixture runs the full service over a real HTTP listener with a fixed
// clock and one bootstrap admin.
type TestFixture struct {
	Server *httptest.Server
	Client *http.Client

	Admin domain.Identity
	Alice domain.Identity
	Bob   domain.Identity
}

// NewTestFixture builds the fixture and registers the three identities, with
// Alice and Bob KYC approved.
func NewTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	f := &TestFixture{
		Admin: domain.NewIdentity(),
		Alice: domain.NewIdentity(),
		Bob:   domain.NewIdentity(),
	}

	store := repository.NewMemoryStore()
	clock := domain.Clock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) })
	logger := zerolog.Nop()

	notifier := manager.NewNotifier(store, clock, logger)
	users := manager.NewUserManager(store, notifier, clock, []domain.Identity{f.Admin})
	portfolios := manager.NewPortfolioManager(store, logger)
	assets := manager.NewAssetManager(store, users, notifier, clock)
	tokens := manager.NewTokenManager(store, users, assets, notifier, portfolios, clock)
	trades := manager.NewTradeManager(store, users, tokens, notifier, clock)
	notifications := manager.NewNotificationManager(store, users)
	stats := manager.NewStatsManager(store)

	srv := server.New(users, assets, tokens, trades, notifications, portfolios, stats,
		store, logger, rate.NewLimiter(rate.Inf, 0))

	f.Server = httptest.NewServer(srv.Router())
	f.Client = f.Server.Client()

	f.Post(t, f.Admin, "/users", map[string]any{
		"username": "admin", "email": "admin@example.com",
	}, http.StatusCreated)
	for name, id := range map[string]domain.Identity{"alice": f.Alice, "bob": f.Bob} {
		f.Post(t, id, "/users", map[string]any{
			"username": name, "email": name + "@example.com",
		}, http.StatusCreated)
		f.request(t, f.Admin, http.MethodPut, fmt.Sprintf("/users/%s/kyc", id), map[string]any{
			"status": "approved",
		}, http.StatusOK)
	}
	return f
}

// Cleanup shuts the listener down.
func (f *TestFixture) Cleanup(t *testing.T) {
	t.Helper()
	f.Server.Close()
}

// Post issues a POST as caller and asserts the status code.
func (f *TestFixture) Post(t *testing.T, caller domain.Identity, path string, body any, wantStatus int) map[string]any {
	t.Helper()
	return f.request(t, caller, http.MethodPost, path, body, wantStatus)
}

// Get issues a GET and asserts the status code.
func (f *TestFixture) Get(t *testing.T, path string, wantStatus int) map[string]any {
	t.Helper()
	return f.request(t, domain.NilIdentity, http.MethodGet, path, nil, wantStatus)
}

func (f *TestFixture) request(t *testing.T, caller domain.Identity, method, path string, body any, wantStatus int) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.Server.URL+path, &buf)
	require.NoError(t, err)
	if caller != domain.NilIdentity {
		req.Header.Set(server.CallerHeader, caller.String())
	}

	resp, err := f.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "body: %s", raw)

	if len(raw) == 0 {
		return nil
	}
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// ID extracts the numeric id field of a decoded response.
func ID(t *testing.T, body map[string]any) uint64 {
	t.Helper()
	raw, ok := body["id"].(float64)
	require.True(t, ok, "response has no numeric id: %v", body)
	return uint64(raw)
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
