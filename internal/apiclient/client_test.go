package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocksmith/adminctl/internal/adapters/memstore"
	domainauth "github.com/mocksmith/adminctl/internal/domain/auth"
	"github.com/mocksmith/adminctl/internal/domain/model"
	apperrors "github.com/mocksmith/adminctl/internal/errors"
	"github.com/mocksmith/adminctl/internal/ports"
	"github.com/mocksmith/adminctl/internal/session"
)

type clientFixture struct {
	storage *memstore.Store
	store   *session.Store
	client  *Client

	mu      sync.Mutex
	expired []error
}

func newClientFixture(t *testing.T, handler http.Handler) *clientFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	f := &clientFixture{storage: memstore.New()}
	f.store = session.NewStore(session.StoreOptions{Storage: f.storage})
	f.client = New(Options{
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Store:      f.store,
		OnSessionExpired: func(err error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.expired = append(f.expired, err)
		},
	})
	return f
}

func (f *clientFixture) seedTokens(t *testing.T, access, refresh string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.storage.Write(ctx, ports.KeyAccessToken, access))
	require.NoError(t, f.storage.Write(ctx, ports.KeyRefreshToken, refresh))
}

func (f *clientFixture) expiredCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.expired)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func refreshResponse(access string) domainauth.Response {
	return domainauth.Response{
		AccessToken:  access,
		RefreshToken: "refresh-2",
		User:         domainauth.User{ID: "u1", Name: "alice"},
	}
}

func TestClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		writeJSON(t, w, http.StatusOK, []model.MockEndpoint{})
	}))
	f.seedTokens(t, "access-1", "refresh-1")

	_, err := f.client.ListMockEndpoints(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Bearer access-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_RefreshRetryOn401(t *testing.T) {
	var endpointCalls, refreshCalls atomic.Int32
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api-auth/refresh":
			refreshCalls.Add(1)
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "refresh-1", req["refreshToken"])
			writeJSON(t, w, http.StatusOK, refreshResponse("access-2"))
		case "/api-mock/endpoints":
			endpointCalls.Add(1)
			if r.Header.Get("Authorization") != "Bearer access-2" {
				writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
				return
			}
			writeJSON(t, w, http.StatusOK, []model.MockEndpoint{{ID: "m1", Name: "orders"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	f.seedTokens(t, "access-1", "refresh-1")

	endpoints, err := f.client.ListMockEndpoints(context.Background())

	require.NoError(t, err, "caller should never see the original 401")
	require.Len(t, endpoints, 1)
	assert.Equal(t, "orders", endpoints[0].Name)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), endpointCalls.Load())

	access, ok := f.store.AccessToken(context.Background())
	require.True(t, ok)
	assert.Equal(t, "access-2", access)
	refresh, ok := f.store.RefreshToken(context.Background())
	require.True(t, ok)
	assert.Equal(t, "refresh-1", refresh, "reactive refresh replaces only the access token")
}

func TestClient_RefreshFailureClearsSession(t *testing.T) {
	var endpointCalls atomic.Int32
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api-auth/refresh":
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "refresh token revoked"})
		case "/api-mock/endpoints":
			endpointCalls.Add(1)
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	f.seedTokens(t, "access-1", "refresh-1")

	_, err := f.client.ListMockEndpoints(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsSessionExpired(err))
	assert.Equal(t, int32(1), endpointCalls.Load(), "no retry after a failed refresh")
	assert.Equal(t, 1, f.expiredCount())

	_, ok := f.store.AccessToken(context.Background())
	assert.False(t, ok)
	_, ok = f.store.RefreshToken(context.Background())
	assert.False(t, ok)
}

func TestClient_Second401ReturnedAsIs(t *testing.T) {
	var endpointCalls, refreshCalls atomic.Int32
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api-auth/refresh":
			refreshCalls.Add(1)
			writeJSON(t, w, http.StatusOK, refreshResponse("access-2"))
		case "/api-mock/endpoints":
			endpointCalls.Add(1)
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "still not welcome"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	f.seedTokens(t, "access-1", "refresh-1")

	_, err := f.client.ListMockEndpoints(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err), "second 401 surfaces unchanged")
	assert.False(t, apperrors.IsSessionExpired(err))
	assert.Contains(t, err.Error(), "still not welcome")
	assert.Equal(t, int32(1), refreshCalls.Load(), "exactly one refresh, never a loop")
	assert.Equal(t, int32(2), endpointCalls.Load())
}

func TestClient_401WithoutTokenNotRefreshed(t *testing.T) {
	var refreshCalls atomic.Int32
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api-auth/refresh" {
			refreshCalls.Add(1)
		}
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "no credentials"})
	}))

	_, err := f.client.ListMockEndpoints(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, int32(0), refreshCalls.Load(), "nothing to refresh without a session")
}

func TestClient_ConcurrentRefreshesCoalesce(t *testing.T) {
	var refreshCalls atomic.Int32
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api-auth/refresh":
			refreshCalls.Add(1)
			time.Sleep(50 * time.Millisecond) // hold the flight open so callers pile up
			writeJSON(t, w, http.StatusOK, refreshResponse("access-2"))
		case "/api-mock/endpoints":
			if r.Header.Get("Authorization") != "Bearer access-2" {
				writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
				return
			}
			writeJSON(t, w, http.StatusOK, []model.MockEndpoint{})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	f.seedTokens(t, "access-1", "refresh-1")

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.client.ListMockEndpoints(context.Background())
		}()
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "caller %d", i)
	}
	assert.Equal(t, int32(1), refreshCalls.Load(), "concurrent 401s share one refresh call")
}

func TestClient_ErrorBodyShapes(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
		wantMessage string
	}{
		{"error field", "application/json", `{"error":"name already taken"}`, "name already taken"},
		{"message field", "application/json", `{"message":"too many endpoints"}`, "too many endpoints"},
		{"plain text", "text/plain", "upstream exploded", "upstream exploded"},
		{"empty body", "application/json", "", "HTTP error, status: 409"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(tc.body))
			}))
			f.seedTokens(t, "access-1", "refresh-1")

			_, err := f.client.ListMockEndpoints(context.Background())

			require.Error(t, err)
			assert.True(t, apperrors.IsConflict(err))
			assert.Contains(t, err.Error(), tc.wantMessage)
		})
	}
}

func TestClient_ContextCancellationMapsToCanceled(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(started)
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(func() { close(release) })
	f.seedTokens(t, "access-1", "refresh-1")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := f.client.ListMockEndpoints(ctx)

	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))
}

func TestClient_ValidationFailsBeforeNetwork(t *testing.T) {
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	f.seedTokens(t, "access-1", "refresh-1")
	ctx := context.Background()

	_, err := f.client.CreateMockEndpoint(ctx, model.CreateMockEndpointRequest{Name: "", Path: "/x"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.client.UpdateProxyEndpoint(ctx, "p1", model.UpdateProxyEndpointRequest{})
	assert.True(t, apperrors.IsValidation(err))

	_, err = f.client.CreateUser(ctx, model.CreateUserRequest{Name: "ab", Password: "secret-1"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestClient_LoginDecodesResponse(t *testing.T) {
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api-auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login is an unauthorized call")
		var creds domainauth.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Name)
		writeJSON(t, w, http.StatusOK, refreshResponse("access-1"))
	}))

	resp, err := f.client.Login(context.Background(), domainauth.Credentials{Name: "alice", Password: "secret-1"})

	require.NoError(t, err)
	assert.Equal(t, "access-1", resp.AccessToken)
	assert.Equal(t, "alice", resp.User.Name)
}

func TestClient_DeleteSendsNoBodyExpectsNone(t *testing.T) {
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api-proxy/endpoints/p1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	f.seedTokens(t, "access-1", "refresh-1")

	require.NoError(t, f.client.DeleteProxyEndpoint(context.Background(), "p1"))
}

func TestClient_StatsEndpoints(t *testing.T) {
	f := newClientFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats := model.EndpointStats{Total: 8, Enabled: 6, Disabled: 2, MaxEndpoints: 10, RemainingSlots: 2}
		switch r.URL.Path {
		case "/api-mock/stats", "/api-proxy/stats":
			writeJSON(t, w, http.StatusOK, stats)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	f.seedTokens(t, "access-1", "refresh-1")
	ctx := context.Background()

	mockStats, err := f.client.MockStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, mockStats.Total)
	assert.False(t, mockStats.AtCapacity())

	proxyStats, err := f.client.ProxyStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, proxyStats.RemainingSlots)
}
