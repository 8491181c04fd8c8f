package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/republica/internal/auth"
	"github.com/mmynk/republica/internal/finance"
	"github.com/mmynk/republica/internal/storage/sqlite"
	"github.com/mmynk/republica/pkg/api"
	"github.com/mmynk/republica/pkg/api/apiconnect"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("server-test-secret", time.Hour)
	mux := setupRouter(routerDeps{
		ledger:        finance.New(store),
		authenticator: auth.NewPasswordAuthenticator(store),
		jwtManager:    jwtManager,
		provider:      auth.NewIdentityProvider(jwtManager, store),
		members:       store,
		registry:      prometheus.NewRegistry(),
	})

	server := httptest.NewServer(corsMiddleware(mux))
	t.Cleanup(server.Close)
	return server
}

func TestSetupRouter(t *testing.T) {
	server := newTestServer(t)

	t.Run("health check", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok\n", string(body))
	})

	t.Run("CORS preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, server.URL+apiconnect.FinanceServiceListExpensesProcedure, nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("finance calls require a token", func(t *testing.T) {
		client := apiconnect.NewFinanceServiceClient(http.DefaultClient, server.URL)
		_, err := client.GetDashboard(context.Background(), connect.NewRequest(&api.GetDashboardRequest{}))
		require.Error(t, err)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("metrics record RPC results", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		want := `republica_rpc_requests_total{code="unauthenticated",procedure="` + apiconnect.FinanceServiceGetDashboardProcedure + `"} 1`
		assert.True(t, strings.Contains(string(body), want), "metrics output:\n%s", body)
	})
}
