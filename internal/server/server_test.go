package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mmynk/fairshare/internal/config"
	"github.com/mmynk/fairshare/internal/storage/sqlite"
	"github.com/mmynk/fairshare/pkg/api"
	"github.com/mmynk/fairshare/pkg/api/apiconnect"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		BcryptCost:  4,
		CORSOrigins: []string{"*"},
	}
	srv := httptest.NewServer(New(cfg, store, slog.New(slog.DiscardHandler), prometheus.NewRegistry()))
	t.Cleanup(func() {
		srv.Close()
		store.Close()
	})
	return srv
}

func TestServer_AuthWiring(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	authClient := apiconnect.NewAuthServiceClient(srv.Client(), srv.URL)
	groups := apiconnect.NewGroupServiceClient(srv.Client(), srv.URL)
	expenses := apiconnect.NewExpenseServiceClient(srv.Client(), srv.URL)

	_, err := groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	_, err = expenses.CalculateShares(ctx, connect.NewRequest(&api.CalculateSharesRequest{Total: "1"}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	reg, err := authClient.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Password:    "password123",
	}))
	require.NoError(t, err)

	req := connect.NewRequest(&api.CalculateSharesRequest{
		Total:        "1.00",
		Participants: []api.Participant{{ID: "a"}, {ID: "b"}, {ID: "c"}},
	})
	req.Header().Set("Authorization", "Bearer "+reg.Msg.Token)
	resp, err := expenses.CalculateShares(ctx, req)
	require.NoError(t, err)
	require.Len(t, resp.Msg.Shares, 3)
	assert.Equal(t, "0.34", resp.Msg.Shares[0].Amount)
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServer_MetricsAndHealth(t *testing.T) {
	srv := newTestServer(t)

	// One failing RPC so the counter has a series.
	groups := apiconnect.NewGroupServiceClient(srv.Client(), srv.URL)
	_, _ = groups.ListGroups(context.Background(), connect.NewRequest(&api.ListGroupsRequest{}))

	code, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)

	code, body = get(t, srv, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `fairshare_rpc_requests_total{code="unauthenticated",procedure="/fairshare.v1.GroupService/ListGroups"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestServer_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+apiconnect.ExpenseServiceCalculateSharesProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
