package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/damaloy/marketplace-api/internal/auth"
	"github.com/damaloy/marketplace-api/internal/payments"
	"github.com/damaloy/marketplace-api/internal/store"
	"github.com/damaloy/marketplace-api/internal/store/storetest"
)

type fakeGateway struct {
	lastAmount int64
	err        error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64) (*payments.Intent, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.lastAmount = amount
	return &payments.Intent{ClientSecret: "cs_test_secret", PaymentIntentID: "pi_test_123"}, nil
}

type testEnv struct {
	router   *gin.Engine
	db       *storetest.DB
	gateway  *fakeGateway
	verifier *auth.Verifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := storetest.NewDB()
	bundle := &store.Store{
		Users:      db.Collection("users"),
		Vendors:    db.Collection("vendor"),
		Products:   db.Collection("products"),
		Ads:        db.Collection("ads"),
		Orders:     db.Collection("orders"),
		Payments:   db.Collection("payment"),
		Cart:       db.Collection("cart"),
		Watchlists: db.Collection("watchlists"),
		Reviews:    db.Collection("reviews"),
	}
	gw := &fakeGateway{}
	verifier := auth.NewVerifier("test-secret")
	cfg := HandlerConfig{
		DB:       bundle,
		Logger:   zap.NewNop(),
		Gateway:  gw,
		Verifier: verifier,
	}
	return &testEnv{
		router:   NewRouter(cfg, nil),
		db:       db,
		gateway:  gw,
		verifier: verifier,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestRootAndHealth(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Damaloy API is running successfully!", w.Body.String())

	w = e.do(t, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestNoRouteFallback(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/does/not/exist", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Not found", decodeBody(t, w)["message"])
}
