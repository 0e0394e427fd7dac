package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/api/controllers"
	"storefront/internal/config"
	dbm "storefront/internal/models/db_models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/internal/testutil"
	"storefront/pkg/notifier"
	"storefront/pkg/provider"
	"storefront/pkg/utils"
)

const testEventsSecret = "events_secret"

type stubGateway struct {
	status string
	calls  int
}

func (s *stubGateway) CreateTransaction(_ context.Context, req provider.TransactionRequest) (*provider.Result, error) {
	s.calls++
	raw := []byte(`{"data":{"id":"prov-` + req.Reference + `","status":"` + s.status + `"}}`)
	return &provider.Result{
		Transaction: &provider.TransactionPayload{ID: "prov-" + req.Reference, Status: s.status},
		Raw:         raw,
	}, nil
}

func (s *stubGateway) GetAcceptanceToken(context.Context) (*provider.Acceptance, error) {
	return &provider.Acceptance{AcceptanceToken: "acc_tok", Permalink: "https://example.com/terms", Type: "END_USER_POLICY"}, nil
}

type testServer struct {
	router  *gin.Engine
	hub     *notifier.Hub
	gateway *stubGateway
	tokens  *utils.TokenIssuer
	product *dbm.Product
}

func newTestServer(t *testing.T, providerStatus string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	log := zap.NewNop()
	cfg := &config.Config{Env: "test", FrontendURL: "http://localhost:5173"}

	ledger := repositories.NewLedgerRepository(db)
	hub := notifier.NewHub(20*time.Millisecond, func(s string) bool { return dbm.TransactionStatus(s).IsTerminal() }, log)
	t.Cleanup(hub.Close)
	gateway := &stubGateway{status: providerStatus}
	tokens := utils.NewTokenIssuer("jwt_secret")

	hash, err := utils.HashPassword("admin-pass")
	require.NoError(t, err)

	txns := services.NewTransactionService(ledger, gateway, hub, "COP", log)
	payments := services.NewPaymentService(txns, gateway, repositories.NewWebhookEventRepository(db), testEventsSecret, log)

	router := NewRouter(cfg, log, tokens, Controllers{
		Products:     controllers.NewProductController(services.NewCatalogService(ledger), log),
		Transactions: controllers.NewTransactionController(txns, log),
		Payments:     controllers.NewPaymentController(payments, txns, hub, log),
		Admin:        controllers.NewAdminController(services.NewAdminService("admin@example.com", hash, tokens, log), log),
		Health:       controllers.NewHealthController(db),
	})

	return &testServer{
		router:  router,
		hub:     hub,
		gateway: gateway,
		tokens:  tokens,
		product: testutil.SeedProduct(t, db, "Reloj Inteligente Sport v2", 150000, 15),
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path string, body any, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *testServer) createTransaction(t *testing.T) string {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/transactions", map[string]any{
		"product_id":         s.product.ID.String(),
		"quantity":           1,
		"customer_email":     "ana@example.com",
		"customer_full_name": "Ana Gomez",
		"customer_phone":     "3001234567",
		"amount":             150000,
		"amount_unit":        "minor",
		"address":            "Calle 10 #5-20",
		"city":               "Bogota",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var txn struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &txn))
	assert.Equal(t, "PENDING", txn.Status)
	return txn.ID
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t, "APPROVED")

	w, env := s.do(t, http.MethodGet, "/products", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, env.TraceID)

	w, _ = s.do(t, http.MethodGet, "/payments/acceptance-data", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	id := s.createTransaction(t)

	w, env = s.do(t, http.MethodPost, "/transactions/"+id+"/process", map[string]any{
		"card_token":       "tok_test",
		"acceptance_token": "acc_tok",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result struct {
		Status                string `json:"status"`
		ProviderTransactionID string `json:"provider_transaction_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "COMPLETED", result.Status)
	assert.Equal(t, "prov-"+id, result.ProviderTransactionID)

	w, env = s.do(t, http.MethodPost, "/transactions/"+id+"/process", map[string]any{
		"card_token":       "tok_test",
		"acceptance_token": "acc_tok",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "COMPLETED", result.Status)
	assert.Equal(t, 1, s.gateway.calls)

	w, env = s.do(t, http.MethodGet, "/products/"+s.product.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var product struct {
		Stock int `json:"stock"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, 14, product.Stock)
}

func TestCreateTransaction_Errors(t *testing.T) {
	s := newTestServer(t, "APPROVED")

	w, _ := s.do(t, http.MethodPost, "/transactions", map[string]any{"quantity": 1}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := s.do(t, http.MethodPost, "/transactions", map[string]any{
		"product_id":         s.product.ID.String(),
		"quantity":           99,
		"customer_email":     "ana@example.com",
		"customer_full_name": "Ana",
		"customer_phone":     "300",
		"amount":             150000,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Not enough stock", env.Message)

	w, _ = s.do(t, http.MethodGet, "/transactions/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, "/products/6f1c1a52-2c55-4f0b-9d0f-2f3f0f8a9b11", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhookEndpoint(t *testing.T) {
	s := newTestServer(t, "PENDING")
	id := s.createTransaction(t)

	w, _ := s.do(t, http.MethodPost, "/transactions/"+id+"/process", map[string]any{
		"card_token":       "tok_test",
		"acceptance_token": "acc_tok",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := []byte(`{"event":"transaction.updated","data":{"transaction":{"id":"prov-` + id + `","status":"APPROVED"}}}`)

	w, _ = s.do(t, http.MethodPost, "/payments/webhook", body, map[string]string{
		controllers.EventSignatureHeader: provider.SignBody("wrong", body),
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	for i := 0; i < 2; i++ {
		w, env := s.do(t, http.MethodPost, "/payments/webhook", body, map[string]string{
			controllers.EventSignatureHeader: provider.SignBody(testEventsSecret, body),
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
	}

	w, env := s.do(t, http.MethodGet, "/transactions/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txn struct {
		Status   string `json:"status"`
		Delivery struct {
			Status string `json:"status"`
			City   string `json:"city"`
		} `json:"delivery"`
		Product struct {
			Stock int `json:"stock"`
		} `json:"product"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &txn))
	assert.Equal(t, "COMPLETED", txn.Status)
	assert.Equal(t, "APPROVED", txn.Delivery.Status)
	assert.Equal(t, "Bogota", txn.Delivery.City)
	assert.Equal(t, 14, txn.Product.Stock)
}

func TestGetTransaction_PublicResponseHasNoContactData(t *testing.T) {
	s := newTestServer(t, "APPROVED")
	id := s.createTransaction(t)

	w, env := s.do(t, http.MethodGet, "/transactions/"+id, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), "ana@example.com")
	assert.NotContains(t, string(env.Data), "3001234567")
	assert.NotContains(t, string(env.Data), `"customer":`)
}

func TestListTransactions_RequiresAdmin(t *testing.T) {
	s := newTestServer(t, "APPROVED")
	s.createTransaction(t)

	w, _ := s.do(t, http.MethodGet, "/transactions", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(t, http.MethodPost, "/admin/login", map[string]string{
		"email":    "admin@example.com",
		"password": "admin-pass",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	w, env = s.do(t, http.MethodGet, "/transactions?page=1&pageSize=10", nil, map[string]string{
		"Authorization": "Bearer " + login.Token,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	w, _ = s.do(t, http.MethodPost, "/admin/login", map[string]string{
		"email":    "admin@example.com",
		"password": "nope",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatusStream(t *testing.T) {
	s := newTestServer(t, "APPROVED")
	id := s.createTransaction(t)

	srv := httptest.NewServer(s.router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/payments/transactions/" + id + "/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream"), resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return s.hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	w, _ := s.do(t, http.MethodPost, "/transactions/"+id+"/process", map[string]any{
		"card_token":       "tok_test",
		"acceptance_token": "acc_tok",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	stream, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(stream), "event:status"))
	assert.Contains(t, string(stream), `"status":"PENDING"`)
	assert.Contains(t, string(stream), `"status":"COMPLETED"`)
}

func TestStatusStream_TerminalSnapshotEndsStream(t *testing.T) {
	s := newTestServer(t, "DECLINED")
	id := s.createTransaction(t)

	w, _ := s.do(t, http.MethodPost, "/transactions/"+id+"/process", map[string]any{
		"card_token":       "tok_test",
		"acceptance_token": "acc_tok",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/payments/transactions/"+id+"/events", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"FAILED"`)
	assert.Equal(t, 0, s.hub.Len())
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, "APPROVED")
	w, _ := s.do(t, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
