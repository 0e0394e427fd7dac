package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/pkg/utils"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(Config{
		BaseURL:         url,
		PublicKey:       "pub_test",
		PrivateKey:      "prv_test",
		IntegritySecret: "integrity",
		Timeout:         timeout,
	}, nil)
}

func sampleRequest() TransactionRequest {
	return TransactionRequest{
		AmountInCents:   15000000,
		Currency:        "COP",
		CustomerEmail:   "ana@example.com",
		Reference:       "tx-1",
		PaymentMethod:   PaymentMethod{Type: "CARD", Token: "tok_1", Installments: 1},
		AcceptanceToken: "acc_1",
	}
}

func TestCreateTransaction_SignsAndAuthenticates(t *testing.T) {
	t.Parallel()

	var got TransactionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "Bearer prv_test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"prov1","status":"APPROVED","reference":"tx-1"}}`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv.URL, time.Second).CreateTransaction(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "prov1", res.Transaction.ID)
	assert.Equal(t, "APPROVED", res.Transaction.Status)
	assert.Equal(t, IntegritySignature("tx-1", 15000000, "COP", "integrity"), got.Signature)
	assert.Equal(t, "CARD", got.PaymentMethod.Type)
}

func TestCreateTransaction_UpstreamErrorCarriesBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"type":"INPUT_VALIDATION_ERROR"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, time.Second).CreateTransaction(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrProvider))

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusUnprocessableEntity, perr.StatusCode)
	assert.JSONEq(t, `{"error":{"type":"INPUT_VALIDATION_ERROR"}}`, string(perr.AuditPayload()))
}

func TestCreateTransaction_TimeoutIsProviderError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newTestClient(srv.URL, 20*time.Millisecond).CreateTransaction(context.Background(), sampleRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrProvider))

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 0, perr.StatusCode)
}

func TestCreateTransaction_RejectsMissingReference(t *testing.T) {
	t.Parallel()

	req := sampleRequest()
	req.Reference = " "
	_, err := newTestClient("http://127.0.0.1:0", time.Second).CreateTransaction(context.Background(), req)
	assert.True(t, errors.Is(err, utils.ErrProvider))
}

func TestGetAcceptanceToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/merchants/pub_test", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"presigned_acceptance":{"acceptance_token":"acc_9","permalink":"https://x/terms.pdf","type":"END_USER_POLICY"}}}`))
	}))
	defer srv.Close()

	acc, err := newTestClient(srv.URL, time.Second).GetAcceptanceToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "acc_9", acc.AcceptanceToken)
	assert.Equal(t, "END_USER_POLICY", acc.Type)
}
