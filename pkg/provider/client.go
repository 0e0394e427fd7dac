package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Config struct {
	BaseURL         string
	PublicKey       string
	PrivateKey      string
	IntegritySecret string
	Timeout         time.Duration
}

type PaymentMethod struct {
	Type         string `json:"type"`
	Token        string `json:"token"`
	Installments int    `json:"installments"`
}

// TransactionRequest is the outbound payment creation call.
type TransactionRequest struct {
	AmountInCents   int64         `json:"amount_in_cents"`
	Currency        string        `json:"currency"`
	CustomerEmail   string        `json:"customer_email"`
	Reference       string        `json:"reference"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	AcceptanceToken string        `json:"acceptance_token"`
	Signature       string        `json:"signature,omitempty"`
}

// Result is a successful provider answer.
type Result struct {
	Transaction *TransactionPayload
	Raw         []byte
}

type Acceptance struct {
	AcceptanceToken string `json:"acceptance_token"`
	Permalink       string `json:"permalink"`
	Type            string `json:"type"`
}

// Gateway is the payment provider as seen by the services.
type Gateway interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (*Result, error)
	GetAcceptanceToken(ctx context.Context) (*Acceptance, error)
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// CreateTransaction signs req when an integrity secret is configured and
// posts it once. Any non-2xx answer or transport fault is an *Error.
func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (*Result, error) {
	req.Reference = strings.TrimSpace(req.Reference)
	if req.Reference == "" {
		return nil, &Error{Err: errors.New("missing reference")}
	}
	if req.AmountInCents <= 0 {
		return nil, &Error{Err: fmt.Errorf("invalid amount_in_cents %d", req.AmountInCents)}
	}
	if c.cfg.IntegritySecret != "" {
		req.Signature = IntegritySignature(req.Reference, req.AmountInCents, req.Currency, c.cfg.IntegritySecret)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("encode request: %w", err)}
	}

	raw, err := c.do(ctx, http.MethodPost, "/transactions", body, c.cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	switch p := Decode(raw).(type) {
	case *TransactionPayload:
		return &Result{Transaction: p, Raw: raw}, nil
	case *ErrorPayload:
		return nil, &Error{StatusCode: http.StatusOK, Body: raw, Err: fmt.Errorf("provider error %s", p.Type)}
	default:
		return nil, &Error{StatusCode: http.StatusOK, Body: raw, Err: errors.New("unrecognized provider response")}
	}
}

// GetAcceptanceToken fetches the merchant's presigned acceptance contract.
func (c *Client) GetAcceptanceToken(ctx context.Context) (*Acceptance, error) {
	raw, err := c.do(ctx, http.MethodGet, "/merchants/"+c.cfg.PublicKey, nil, "")
	if err != nil {
		return nil, err
	}

	var merchant struct {
		Data struct {
			PresignedAcceptance Acceptance `json:"presigned_acceptance"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &merchant); err != nil {
		return nil, &Error{StatusCode: http.StatusOK, Body: raw, Err: fmt.Errorf("decode merchant: %w", err)}
	}
	if merchant.Data.PresignedAcceptance.AcceptanceToken == "" {
		return nil, &Error{StatusCode: http.StatusOK, Body: raw, Err: errors.New("acceptance token missing")}
	}
	return &merchant.Data.PresignedAcceptance, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, bearer string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.cfg.BaseURL, "/")+path, reader)
	if err != nil {
		return nil, &Error{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn("provider call failed", zap.String("path", path), zap.Error(err))
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	c.log.Debug("provider call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{StatusCode: resp.StatusCode, Body: raw}
	}
	return raw, nil
}
