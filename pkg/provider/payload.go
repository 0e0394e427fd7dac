package provider

import (
	"bytes"
	"encoding/json"
)

// Payload is a decoded provider response or event body. Every variant keeps
// the raw bytes it was decoded from for the audit trail.
type Payload interface {
	Raw() []byte
	isPayload()
}

// TransactionPayload is the provider's view of a payment.
type TransactionPayload struct {
	ID            string `json:"id"`
	Reference     string `json:"reference"`
	Status        string `json:"status"`
	StatusMessage string `json:"status_message,omitempty"`
	AmountInCents int64  `json:"amount_in_cents"`
	Currency      string `json:"currency"`
	CustomerEmail string `json:"customer_email,omitempty"`

	raw []byte
}

// ErrorPayload is the provider's error envelope.
type ErrorPayload struct {
	Type     string                     `json:"type"`
	Reason   string                     `json:"reason,omitempty"`
	Messages map[string]json.RawMessage `json:"messages,omitempty"`

	raw []byte
}

// UnknownPayload is anything that matched neither shape.
type UnknownPayload struct {
	raw []byte
}

func (p *TransactionPayload) Raw() []byte { return p.raw }
func (p *ErrorPayload) Raw() []byte       { return p.raw }
func (p *UnknownPayload) Raw() []byte     { return p.raw }

func (*TransactionPayload) isPayload() {}
func (*ErrorPayload) isPayload()       {}
func (*UnknownPayload) isPayload()     {}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *ErrorPayload   `json:"error"`
}

// Decode classifies a response body. It accepts both the enveloped form
// {"data": {...}} and a bare transaction object.
func Decode(raw []byte) Payload {
	raw = bytes.TrimSpace(raw)

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &UnknownPayload{raw: raw}
	}
	if env.Error != nil && env.Error.Type != "" {
		env.Error.raw = raw
		return env.Error
	}
	if len(env.Data) > 0 {
		if tx := decodeTransaction(env.Data); tx != nil {
			tx.raw = raw
			return tx
		}
	}
	if tx := decodeTransaction(raw); tx != nil {
		tx.raw = raw
		return tx
	}
	return &UnknownPayload{raw: raw}
}

func decodeTransaction(raw []byte) *TransactionPayload {
	var tx TransactionPayload
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil
	}
	if tx.ID == "" && tx.Status == "" {
		return nil
	}
	return &tx
}

// AuditJSON returns raw as a JSON document, quoting it when it is not one.
func AuditJSON(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && json.Valid(raw) {
		return raw
	}
	quoted, _ := json.Marshal(string(raw))
	return quoted
}
