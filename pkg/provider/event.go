package provider

import (
	"encoding/json"
	"fmt"
)

const EventTransactionUpdated = "transaction.updated"

// Event is an inbound provider callback.
type Event struct {
	Type        string
	Transaction *TransactionPayload
	Timestamp   int64
	raw         []byte
}

func (e *Event) Raw() []byte { return e.raw }

type eventBody struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// DecodeEvent parses a webhook body. The transaction is read from
// data.transaction, or from data itself when the provider sends it flat.
func DecodeEvent(raw []byte) (*Event, error) {
	var body eventBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	ev := &Event{Type: body.Event, Timestamp: body.Timestamp, raw: raw}
	if len(body.Data) == 0 {
		return ev, nil
	}

	var nested struct {
		Transaction json.RawMessage `json:"transaction"`
	}
	if err := json.Unmarshal(body.Data, &nested); err == nil && len(nested.Transaction) > 0 {
		ev.Transaction = decodeTransaction(nested.Transaction)
	}
	if ev.Transaction == nil {
		ev.Transaction = decodeTransaction(body.Data)
	}
	if ev.Transaction != nil {
		ev.Transaction.raw = raw
	}
	return ev, nil
}
