package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("enveloped transaction", func(t *testing.T) {
		raw := []byte(`{"data":{"id":"prov1","status":"APPROVED","reference":"r1"}}`)
		tx, ok := Decode(raw).(*TransactionPayload)
		require.True(t, ok)
		assert.Equal(t, "prov1", tx.ID)
		assert.Equal(t, "APPROVED", tx.Status)
		assert.Equal(t, raw, tx.Raw())
	})

	t.Run("bare transaction", func(t *testing.T) {
		tx, ok := Decode([]byte(`{"id":"prov2","status":"PENDING"}`)).(*TransactionPayload)
		require.True(t, ok)
		assert.Equal(t, "prov2", tx.ID)
	})

	t.Run("error envelope", func(t *testing.T) {
		p, ok := Decode([]byte(`{"error":{"type":"INPUT_VALIDATION_ERROR","messages":{"x":["bad"]}}}`)).(*ErrorPayload)
		require.True(t, ok)
		assert.Equal(t, "INPUT_VALIDATION_ERROR", p.Type)
	})

	t.Run("unknown keeps raw", func(t *testing.T) {
		p, ok := Decode([]byte(`<html>bad gateway</html>`)).(*UnknownPayload)
		require.True(t, ok)
		assert.Equal(t, "<html>bad gateway</html>", string(p.Raw()))
	})
}

func TestAuditJSON(t *testing.T) {
	t.Parallel()

	assert.JSONEq(t, `{"a":1}`, string(AuditJSON([]byte(`{"a":1}`))))
	assert.Equal(t, `"timeout"`, string(AuditJSON([]byte("timeout"))))
	assert.Equal(t, `""`, string(AuditJSON(nil)))
}

func TestDecodeEvent(t *testing.T) {
	t.Parallel()

	ev, err := DecodeEvent([]byte(`{"event":"transaction.updated","data":{"transaction":{"id":"p1","reference":"r1","status":"DECLINED"}},"timestamp":1700000000}`))
	require.NoError(t, err)
	assert.Equal(t, EventTransactionUpdated, ev.Type)
	require.NotNil(t, ev.Transaction)
	assert.Equal(t, "p1", ev.Transaction.ID)
	assert.Equal(t, "DECLINED", ev.Transaction.Status)
	assert.Equal(t, int64(1700000000), ev.Timestamp)

	flat, err := DecodeEvent([]byte(`{"event":"transaction.updated","data":{"id":"p2","status":"APPROVED"}}`))
	require.NoError(t, err)
	require.NotNil(t, flat.Transaction)
	assert.Equal(t, "p2", flat.Transaction.ID)

	empty, err := DecodeEvent([]byte(`{"event":"nequi_token.updated"}`))
	require.NoError(t, err)
	assert.Nil(t, empty.Transaction)

	_, err = DecodeEvent([]byte(`not json`))
	assert.Error(t, err)
}
