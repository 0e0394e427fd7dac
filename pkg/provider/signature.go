package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// IntegritySignature is the outbound checksum:
// sha256(reference + amount_in_cents + currency + secret), hex encoded.
func IntegritySignature(reference string, amountInCents int64, currency, secret string) string {
	var b strings.Builder
	b.WriteString(reference)
	b.WriteString(strconv.FormatInt(amountInCents, 10))
	b.WriteString(currency)
	b.WriteString(secret)
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// SignBody returns the hex HMAC-SHA256 of body under secret.
func SignBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyInboundSignature reports whether received is the hex HMAC-SHA256 of
// the raw body. A missing secret or signature is never valid.
func VerifyInboundSignature(secret string, rawBody []byte, received string) bool {
	if secret == "" || received == "" {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(received))
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := mac.Sum(nil)
	if len(got) != len(expected) {
		return false
	}
	return hmac.Equal(got, expected)
}
