package payvek

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// authenticator derives message authentication codes from the API credentials.
// Both outgoing requests and inbound callbacks go through the same digest.
type authenticator struct {
	key    string
	secret string
}

// computeDigest binds the credentials, a freshness nonce and the exact request
// bytes into a single hex-encoded SHA3-512 MAC.
//
// Fields are joined with null bytes so variable-length values can not bleed
// into each other. Every separator is emitted even for empty fields: signer
// and verifier must produce byte-identical hash input.
func (a authenticator) computeDigest(nonce, endpoint string, body []byte, httpMethod, contentType string) string {
	h := sha3.New512()

	h.Write([]byte{0})
	h.Write([]byte(a.key))
	h.Write([]byte{0})
	h.Write([]byte(a.secret))
	h.Write([]byte{0})
	h.Write([]byte(nonce))
	h.Write([]byte{0})
	h.Write([]byte(httpMethod))
	h.Write([]byte{0})
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write([]byte(contentType))
	h.Write([]byte{0})
	h.Write(body)
	h.Write([]byte{0})

	return hex.EncodeToString(h.Sum(nil))
}
