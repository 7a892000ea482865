package payvek

import (
	"crypto/hmac"
	"net/http"
	"strings"
)

// VerifyCallback reports whether an inbound callback was produced by a party
// holding the shared secret. It assumes a bodyless GET callback: the method
// defaults to GET and the content type to the empty string. Callbacks
// delivered as POST with a body must go through VerifyCallbackRequest with
// the real method and content type.
func (c *Client) VerifyCallback(headers http.Header, endpoint string, body []byte) bool {
	return c.VerifyCallbackRequest(headers, endpoint, body, http.MethodGet, "")
}

// VerifyCallbackRequest recomputes the digest over the received request and
// compares it to the ApiKeyAuth-MAC header in constant time.
//
// Verification never fails open and never panics: missing or malformed
// headers and digests of the wrong length all yield false. Treat false as
// "respond with 401", whatever the cause.
func (c *Client) VerifyCallbackRequest(headers http.Header, endpoint string, body []byte, httpMethod, contentType string) bool {
	nonce, ok := lookupHeader(headers, HeaderNonce)
	if !ok {
		return false
	}

	received, ok := lookupHeader(headers, HeaderMAC)
	if !ok {
		return false
	}

	expected := c.auth.computeDigest(nonce, endpoint, body, httpMethod, contentType)

	return hmac.Equal([]byte(expected), []byte(received))
}

// lookupHeader matches header names case-insensitively regardless of how the
// map was built. http.Header.Get is not enough: manually assembled maps may
// hold non-canonical keys.
func lookupHeader(headers http.Header, name string) (string, bool) {
	for key, values := range headers {
		if strings.EqualFold(key, name) && len(values) > 0 && values[0] != "" {
			return values[0], true
		}
	}

	return "", false
}
