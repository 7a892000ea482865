package payvek

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func verifierClient() *Client {
	logger := zerolog.Nop()

	return New(Config{APIKey: testKey, APISecret: testSecret}, &logger)
}

func signedHeaders(c *Client, nonce, endpoint string, body []byte, method, contentType string) http.Header {
	digest := c.auth.computeDigest(nonce, endpoint, body, method, contentType)

	return http.Header{
		HeaderNonce: []string{nonce},
		HeaderMAC:   []string{digest},
	}
}

func TestVerifyCallback(t *testing.T) {
	client := verifierClient()

	endpoint := "/integrator/payvek/status"
	nonce := "1700000000000"

	t.Run("Accepts a genuine GET callback", func(t *testing.T) {
		headers := signedHeaders(client, nonce, endpoint, nil, http.MethodGet, "")

		assert.True(t, client.VerifyCallback(headers, endpoint, nil))
	})

	t.Run("Accepts a genuine POST callback", func(t *testing.T) {
		body := []byte(`{"payment_code":"X","status":"paid"}`)
		headers := signedHeaders(client, nonce, endpoint, body, http.MethodPost, "application/json")

		assert.True(t, client.VerifyCallbackRequest(headers, endpoint, body, http.MethodPost, "application/json"))
	})

	t.Run("Header names are case-insensitive", func(t *testing.T) {
		digest := client.auth.computeDigest(nonce, endpoint, nil, http.MethodGet, "")

		for _, headers := range []http.Header{
			{"ApiKeyAuth-Nonce": {nonce}, "ApiKeyAuth-MAC": {digest}},
			{"apikeyauth-nonce": {nonce}, "apikeyauth-mac": {digest}},
			{"APIKEYAUTH-NONCE": {nonce}, "APIKEYAUTH-MAC": {digest}},
		} {
			assert.True(t, client.VerifyCallback(headers, endpoint, nil))
		}
	})

	t.Run("Rejects any altered field", func(t *testing.T) {
		body := []byte(`{"status":"paid"}`)
		headers := signedHeaders(client, nonce, endpoint, body, http.MethodPost, "application/json")

		// body
		assert.False(t, client.VerifyCallbackRequest(headers, endpoint, []byte(`{"status":"fail"}`), http.MethodPost, "application/json"))
		// endpoint
		assert.False(t, client.VerifyCallbackRequest(headers, "/other", body, http.MethodPost, "application/json"))
		// method
		assert.False(t, client.VerifyCallbackRequest(headers, endpoint, body, http.MethodPut, "application/json"))
		// content type
		assert.False(t, client.VerifyCallbackRequest(headers, endpoint, body, http.MethodPost, "text/plain"))
		// secret
		logger := zerolog.Nop()
		other := New(Config{APIKey: testKey, APISecret: "s2"}, &logger)
		assert.False(t, other.VerifyCallbackRequest(headers, endpoint, body, http.MethodPost, "application/json"))
	})

	t.Run("Never raises on missing or malformed headers", func(t *testing.T) {
		digest := client.auth.computeDigest(nonce, endpoint, nil, http.MethodGet, "")

		for name, headers := range map[string]http.Header{
			"no headers":    {},
			"nil headers":   nil,
			"nonce only":    {HeaderNonce: {nonce}},
			"mac only":      {HeaderMAC: {digest}},
			"empty values":  {HeaderNonce: {""}, HeaderMAC: {""}},
			"truncated mac": {HeaderNonce: {nonce}, HeaderMAC: {digest[:16]}},
			"garbage mac":   {HeaderNonce: {nonce}, HeaderMAC: {"not-hex-at-all"}},
		} {
			assert.False(t, client.VerifyCallback(headers, endpoint, nil), name)
		}
	})
}
