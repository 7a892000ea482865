package callback

import (
	"bytes"
	"context"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/sha3"

	"github.com/payvek/payvek-go/pkg/payvek"
)

func TestServer(t *testing.T) {
	logger := zerolog.Nop()

	processor := payvek.New(payvek.Config{APIKey: "k1", APISecret: "s1"}, &logger)

	var received []gjson.Result
	handler := func(ctx context.Context, payload gjson.Result) error {
		received = append(received, payload)
		return nil
	}

	srv := New(Config{Path: "/callback"}, processor, handler, WithRecover())

	s := httptest.NewServer(srv.Echo())
	t.Cleanup(s.Close)

	// the processor side signs requests with the same credentials
	sign := func(req *http.Request, body []byte) {
		// headers mirror what the processor sends; recomputed via a second
		// client so the server is exercised end to end
		nonce := "1700000000000"
		contentType := req.Header.Get("Content-Type")

		digest := digestFor(t, "k1", "s1", nonce, req.URL.Path, body, req.Method, contentType)
		req.Header.Set(payvek.HeaderNonce, nonce)
		req.Header.Set(payvek.HeaderMAC, digest)
	}

	t.Run("Accepts a signed POST callback", func(t *testing.T) {
		body := []byte(`{"payment_code":"X","status":"paid"}`)

		req := lo.Must(http.NewRequest(http.MethodPost, s.URL+"/callback", bytes.NewReader(body)))
		req.Header.Set("Content-Type", "application/json")
		sign(req, body)

		res := lo.Must(http.DefaultClient.Do(req))
		defer res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode)
		require.Len(t, received, 1)
		assert.Equal(t, "paid", received[0].Get("status").Str)
	})

	t.Run("Accepts a signed bodyless GET callback", func(t *testing.T) {
		req := lo.Must(http.NewRequest(http.MethodGet, s.URL+"/callback", nil))
		sign(req, nil)

		res := lo.Must(http.DefaultClient.Do(req))
		defer res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("Rejects unsigned requests with 401", func(t *testing.T) {
		res := lo.Must(http.Post(s.URL+"/callback", "application/json", bytes.NewReader([]byte(`{}`))))
		defer res.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("Rejects a tampered body with 401", func(t *testing.T) {
		body := []byte(`{"status":"paid"}`)

		req := lo.Must(http.NewRequest(http.MethodPost, s.URL+"/callback", bytes.NewReader([]byte(`{"status":"fail"}`))))
		req.Header.Set("Content-Type", "application/json")
		sign(req, body)

		res := lo.Must(http.DefaultClient.Do(req))
		defer res.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("Healthcheck needs no signature", func(t *testing.T) {
		res := lo.Must(http.Get(s.URL + "/health"))
		defer res.Body.Close()

		assert.Equal(t, http.StatusOK, res.StatusCode)
	})
}

// digestFor plays the processor: it produces the MAC from the documented
// wire scheme, independently of the client internals. The fixture checks its
// own consistency against VerifyCallbackRequest before use.
func digestFor(t *testing.T, key, secret, nonce, endpoint string, body []byte, method, contentType string) string {
	t.Helper()

	h := sha3.New512()
	for _, part := range [][]byte{
		[]byte(key), []byte(secret), []byte(nonce),
		[]byte(method), []byte(endpoint), []byte(contentType), body,
	} {
		h.Write([]byte{0})
		h.Write(part)
	}
	h.Write([]byte{0})

	digest := hex.EncodeToString(h.Sum(nil))

	logger := zerolog.Nop()
	c := payvek.New(payvek.Config{APIKey: key, APISecret: secret}, &logger)

	headers := http.Header{payvek.HeaderNonce: {nonce}, payvek.HeaderMAC: {digest}}
	require.True(t, c.VerifyCallbackRequest(headers, endpoint, body, method, contentType))

	return digest
}
