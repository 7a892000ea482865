package payvek

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureClient records the endpoint and raw body of the last request and
// replies with the given payload.
func captureClient(t *testing.T, reply string, path, body *string) *Client {
	t.Helper()

	return testClient(t, func(t *testing.T, writer http.ResponseWriter, request *http.Request) {
		raw, err := io.ReadAll(request.Body)
		require.NoError(t, err)

		*path = request.URL.Path
		*body = string(raw)

		_, _ = writer.Write([]byte(reply))
	})
}

func TestPaymentOperations(t *testing.T) {
	ctx := context.Background()

	var path, body string

	t.Run("GetPayment", func(t *testing.T) {
		client := captureClient(t, `{"status":0}`, &path, &body)

		_, err := client.GetPayment(ctx, "X")
		require.NoError(t, err)

		assert.Equal(t, "/processing/api/payment/get", path)
		assert.Equal(t, `{"payment_code":"X"}`, body)
	})

	t.Run("OpenPayment with options", func(t *testing.T) {
		client := captureClient(t, `{"status":0}`, &path, &body)

		_, err := client.OpenPayment(ctx, "P1", "10", &OpenPaymentOpts{
			Email:       "buyer@example.com",
			Language:    "hr",
			GeneratePDF: true,
			Extra:       map[string]any{"future_field": "yes"},
		})
		require.NoError(t, err)

		assert.Equal(t, "/processing/api/payment/open", path)
		assert.Equal(t,
			`{"profile_code":"P1","dst_amount":"10","email":"buyer@example.com","language":"hr","generate_pdf":true,"future_field":"yes"}`,
			body,
		)
	})

	t.Run("OpenPayment without options", func(t *testing.T) {
		client := captureClient(t, `{"status":0}`, &path, &body)

		_, err := client.OpenPayment(ctx, "P1", "10", nil)
		require.NoError(t, err)

		assert.Equal(t, `{"profile_code":"P1","dst_amount":"10"}`, body)
	})

	t.Run("UpdatePayment", func(t *testing.T) {
		client := captureClient(t, `{"status":0}`, &path, &body)

		_, err := client.UpdatePayment(ctx, "X", "BTC", &UpdatePaymentOpts{SrcProtocol: "LN"})
		require.NoError(t, err)

		assert.Equal(t, "/processing/api/payment/update", path)
		assert.Equal(t, `{"payment_code":"X","src_currency":"BTC","src_protocol":"LN"}`, body)
	})

	t.Run("CancelPayment", func(t *testing.T) {
		client := captureClient(t, `{"status":0}`, &path, &body)

		_, err := client.CancelPayment(ctx, "X")
		require.NoError(t, err)

		assert.Equal(t, "/processing/api/payment/cancel", path)
		assert.Equal(t, `{"payment_code":"X"}`, body)
	})
}

func TestOpenPaymentURL(t *testing.T) {
	ctx := context.Background()

	var path, body string

	t.Run("Returns the generated URL", func(t *testing.T) {
		client := captureClient(t, `{"data":{"payment_url":"https://pay.payvek.com/p/abc"}}`, &path, &body)

		url, err := client.OpenPaymentURL(ctx, "P1", "10", nil)
		require.NoError(t, err)
		assert.Equal(t, "https://pay.payvek.com/p/abc", url)
	})

	t.Run("Errors when payment_url is missing", func(t *testing.T) {
		for _, reply := range []string{
			`{"data":{}}`,
			`{"data":{"payment_url":""}}`,
			`{"data":{"payment_url":42}}`,
			`{}`,
		} {
			client := captureClient(t, reply, &path, &body)

			_, err := client.OpenPaymentURL(ctx, "P1", "10", nil)
			assert.ErrorIs(t, err, ErrMalformedResponse, reply)
		}
	})

	t.Run("Propagates call errors", func(t *testing.T) {
		client := testClient(t, func(t *testing.T, writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusBadRequest)
		})

		_, err := client.OpenPaymentURL(ctx, "P1", "10", nil)
		assert.ErrorIs(t, err, ErrResponse)
	})
}
