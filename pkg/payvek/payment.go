package payvek

import (
	"context"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// OpenPaymentOpts are the optional payment/open fields. Zero values are
// omitted from the request. Extra carries fields this client does not know
// about yet; they are passed through verbatim in sorted key order.
type OpenPaymentOpts struct {
	PaymentID          string
	LocationID         string
	Items              []map[string]any
	Email              string
	SuccessURL         string
	FailURL            string
	BackURL            string
	SuccessURLCallback string
	FailURLCallback    string
	StatusURLCallback  string
	Description        string
	Language           string
	GeneratePDF        bool
	ClientFields       map[string]string
	Extra              map[string]any
}

func (o *OpenPaymentOpts) appendTo(body *requestBody) {
	if o == nil {
		return
	}

	body.setIfNotEmpty("payment_id", o.PaymentID)
	body.setIfNotEmpty("location_id", o.LocationID)

	if len(o.Items) > 0 {
		body.set("items", o.Items)
	}

	body.setIfNotEmpty("email", o.Email)
	body.setIfNotEmpty("success_url", o.SuccessURL)
	body.setIfNotEmpty("fail_url", o.FailURL)
	body.setIfNotEmpty("back_url", o.BackURL)
	body.setIfNotEmpty("success_url_callback", o.SuccessURLCallback)
	body.setIfNotEmpty("fail_url_callback", o.FailURLCallback)
	body.setIfNotEmpty("status_url_callback", o.StatusURLCallback)
	body.setIfNotEmpty("description", o.Description)
	body.setIfNotEmpty("language", o.Language)

	if o.GeneratePDF {
		body.set("generate_pdf", true)
	}

	if len(o.ClientFields) > 0 {
		body.set("client_fields", o.ClientFields)
	}

	body.setExtra(o.Extra)
}

// GetPayment fetches the current state of a payment.
func (c *Client) GetPayment(ctx context.Context, paymentCode string) (*Response, error) {
	body := newBody().set("payment_code", paymentCode)

	return c.call(ctx, "payment/get", body)
}

// OpenPayment creates a payment for dstAmount under the given profile.
func (c *Client) OpenPayment(ctx context.Context, profileCode, dstAmount string, opts *OpenPaymentOpts) (*Response, error) {
	body := newBody().
		set("profile_code", profileCode).
		set("dst_amount", dstAmount)

	opts.appendTo(body)

	return c.call(ctx, "payment/open", body)
}

// OpenPaymentURL opens a payment and returns just the generated checkout URL.
// A response without data.payment_url is an error, never an empty string.
func (c *Client) OpenPaymentURL(ctx context.Context, profileCode, dstAmount string, opts *OpenPaymentOpts) (string, error) {
	res, err := c.OpenPayment(ctx, profileCode, dstAmount, opts)
	if err != nil {
		return "", err
	}

	url := res.Get("data.payment_url")
	if url.Type != gjson.String || url.Str == "" {
		return "", errors.Wrap(ErrMalformedResponse, "payment_url is missing")
	}

	return url.Str, nil
}

// UpdatePaymentOpts are the optional payment/update fields.
type UpdatePaymentOpts struct {
	SrcProtocol string
	Extra       map[string]any
}

// UpdatePayment sets the currency the customer pays with.
func (c *Client) UpdatePayment(ctx context.Context, paymentCode, srcCurrency string, opts *UpdatePaymentOpts) (*Response, error) {
	body := newBody().
		set("payment_code", paymentCode).
		set("src_currency", srcCurrency)

	if opts != nil {
		body.setIfNotEmpty("src_protocol", opts.SrcProtocol)
		body.setExtra(opts.Extra)
	}

	return c.call(ctx, "payment/update", body)
}

// CancelPayment cancels a payment that was not paid yet.
func (c *Client) CancelPayment(ctx context.Context, paymentCode string) (*Response, error) {
	body := newBody().set("payment_code", paymentCode)

	return c.call(ctx, "payment/cancel", body)
}
