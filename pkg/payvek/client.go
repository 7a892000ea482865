// Package payvek is a client for the Payvek crypto payment processing API.
//
// Every request is authenticated with a SHA3-512 MAC over the credentials,
// a time-derived nonce and the exact request bytes. The same scheme verifies
// inbound callbacks, see VerifyCallback.
package payvek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

type Config struct {
	APIKey    string `yaml:"api_key" env:"PAYVEK_API_KEY" env-description:"Payvek API key identifier"`
	APISecret string `yaml:"api_secret" env:"PAYVEK_API_SECRET" env-description:"Payvek API shared secret"`
	BaseURL   string `yaml:"base_url" env:"PAYVEK_BASE_URL" env-default:"https://api.payvek.com" env-description:"Payvek API base path"`
}

const (
	HeaderKey   = "ApiKeyAuth-Key"
	HeaderNonce = "ApiKeyAuth-Nonce"
	HeaderMAC   = "ApiKeyAuth-MAC"

	apiPrefix       = "/processing/api"
	contentTypeJSON = "application/json"
)

var (
	ErrResponse          = errors.New("error response")
	ErrMalformedResponse = errors.New("malformed response")
)

// Client calls the Payvek processing API. Credentials and configuration are
// immutable after construction; a Client is safe for concurrent use.
type Client struct {
	config Config
	auth   authenticator
	client *http.Client
	logger *zerolog.Logger
}

type Opt func(c *Client)

// WithHTTPClient overrides the transport. Timeouts, proxies and the like
// belong to the provided client.
func WithHTTPClient(httpClient *http.Client) Opt {
	return func(c *Client) { c.client = httpClient }
}

func New(cfg Config, logger *zerolog.Logger, opts ...Opt) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	log := logger.With().Str("channel", "payvek_client").Logger()

	c := &Client{
		config: cfg,
		auth:   authenticator{key: cfg.APIKey, secret: cfg.APISecret},
		client: &http.Client{Timeout: time.Second * 10},
		logger: &log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Response is a successful API round trip: the status line plus the raw
// response body.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "unmarshal error")
	}

	return nil
}

// Get extracts a single field by path, e.g. "data.payment_url".
func (r *Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Body, path)
}

// APIError is returned for non-2xx responses. Body keeps the raw response
// for caller inspection; the client never retries.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("got %d response code", e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	return target == ErrResponse
}

// nonce is a freshness token, not a secret: current time in milliseconds.
func newNonce() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// call serializes body once, signs those exact bytes and POSTs them.
// Transport, HTTP-level and decode failures are surfaced as-is.
func (c *Client) call(ctx context.Context, operation string, body *requestBody) (*Response, error) {
	payload, err := body.encode()
	if err != nil {
		return nil, err
	}

	endpoint := apiPrefix + "/" + operation
	nonce := newNonce()
	digest := c.auth.computeDigest(nonce, endpoint, payload, http.MethodPost, contentTypeJSON)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "unable to create request")
	}

	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set(HeaderKey, c.config.APIKey)
	req.Header.Set(HeaderNonce, nonce)
	req.Header.Set(HeaderMAC, digest)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "response error")
	}

	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response")
	}

	c.logger.Debug().
		Str("operation", operation).
		Int("response_code", res.StatusCode).
		Msg("api call")

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &APIError{StatusCode: res.StatusCode, Body: raw}
	}

	if !gjson.ValidBytes(raw) {
		return nil, errors.Wrapf(ErrMalformedResponse, "operation %s returned invalid json", operation)
	}

	return &Response{StatusCode: res.StatusCode, Body: raw}, nil
}
