package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/vlavrik/flespi-gateway/pkg/models"
)

const (
	// DefaultBaseURL is the root of the flespi gateway REST API.
	DefaultBaseURL = "https://flespi.io/gw"

	// TokenLength is the exact length of a flespi platform token.
	TokenLength = 64

	// maxErrorBodySize bounds error-envelope reads on streamed downloads.
	maxErrorBodySize = 1 << 20
)

// Client talks to the gateway REST API on behalf of one device. It is
// immutable after construction and safe for concurrent use; timeouts and TLS
// settings belong to the embedding application via the exposed resty client.
type Client struct {
	HTTP     *resty.Client
	DeviceID int64
	log      *slog.Logger
}

// Option mutates the client during construction.
type Option func(*Client)

// WithBaseURL points the client at a different gateway root, e.g. a stub
// server in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.HTTP.SetBaseURL(url) }
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New builds a client bound to one device and one token. The token must be
// exactly TokenLength characters and the device identifier non-negative;
// both are validated here so every later call can assume them well-formed.
func New(deviceID int64, token string, opts ...Option) (*Client, error) {
	if len(token) != TokenLength {
		return nil, fmt.Errorf("flespi: token must be exactly %d characters, got %d", TokenLength, len(token))
	}
	if deviceID < 0 {
		return nil, fmt.Errorf("flespi: device id must be non-negative, got %d", deviceID)
	}

	r := resty.New()
	r.SetBaseURL(DefaultBaseURL)
	r.SetHeader("Accept", "application/json")
	r.SetHeader("Authorization", "FlespiToken "+token)

	c := &Client{
		HTTP:     r,
		DeviceID: deviceID,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// devicePath builds the resource path for an endpoint scoped to this
// client's device.
func (c *Client) devicePath(endpoint string) string {
	return fmt.Sprintf("/devices/%d/%s", c.DeviceID, endpoint)
}

// get performs exactly one GET round trip and classifies the outcome. On a
// 200 the envelope's result field is decoded into out. Transport failures
// (connection, timeout, cancelled context) come back as *TransportError;
// everything the gateway actually answered is classified by status code.
func (c *Client) get(ctx context.Context, path string, filter *Filter, out any) error {
	req := c.HTTP.R().SetContext(ctx)
	if filter != nil {
		enc, err := filter.Encode()
		if err != nil {
			return fmt.Errorf("flespi: encoding filter: %w", err)
		}
		req.SetQueryParam(dataParam, enc)
	}

	resp, err := req.Get(path)
	if err != nil {
		return &TransportError{URL: path, Err: err}
	}
	return c.classify(resp, out)
}

// classify applies the gateway's status-code contract to a parsed response.
func (c *Client) classify(resp *resty.Response, out any) error {
	status := resp.StatusCode()
	url := resp.Request.URL
	if status != http.StatusOK {
		return c.classifyFailure(status, resp.Body(), url)
	}

	var env models.Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil || (env.Result == nil && len(env.Errors) == 0) {
		c.log.Warn("gateway response is not an envelope", "url", url)
		return &APIError{Kind: MalformedResponse, StatusCode: status}
	}
	if env.Result == nil {
		// A 200 carrying an errors list instead of a result.
		c.log.Warn("gateway answered 200 with an error envelope", "url", url)
		return &APIError{Kind: MalformedResponse, StatusCode: status, Reason: firstReason(env.Errors)}
	}
	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			c.log.Warn("gateway result has unexpected shape", "url", url, "err", err)
			return &APIError{Kind: MalformedResponse, StatusCode: status, Reason: err.Error()}
		}
	}
	c.log.Debug("gateway request succeeded", "url", url)
	return nil
}

// classifyFailure maps a non-200 status and its body to a typed APIError.
// Shared with the snapshot download path, which reads the body itself.
func (c *Client) classifyFailure(status int, body []byte, url string) error {
	var kind ErrorKind
	switch status {
	case http.StatusUnauthorized:
		kind = Unauthorized
	case http.StatusForbidden:
		kind = Forbidden
	case http.StatusBadRequest:
		kind = BadRequest
	default:
		c.log.Warn("gateway returned unexpected status", "url", url, "status", status)
		return &APIError{Kind: Unexpected, StatusCode: status}
	}

	reason := errorReason(body)
	c.log.Warn("gateway rejected request", "url", url, "status", status, "reason", reason)
	if kind == Unauthorized {
		c.log.Warn("the gateway did not accept the token, check it on the flespi panel")
	}
	return &APIError{Kind: kind, StatusCode: status, Reason: reason}
}

// errorReason pulls the first reason string out of an error envelope.
// Bodies that are not an envelope yield an empty reason, never an error.
func errorReason(body []byte) string {
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	return firstReason(env.Errors)
}

func firstReason(errs []models.APIErrorDetail) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0].Reason
}
