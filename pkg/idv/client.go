// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package idv

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/paywell/kycgate"
	"github.com/paywell/kycgate/pkg/client"
	"github.com/paywell/kycgate/pkg/config"
	"github.com/paywell/kycgate/x/trace"

	"github.com/go-kit/kit/log"
	"github.com/moov-io/base"
	opentracing "github.com/opentracing/opentracing-go"
)

// Client verifies consumers, documents, devices and transactions with the
// identity/risk provider and maps its answers onto kycgate's statuses.
type Client interface {
	VerifyConsumer(ctx context.Context, sessionKey string, consumer *client.Consumer) (*client.ConsumerVerificationResult, error)
	VerifyTransaction(ctx context.Context, sessionKey string, consumer *client.Consumer, xfer *client.TransactionVerification) (*client.ConsumerVerificationResult, error)

	SubmitDocument(ctx context.Context, sessionKey string, upload *client.DocumentUpload) (string, error)
	DocumentVerificationResult(ctx context.Context, verificationID string) (*client.DocumentVerificationResult, error)

	DeviceRisk(ctx context.Context, sessionKey string) (*client.DeviceRisk, error)

	// Feedback calls are advisory. They never fail from the caller's point of view.
	ConsumerFeedback(ctx context.Context, sessionKey, consumerID string, status client.FeedbackStatus)
	DocumentFeedback(ctx context.Context, verificationID string, status client.FeedbackStatus)
	TransactionFeedback(ctx context.Context, sessionKey, transactionID string, status client.FeedbackStatus)
}

type provider struct {
	endpoint     string
	clientID     string
	clientSecret string

	httpClient *http.Client
	logger     log.Logger
}

// NewClient returns a Client for the provider described by cfg. If httpClient
// is nil a client bounded by cfg.Timeout is used.
func NewClient(logger log.Logger, cfg config.Provider, httpClient *http.Client) Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = config.DefaultProviderTimeout
		}
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger.Log("idv", fmt.Sprintf("using %s for identity verification provider", cfg.Endpoint))

	return &provider{
		endpoint:     cfg.Endpoint,
		clientID:     cfg.ClientID,
		clientSecret: cfg.Secret(),
		httpClient:   httpClient,
		logger:       logger,
	}
}

type requestIDKey struct{}

// WithRequestID attaches a request ID which is forwarded to the provider as
// X-Request-Id. Calls without one get a fresh ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok && v != "" {
		return v
	}
	return base.ID()
}

func sessionKeyOrNew(sessionKey string) string {
	if strings.TrimSpace(sessionKey) == "" {
		return base.ID()
	}
	return sessionKey
}

func (c *provider) addRequestHeaders(ctx context.Context, req *http.Request) {
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("User-Agent", fmt.Sprintf("kycgate/%s", kycgate.Version))
	req.Header.Set("X-Request-Id", requestID(ctx))
	req.Header.Set("Accept", "application/json")
}

// do sends one request to the provider. The caller owns the response body.
func (c *provider) do(ctx context.Context, operation, method, relPath, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.buildAddress(relPath), body)
	if err != nil {
		return nil, fmt.Errorf("idv %s: building request: %v", operation, err)
	}
	req = req.WithContext(ctx)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.addRequestHeaders(ctx, req)

	span, _ := opentracing.StartSpanFromContext(ctx, "idv-"+operation)
	defer span.Finish()
	req = trace.DecorateHttpRequest(req, span)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	providerDuration.With("operation", operation).Observe(time.Since(start).Seconds())
	if err != nil {
		trackError(operation, 0)
		return nil, fmt.Errorf("idv %s: %v", operation, err)
	}
	return resp, nil
}

func (c *provider) postJSON(ctx context.Context, operation, relPath string, body interface{}) (*http.Response, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("idv %s: json encoding: %v", operation, err)
	}
	return c.do(ctx, operation, "POST", relPath, "application/json", &buf)
}

// checkResponse classifies non-2xx responses. It consumes the body of
// unsuccessful responses.
func (c *provider) checkResponse(operation string, resp *http.Response) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	trackError(operation, resp.StatusCode)

	bs, _ := ioutil.ReadAll(io.LimitReader(resp.Body, 1<<20))
	switch resp.StatusCode {
	case http.StatusUnprocessableEntity:
		return &ValidationError{Operation: operation, Body: bs}
	case http.StatusNotFound:
		return ErrNotFound
	}
	return &ProviderError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Body:       bs,
	}
}

func decodeResponse(operation string, resp *http.Response, into interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("idv %s: problem reading response: %v", operation, err)
	}
	return nil
}

// buildAddress takes c.endpoint's path and joins it with p to use
// as the full URL for an http.Client request.
func (c *provider) buildAddress(p string) string {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return ""
	}
	if u.Scheme == "" {
		c.logger.Log("idv", fmt.Sprintf("invalid endpoint=%s", u.String()))
		return ""
	}
	rel, err := url.Parse(p)
	if err != nil {
		return ""
	}
	u.Path = path.Join(u.Path, rel.Path)
	u.RawQuery = rel.RawQuery
	return u.String()
}
