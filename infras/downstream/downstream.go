// Package downstream posts issued credentials to the internal gate system.
package downstream

//go:generate go run go.uber.org/mock/mockgen -source=./downstream.go -destination=./mocks/downstream_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"rendezvous/config"
	"rendezvous/infras/otel"
	"rendezvous/shared/constant"
	"strings"
	"time"
)

// ReceivePath is the endpoint accepting credential payloads.
const ReceivePath = "/qr-codes/receive"

// StatusError reports a reply other than 201 Created.
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s answered %d: %s", e.URL, e.Status, e.Body)
}

type Client interface {
	Send(ctx context.Context, body any) error
	URL() string
}

type clientImpl struct {
	http *http.Client
	url  string
	otel otel.Otel
}

// New returns a client bounded by the configured timeout.
func New(cfg *config.Config, otel otel.Otel) Client {
	timeout := time.Duration(cfg.External.Downstream.TimeoutSeconds) * time.Second

	return NewWithHTTPClient(&http.Client{Timeout: timeout}, cfg.External.Downstream.BaseURL, otel)
}

func NewWithHTTPClient(httpClient *http.Client, baseURL string, otel otel.Otel) Client {
	return &clientImpl{
		http: httpClient,
		url:  strings.TrimRight(baseURL, "/") + ReceivePath,
		otel: otel,
	}
}

func (c *clientImpl) URL() string {
	return c.url
}

// Send posts body as JSON. Only 201 counts as delivered.
func (c *clientImpl) Send(ctx context.Context, body any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".downstream.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("http.url", c.url)

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode downstream payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build downstream request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("failed to reach downstream: %w", err)
	}
	defer response.Body.Close()

	scope.SetAttribute("http.status_code", response.StatusCode)

	if response.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, 512))

		return &StatusError{URL: c.url, Status: response.StatusCode, Body: string(snippet)}
	}

	return nil
}
