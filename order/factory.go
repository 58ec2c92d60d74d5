package order

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// FulfillFailedErr is returned when the factory reports it could not
// fulfill an order. The locally persisted order record is not rolled back.
var FulfillFailedErr = errors.New("Failed to fulfill order at factory")

// Diner identifies the purchaser to the factory.
type Diner struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Fulfillment is the factory's response to an accepted order: a verifiable
// pizza JWT plus a report page for the purchase.
type Fulfillment struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

// Factory fulfills orders at the external pizza factory.
type Factory interface {
	// Fulfill submits the order for production. On factory rejection it
	// returns FulfillFailedErr together with whatever report URL the
	// factory provided.
	Fulfill(ctx context.Context, diner Diner, o *Order) (*Fulfillment, error)
}

// HTTPFactory calls the factory service over HTTP.
type HTTPFactory struct {
	url    string
	apiKey string
	client *http.Client
	logger zerolog.Logger
}

var _ Factory = (*HTTPFactory)(nil)

// HTTPFactoryOption defines a function type to modify the HTTPFactory instance.
type HTTPFactoryOption func(*HTTPFactory)

// WithHTTPClient sets the underlying HTTP client (primarily for testing)
func WithHTTPClient(client *http.Client) HTTPFactoryOption {
	return func(f *HTTPFactory) {
		f.client = client
	}
}

// WithLogger sets the logger used for factory call logging
func WithLogger(logger zerolog.Logger) HTTPFactoryOption {
	return func(f *HTTPFactory) {
		f.logger = logger
	}
}

// NewHTTPFactory creates a factory client for the given endpoint.
func NewHTTPFactory(url, apiKey string, options ...HTTPFactoryOption) (*HTTPFactory, error) {
	if url == "" {
		return nil, errors.New("[NewHTTPFactory] factory url is required")
	}
	factory := &HTTPFactory{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(factory)
	}
	return factory, nil
}

func (f *HTTPFactory) Fulfill(ctx context.Context, diner Diner, o *Order) (*Fulfillment, error) {
	payload, err := json.Marshal(map[string]any{
		"diner": diner,
		"order": o,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPFactory.Fulfill] marshal order")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url+"/api/order", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPFactory.Fulfill] build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPFactory.Fulfill] factory call")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "[HTTPFactory.Fulfill] read response")
	}

	var fulfillment Fulfillment
	if err := json.Unmarshal(body, &fulfillment); err != nil && resp.StatusCode < 300 {
		return nil, errors.Wrap(err, "[HTTPFactory.Fulfill] decode response")
	}

	f.logger.Info().
		Str("type", "factory").
		Str("operation", "fulfill").
		Int("statusCode", resp.StatusCode).
		Int("orderId", o.ID).
		Msg("Factory service call")

	if resp.StatusCode >= 300 {
		return &fulfillment, FulfillFailedErr
	}
	return &fulfillment, nil
}
