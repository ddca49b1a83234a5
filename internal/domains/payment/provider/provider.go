package provider

//go:generate go run go.uber.org/mock/mockgen -source=./provider.go -destination=./mocks/provider_mock.go -package=mocks

import (
	"context"
	"errors"
	"net/http"
	"time"

	"innkeeper/config"
	"innkeeper/internal/domains/payment/model"
)

var ErrUnknownProvider = errors.New("unknown payment provider")

const requestTimeout = 15 * time.Second

// InitRequest carries everything a provider needs to open a checkout session.
// Amount is in minor units (kobo, cents).
type InitRequest struct {
	Reference   string
	Amount      int64
	Currency    string
	Email       string
	CallbackURL string
}

type InitResult struct {
	Reference   string
	CheckoutURL string
}

type VerifyResult struct {
	Reference string
	Succeeded bool
	Amount    int64
	Currency  string
}

// Client is one payment provider's HTTP API.
type Client interface {
	Initialize(ctx context.Context, req InitRequest) (InitResult, error)
	Verify(ctx context.Context, reference string) (VerifyResult, error)
}

// Registry resolves a provider name from the payments table to its client.
type Registry map[string]Client

func NewRegistry(cfg *config.Config) Registry {
	httpClient := &http.Client{Timeout: requestTimeout}

	return Registry{
		model.ProviderPaystack:    NewPaystack(cfg, httpClient),
		model.ProviderFlutterwave: NewFlutterwave(cfg, httpClient),
		model.ProviderStripe:      NewStripe(cfg, httpClient),
	}
}

func (r Registry) For(name string) (Client, error) {
	client, ok := r[name]
	if !ok {
		return nil, ErrUnknownProvider
	}

	return client, nil
}
