package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"innkeeper/config"
	"innkeeper/shared/constant"
)

type paystack struct {
	cfg    *config.Config
	client *http.Client
}

func NewPaystack(cfg *config.Config, client *http.Client) Client {
	return &paystack{cfg: cfg, client: client}
}

type paystackInitPayload struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
	CallbackURL string `json:"callback_url"`
}

type paystackInitResponse struct {
	Status bool `json:"status"`
	Data   struct {
		AuthorizationURL string `json:"authorization_url"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackVerifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
	} `json:"data"`
}

func (p *paystack) Initialize(ctx context.Context, req InitRequest) (InitResult, error) {
	payload, err := json.Marshal(paystackInitPayload{
		Email:       req.Email,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Reference:   req.Reference,
		CallbackURL: req.CallbackURL,
	})
	if err != nil {
		return InitResult{}, fmt.Errorf("failed to marshal paystack payload: %w", err)
	}

	var res paystackInitResponse
	if err := p.do(ctx, http.MethodPost, "/transaction/initialize", bytes.NewReader(payload), &res); err != nil {
		return InitResult{}, err
	}

	if !res.Status {
		return InitResult{}, fmt.Errorf("paystack rejected transaction %s", req.Reference)
	}

	return InitResult{
		Reference:   res.Data.Reference,
		CheckoutURL: res.Data.AuthorizationURL,
	}, nil
}

func (p *paystack) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	var res paystackVerifyResponse
	if err := p.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &res); err != nil {
		return VerifyResult{}, err
	}

	return VerifyResult{
		Reference: res.Data.Reference,
		Succeeded: res.Status && res.Data.Status == "success",
		Amount:    res.Data.Amount,
		Currency:  res.Data.Currency,
	}, nil
}

func (p *paystack) do(ctx context.Context, method, path string, body *bytes.Reader, out any) error {
	url := p.cfg.External.Payment.Paystack.BaseURL + path

	var request *http.Request

	var err error

	if body != nil {
		request, err = http.NewRequestWithContext(ctx, method, url, body)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, url, nil)
	}

	if err != nil {
		return fmt.Errorf("failed to build paystack request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+p.cfg.External.Payment.Paystack.SecretKey)

	response, err := p.client.Do(request)
	if err != nil {
		return fmt.Errorf("paystack request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("paystack returned status %d", response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode paystack response: %w", err)
	}

	return nil
}
