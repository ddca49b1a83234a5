package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"innkeeper/config"
	"innkeeper/shared/constant"
)

const minorUnitsPerMajor = 100

type flutterwave struct {
	cfg    *config.Config
	client *http.Client
}

func NewFlutterwave(cfg *config.Config, client *http.Client) Client {
	return &flutterwave{cfg: cfg, client: client}
}

// Flutterwave amounts are in major units, unlike the rest of the system.
type flutterwaveInitPayload struct {
	TxRef       string  `json:"tx_ref"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	RedirectURL string  `json:"redirect_url"`
	Customer    struct {
		Email string `json:"email"`
	} `json:"customer"`
}

type flutterwaveInitResponse struct {
	Status string `json:"status"`
	Data   struct {
		Link string `json:"link"`
	} `json:"data"`
}

type flutterwaveVerifyResponse struct {
	Status string `json:"status"`
	Data   struct {
		Status   string  `json:"status"`
		TxRef    string  `json:"tx_ref"`
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
	} `json:"data"`
}

func (f *flutterwave) Initialize(ctx context.Context, req InitRequest) (InitResult, error) {
	payload := flutterwaveInitPayload{
		TxRef:       req.Reference,
		Amount:      float64(req.Amount) / minorUnitsPerMajor,
		Currency:    req.Currency,
		RedirectURL: req.CallbackURL,
	}
	payload.Customer.Email = req.Email

	body, err := json.Marshal(payload)
	if err != nil {
		return InitResult{}, fmt.Errorf("failed to marshal flutterwave payload: %w", err)
	}

	var res flutterwaveInitResponse
	if err := f.do(ctx, http.MethodPost, "/payments", bytes.NewReader(body), &res); err != nil {
		return InitResult{}, err
	}

	if res.Status != "success" {
		return InitResult{}, fmt.Errorf("flutterwave rejected transaction %s", req.Reference)
	}

	return InitResult{
		Reference:   req.Reference,
		CheckoutURL: res.Data.Link,
	}, nil
}

func (f *flutterwave) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	path := "/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(reference)

	var res flutterwaveVerifyResponse
	if err := f.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return VerifyResult{}, err
	}

	return VerifyResult{
		Reference: res.Data.TxRef,
		Succeeded: res.Status == "success" && res.Data.Status == "successful",
		Amount:    int64(res.Data.Amount * minorUnitsPerMajor),
		Currency:  res.Data.Currency,
	}, nil
}

func (f *flutterwave) do(ctx context.Context, method, path string, body *bytes.Reader, out any) error {
	endpoint := f.cfg.External.Payment.Flutterwave.BaseURL + path

	var request *http.Request

	var err error

	if body != nil {
		request, err = http.NewRequestWithContext(ctx, method, endpoint, body)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}

	if err != nil {
		return fmt.Errorf("failed to build flutterwave request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+f.cfg.External.Payment.Flutterwave.SecretKey)

	response, err := f.client.Do(request)
	if err != nil {
		return fmt.Errorf("flutterwave request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("flutterwave returned status %d", response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode flutterwave response: %w", err)
	}

	return nil
}
