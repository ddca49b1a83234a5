package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"innkeeper/config"
	"innkeeper/shared/constant"
)

type stripe struct {
	cfg    *config.Config
	client *http.Client
}

func NewStripe(cfg *config.Config, client *http.Client) Client {
	return &stripe{cfg: cfg, client: client}
}

type stripeSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

// Initialize opens a checkout session. Stripe has no caller-supplied
// reference, so the session id becomes the stored payment reference.
func (s *stripe) Initialize(ctx context.Context, req InitRequest) (InitResult, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.CallbackURL)
	form.Set("cancel_url", req.CallbackURL)
	form.Set("customer_email", req.Email)
	form.Set("client_reference_id", req.Reference)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(req.Currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.Amount, 10))
	form.Set("line_items[0][price_data][product_data][name]", "Room booking "+req.Reference)

	var session stripeSession
	if err := s.do(ctx, http.MethodPost, "/checkout/sessions", strings.NewReader(form.Encode()), &session); err != nil {
		return InitResult{}, err
	}

	if session.ID == "" || session.URL == "" {
		return InitResult{}, fmt.Errorf("stripe rejected transaction %s", req.Reference)
	}

	return InitResult{
		Reference:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

func (s *stripe) Verify(ctx context.Context, reference string) (VerifyResult, error) {
	var session stripeSession
	if err := s.do(ctx, http.MethodGet, "/checkout/sessions/"+reference, nil, &session); err != nil {
		return VerifyResult{}, err
	}

	return VerifyResult{
		Reference: session.ID,
		Succeeded: session.PaymentStatus == "paid",
		Amount:    session.AmountTotal,
		Currency:  strings.ToUpper(session.Currency),
	}, nil
}

func (s *stripe) do(ctx context.Context, method, path string, body *strings.Reader, out any) error {
	endpoint := s.cfg.External.Payment.Stripe.BaseURL + path

	var request *http.Request

	var err error

	if body != nil {
		request, err = http.NewRequestWithContext(ctx, method, endpoint, body)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}

	if err != nil {
		return fmt.Errorf("failed to build stripe request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)
	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+s.cfg.External.Payment.Stripe.SecretKey)

	response, err := s.client.Do(request)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("stripe returned status %d", response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode stripe response: %w", err)
	}

	return nil
}
