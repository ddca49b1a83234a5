package payment

import (
	"net/http"

	"innkeeper/infras/otel"
	"innkeeper/internal/domains/payment/model"
	"innkeeper/internal/domains/payment/model/dto"
	"innkeeper/internal/domains/payment/service"
	"innkeeper/permissions"
	"innkeeper/shared/constant"
	gDto "innkeeper/shared/dto"
	"innkeeper/shared/failure"
	"innkeeper/shared/validator"
	"innkeeper/transport/http/middleware"
	"innkeeper/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Payment
	otel     otel.Otel
	authRole middleware.AuthRole
}

func New(service service.Payment, otel otel.Otel, authRole middleware.AuthRole) Handler {
	return Handler{
		service:  service,
		otel:     otel,
		authRole: authRole,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Post("/initiate", handler.InitiatePayment)
		routerGroup.Get("/callback/{provider}", handler.PaymentCallback)
		routerGroup.Post("/webhook/{provider}", handler.PaymentWebhook)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.authRole.Auth)
			protected.Use(handler.authRole.RequireScope(permissions.ScopeAccounting))

			protected.Get("/", handler.GetPayments)
			protected.Get("/{id}", handler.GetPaymentByID)
		})
	})
}

// InitiatePayment starts a checkout session for a pending booking.
// @Summary Initiate a payment
// @Description Initiate a payment for a pending booking with the chosen provider. Returns the checkout URL to redirect the guest to.
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.InitiatePaymentRequest true "Initiate Payment Request"
// @Success 201 {object} response.Data[dto.InitiatePaymentResponse] "Checkout session created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/initiate [post]
func (handler *Handler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".InitiatePayment")
	defer scope.End()

	req := dto.InitiatePaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Initiate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to initiate payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment initiated successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// PaymentCallback handles the provider redirect after checkout.
// @Summary Payment provider callback
// @Description Handle the provider redirect after checkout. The payment status is re-verified against the provider's API, never trusted from the redirect.
// @Tags Payment
// @Accept json
// @Produce json
// @Param provider path string true "Payment provider (paystack, flutterwave, stripe)"
// @Param reference query string true "Payment reference"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment state after verification"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/callback/{provider} [get]
func (handler *Handler) PaymentCallback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentCallback")
	defer scope.End()

	providerName := chi.URLParam(r, constant.RequestParamProvider)
	reference := r.URL.Query().Get(model.FieldReference)

	if reference == "" {
		err := failure.BadRequestFromString("reference is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.HandleCallback(ctx, providerName, dto.CallbackRequest{Reference: reference})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle payment callback")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment callback handled successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// PaymentWebhook handles asynchronous provider notifications.
// @Summary Payment provider webhook
// @Description Handle a provider webhook notification. Verification is identical to the redirect callback, so a replayed or spoofed payload cannot flip a payment without the provider confirming it.
// @Tags Payment
// @Accept json
// @Produce json
// @Param provider path string true "Payment provider (paystack, flutterwave, stripe)"
// @Param request body dto.CallbackRequest true "Webhook payload"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment state after verification"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/webhook/{provider} [post]
func (handler *Handler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PaymentWebhook")
	defer scope.End()

	providerName := chi.URLParam(r, constant.RequestParamProvider)

	req := dto.CallbackRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.HandleCallback(ctx, providerName, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle payment webhook")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment webhook handled successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetPayments retrieves all payments based on query parameters.
// @Summary Get all payments
// @Description Retrieve all payments with optional filtering and pagination.
// @Tags Payment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel"
// @Param booking_id query string false "Filter by booking"
// @Param provider query string false "Filter by provider"
// @Param status query string false "Filter by status (initiated, succeeded, failed)"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "List of payments"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	hotelID := r.URL.Query().Get(model.FieldHotelID)
	bookingID := r.URL.Query().Get(model.FieldBookingID)
	providerName := r.URL.Query().Get(model.FieldProvider)
	status := r.URL.Query().Get(model.FieldStatus)

	// Hotel-scoped principals are confined to their own hotel's payments.
	if principal := permissions.FromContext(ctx); principal != nil && !principal.Role.IsPlatformAdmin() {
		hotelID = principal.HotelID
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if hotelID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Operator: gDto.FilterOperatorEq,
			Value:    hotelID,
			Table:    model.TableName,
		})
	}

	if bookingID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldBookingID,
			Operator: gDto.FilterOperatorEq,
			Value:    bookingID,
			Table:    model.TableName,
		})
	}

	if providerName != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldProvider,
			Operator: gDto.FilterOperatorEq,
			Value:    providerName,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	payments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payments retrieved successfully")

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByID retrieves a payment by its ID.
// @Summary Get a payment by ID
// @Description Retrieve a payment by its unique identifier.
// @Tags Payment
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	payment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Payment retrieved successfully")

	response.WithJSON(w, http.StatusOK, payment)
}
