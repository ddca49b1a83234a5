package ops

import (
	"net/http"

	"innkeeper/config"
	"innkeeper/infras/otel"
	"innkeeper/internal/domains/booking/service"
	"innkeeper/shared/constant"
	"innkeeper/shared/failure"
	"innkeeper/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Handler exposes internal maintenance endpoints. They are reachable with the
// service API key only, never with a user token.
type Handler struct {
	bookingService service.Booking
	cfg            *config.Config
	otel           otel.Otel
}

func New(bookingService service.Booking, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		bookingService: bookingService,
		cfg:            cfg,
		otel:           otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/internal", func(routerGroup chi.Router) {
		routerGroup.Post("/expire-holds", handler.ExpireHolds)
	})
}

// ExpireHolds releases rooms held by pending bookings whose hold window has
// lapsed. The sweeper binary calls this on an interval; it is also safe to
// trigger by hand since expiry is idempotent.
// @Summary Expire lapsed booking holds
// @Description Expire all pending bookings whose hold window has lapsed, releasing their rooms.
// @Tags Internal
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Service API key"
// @Success 200 {object} response.Data[int] "Number of holds expired"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/internal/expire-holds [post]
func (handler *Handler) ExpireHolds(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExpireHolds")
	defer scope.End()

	apiKey := r.Header.Get(constant.RequestHeaderAPIKey)
	if apiKey == "" || apiKey != handler.cfg.App.APIKey {
		err := failure.ForbiddenError
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	expired, err := handler.bookingService.ExpireHolds(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to expire holds")

		response.WithError(w, err)

		return
	}

	scope.SetAttribute("holds.expired", expired)
	scope.AddEvent("Expired holds swept successfully")

	response.WithJSON(w, http.StatusOK, expired)
}
