package oplog

import (
	"net/http"

	"innkeeper/infras/otel"
	"innkeeper/internal/domains/oplog/model"
	"innkeeper/internal/domains/oplog/model/dto"
	"innkeeper/internal/domains/oplog/service"
	"innkeeper/permissions"
	"innkeeper/shared/constant"
	gDto "innkeeper/shared/dto"
	"innkeeper/shared/validator"
	"innkeeper/transport/http/middleware"
	"innkeeper/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Oplog
	otel     otel.Otel
	authRole middleware.AuthRole
}

func New(service service.Oplog, otel otel.Otel, authRole middleware.AuthRole) Handler {
	return Handler{
		service:  service,
		otel:     otel,
		authRole: authRole,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/oplogs", func(routerGroup chi.Router) {
		routerGroup.Use(handler.authRole.Auth)

		routerGroup.Route("/generator", func(generator chi.Router) {
			generator.Use(handler.authRole.RequireScope(permissions.ScopeMaintenance))

			generator.Post("/", handler.AppendGeneratorLog)
			generator.Get("/", handler.GetGeneratorLogs)
		})

		routerGroup.Route("/attendance", func(attendance chi.Router) {
			// Every hotel staff role clocks itself in and out, so appends
			// need authentication only; reading the sheet is an owner view.
			attendance.Post("/", handler.AppendAttendanceLog)
			attendance.With(handler.authRole.RequireScope(permissions.ScopeOwner)).
				Get("/", handler.GetAttendanceLogs)
		})
	})
}

// AppendGeneratorLog records a generator on/off event with the fuel level.
// @Summary Append a generator log entry
// @Description Record a generator on/off event with the observed fuel level. Entries are append-only.
// @Tags Oplog
// @Accept json
// @Produce json
// @Param request body dto.CreateGeneratorLogRequest true "Generator Log Request"
// @Success 201 {object} response.Message "Generator log recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/oplogs/generator [post]
// @Security BearerAuth
func (handler *Handler) AppendGeneratorLog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AppendGeneratorLog")
	defer scope.End()

	req := dto.CreateGeneratorLogRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AppendGeneratorLog(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to append generator log")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Generator log recorded successfully")

	response.WithMessage(w, http.StatusCreated, "Generator log recorded successfully")
}

// GetGeneratorLogs retrieves generator log entries.
// @Summary Get generator logs
// @Description Retrieve generator log entries with optional filtering and pagination.
// @Tags Oplog
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel"
// @Param action query string false "Filter by action (on, off)"
// @Success 200 {object} response.Data[dto.GetGeneratorLogsResponse] "List of generator logs"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/oplogs/generator [get]
// @Security BearerAuth
func (handler *Handler) GetGeneratorLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGeneratorLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	hotelID := r.URL.Query().Get(model.FieldHotelID)
	action := r.URL.Query().Get(model.FieldAction)

	// Hotel-scoped principals read their own hotel's log only.
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
			Table:    model.GeneratorTableName,
		})
	}

	if action != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAction,
			Operator: gDto.FilterOperatorEq,
			Value:    action,
			Table:    model.GeneratorTableName,
		})
	}

	logs, err := handler.service.GetGeneratorLogs(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get generator logs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Generator logs retrieved successfully")

	response.WithJSON(w, http.StatusOK, logs)
}

// AppendAttendanceLog records a staff clock-in or clock-out event.
// @Summary Append an attendance log entry
// @Description Record a clock-in or clock-out event for the authenticated staff member. Entries are append-only.
// @Tags Oplog
// @Accept json
// @Produce json
// @Param request body dto.CreateAttendanceLogRequest true "Attendance Log Request"
// @Success 201 {object} response.Message "Attendance log recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/oplogs/attendance [post]
// @Security BearerAuth
func (handler *Handler) AppendAttendanceLog(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AppendAttendanceLog")
	defer scope.End()

	req := dto.CreateAttendanceLogRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AppendAttendanceLog(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to append attendance log")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Attendance log recorded successfully")

	response.WithMessage(w, http.StatusCreated, "Attendance log recorded successfully")
}

// GetAttendanceLogs retrieves attendance log entries.
// @Summary Get attendance logs
// @Description Retrieve attendance log entries with optional filtering and pagination.
// @Tags Oplog
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel"
// @Param user_id query string false "Filter by staff member"
// @Param kind query string false "Filter by kind (clock_in, clock_out)"
// @Success 200 {object} response.Data[dto.GetAttendanceLogsResponse] "List of attendance logs"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/oplogs/attendance [get]
// @Security BearerAuth
func (handler *Handler) GetAttendanceLogs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAttendanceLogs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	hotelID := r.URL.Query().Get(model.FieldHotelID)
	userID := r.URL.Query().Get(model.FieldUserID)
	kind := r.URL.Query().Get(model.FieldKind)

	// Hotel-scoped principals read their own hotel's sheet only.
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
			Table:    model.AttendanceTableName,
		})
	}

	if userID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    userID,
			Table:    model.AttendanceTableName,
		})
	}

	if kind != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldKind,
			Operator: gDto.FilterOperatorEq,
			Value:    kind,
			Table:    model.AttendanceTableName,
		})
	}

	logs, err := handler.service.GetAttendanceLogs(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get attendance logs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Attendance logs retrieved successfully")

	response.WithJSON(w, http.StatusOK, logs)
}
