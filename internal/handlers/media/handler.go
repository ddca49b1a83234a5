package media

import (
	"net/http"

	"innkeeper/infras/otel"
	"innkeeper/internal/domains/media/model"
	"innkeeper/internal/domains/media/model/dto"
	"innkeeper/internal/domains/media/service"
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
	service  service.Media
	otel     otel.Otel
	authRole middleware.AuthRole
}

func New(service service.Media, otel otel.Otel, authRole middleware.AuthRole) Handler {
	return Handler{
		service:  service,
		otel:     otel,
		authRole: authRole,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/media", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMedia)
		routerGroup.Get("/{id}", handler.GetMediaByID)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(handler.authRole.Auth)
			protected.Use(handler.authRole.RequireScope(permissions.ScopeOwner))

			protected.Post("/", handler.UploadMedia)
			protected.Delete("/{id}", handler.DeleteMedia)
		})
	})
}

// UploadMedia handles uploading a gallery image.
// @Summary Upload a media file
// @Description Upload a hotel or room gallery image.
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param hotel_id formData string true "Hotel ID"
// @Param room_id formData string false "Room ID for room-level media"
// @Param caption formData string false "Caption"
// @Param file formData file true "Image file"
// @Success 201 {object} response.Data[dto.MediaResponse] "Media uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media [post]
// @Security BearerAuth
func (handler *Handler) UploadMedia(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadMedia")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, err)

		return
	}

	req := dto.UploadMediaRequest{
		HotelID: request.FormValue(model.FieldHotelID),
		Caption: request.FormValue("caption"),
	}

	if roomID := request.FormValue(model.FieldRoomID); roomID != "" {
		req.RoomID = &roomID
	}

	file, fileHeader, err := request.FormFile(constant.FormFile)
	if err == nil {
		req.File = fileHeader
		req.Reader = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload media")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Media uploaded successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetMedia retrieves media items based on query parameters.
// @Summary Get all media
// @Description Retrieve media items with optional filtering and pagination.
// @Tags Media
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotel_id query string false "Filter by hotel"
// @Param room_id query string false "Filter by room"
// @Success 200 {object} response.Data[dto.GetMediaResponse] "List of media"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media [get]
func (handler *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMedia")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	hotelID := r.URL.Query().Get(model.FieldHotelID)
	roomID := r.URL.Query().Get(model.FieldRoomID)

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

	if roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	media, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get media")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Media retrieved successfully")

	response.WithJSON(w, http.StatusOK, media)
}

// GetMediaByID retrieves a media item by its ID.
// @Summary Get a media item by ID
// @Description Retrieve a media item by its unique identifier.
// @Tags Media
// @Accept json
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} response.Data[dto.MediaResponse] "Media details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/{id} [get]
func (handler *Handler) GetMediaByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMediaByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	media, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get media by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Media retrieved successfully")

	response.WithJSON(w, http.StatusOK, media)
}

// DeleteMedia handles the deletion of a media item.
// @Summary Delete a media item
// @Description Delete a media item and its stored object.
// @Tags Media
// @Accept json
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} response.Message "Media deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMedia")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete media")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Media deleted successfully")

	response.WithMessage(w, http.StatusOK, "Media deleted successfully")
}
