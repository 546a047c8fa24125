package admin

import (
	"net/http"
	"rendezvous/infras/otel"
	"rendezvous/internal/domains/booking/model"
	"rendezvous/internal/domains/booking/model/dto"
	"rendezvous/internal/domains/booking/service"
	"rendezvous/shared/constant"
	"rendezvous/shared/failure"
	"rendezvous/shared/validator"
	"rendezvous/transport/http/response"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

var bulkActions = []model.Action{model.ActionValidate, model.ActionCancel, model.ActionComplete}

// Handler serves staff maintenance endpoints.
type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Post("/bookings/{action}", handler.BulkTransition)
		routerGroup.Post("/credentials/regenerate", handler.RegenerateCredentials)
	})
}

// BulkTransition applies one action to many bookings.
// @Summary Bulk status change
// @Description Bookings whose status does not allow the action are left untouched and not counted.
// @Tags Admin
// @Accept json
// @Produce json
// @Param action path string true "validate, cancel or complete"
// @Param request body dto.BulkTransitionRequest true "Booking IDs"
// @Success 200 {object} response.Data[dto.BulkTransitionResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{action} [post]
// @Security BearerAuth
func (handler *Handler) BulkTransition(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BulkTransition")
	defer scope.End()

	action := chi.URLParam(request, constant.RequestParamAction)
	if !slices.Contains(bulkActions, model.Action(action)) {
		err := failure.BadRequestFromString("action must be one of validate cancel complete")
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	req := dto.BulkTransitionRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.BulkTransition(ctx, model.Action(action), req.IDs)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("action", action).Msg("failed to bulk transition bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// RegenerateCredentials runs the credential sweep.
// @Summary Regenerate missing credentials
// @Description Issues a credential for every booking whose image is missing or absent from storage.
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[credDto.RegenerateResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/credentials/regenerate [post]
// @Security BearerAuth
func (handler *Handler) RegenerateCredentials(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegenerateCredentials")
	defer scope.End()

	res, err := handler.service.RegenerateCredentials(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to regenerate credentials")

		response.WithError(writer, err)

		return
	}

	log.Info().Int("scanned", res.Scanned).Int("regenerated", res.Regenerated).Int("failed", res.Failed).Msg("credential sweep finished")

	response.WithJSON(writer, http.StatusOK, res)
}
