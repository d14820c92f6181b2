package controllers

import (
	"log/slog"
	"net/http"

	"simpleevents/internal/delivery/http/helpers"
	"simpleevents/internal/domain"
)

// ListTypesSuccessResponse is the success response envelope for GET /event-types (200).
type ListTypesSuccessResponse struct {
	Data  []*domain.Term    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type TypeController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewTypeController(logger *slog.Logger, svc domain.EventService) *TypeController {
	return &TypeController{
		Logger:  logger,
		Service: svc,
	}
}

// ListTypes godoc
// @Summary List event types
// @Description Returns every term of the event-type taxonomy, including types with no events.
// @Tags event-types
// @Produce json
// @Success 200 {object} controllers.ListTypesSuccessResponse "data contains the event types"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event-types [get]
func (c *TypeController) ListTypes(w http.ResponseWriter, r *http.Request) {
	terms, err := c.Service.ListTypes(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if terms == nil {
		terms = []*domain.Term{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, terms)
}
