package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goodenergy/platform/internal/model"
	"github.com/goodenergy/platform/internal/service"
)

// internalErrorMessage is the generic message for unexpected failures.
const internalErrorMessage = "Error interno del servidor. Intenta nuevamente."

// CapacityManager is the slice of the reservation service the handler
// needs.  Tests substitute fakes for it.
type CapacityManager interface {
	Reserve(ctx context.Context, req service.ReserveRequest) (*service.ReserveResult, error)
	Availability(ctx context.Context) (model.CapacitySnapshot, error)
}

// ConferenceHandler exposes the conference reservation write and read
// paths.  All capacity and uniqueness decisions live in the service;
// the handler only binds JSON and translates errors into HTTP status
// codes: 400 for validation, 409 for capacity/duplicate, 500 otherwise.
type ConferenceHandler struct {
	Manager CapacityManager
}

// NewConferenceHandler constructs a ConferenceHandler.
func NewConferenceHandler(m CapacityManager) *ConferenceHandler {
	if m == nil {
		panic("nil capacity manager passed to NewConferenceHandler")
	}
	return &ConferenceHandler{Manager: m}
}

// Reserve handles POST /v1/conference/reserve.  On success it returns
// the new reservation ID together with the remaining seat count and
// the total number of reservations.
func (h *ConferenceHandler) Reserve(c echo.Context) error {
	var req service.ReserveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Solicitud inválida",
		})
	}
	result, err := h.Manager.Reserve(c.Request().Context(), req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": verr.Message})
		case errors.Is(err, service.ErrCapacityExceeded), errors.Is(err, service.ErrDuplicateEmail):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": err.Error()})
		default:
			c.Logger().Errorf("conference reservation failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": internalErrorMessage})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    result,
	})
}

// Availability handles GET /v1/conference/reserve.  It returns the
// current capacity snapshot and only fails on store errors.
func (h *ConferenceHandler) Availability(c echo.Context) error {
	snap, err := h.Manager.Availability(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("seat availability failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": internalErrorMessage})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    snap,
	})
}
