package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goodenergy/platform/internal/simulator"
)

// SimulatorHandler exposes the investment projection calculator.  The
// calculation is a pure function; the handler only validates input and
// shapes the response envelope.
type SimulatorHandler struct{}

// Simulate handles POST /v1/simulator.
func (h *SimulatorHandler) Simulate(c echo.Context) error {
	var in simulator.Input
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Solicitud inválida",
		})
	}
	if msg := simulator.Validate(in); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": msg})
	}
	projection := simulator.Project(in)
	c.Logger().Infof("investment simulation: %s %.0f for %d years at %.2f%%",
		in.Currency, in.Principal, in.Years, in.AnnualRate)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    projection,
	})
}

// Info handles GET /v1/simulator with a short API description.
func (h *SimulatorHandler) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Investment Simulator API",
		"endpoints": []string{"POST /v1/simulator"},
		"version":   "1.0.0",
	})
}
