package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/goodenergy/platform/internal/mailer"
)

// ContactHandler forwards contact-form submissions to the configured
// lead inbox as an email.  Nothing is persisted; the inbox is the
// system of record for leads.
type ContactHandler struct {
	Mailer mailer.Mailer
	From   string // verified sender, e.g. "Good Energy Web <onboarding@resend.dev>"
	Inbox  string // destination address for leads
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(m mailer.Mailer, from, inbox string) *ContactHandler {
	if m == nil {
		panic("nil mailer passed to NewContactHandler")
	}
	return &ContactHandler{Mailer: m, From: from, Inbox: inbox}
}

type contactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Submit handles POST /v1/contact.  Unlike the reservation path, a
// mailer failure here is surfaced as a 500 because the email IS the
// deliverable.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Solicitud inválida"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Nombre, email y mensaje son obligatorios"})
	}

	html := fmt.Sprintf(`<h1>Nuevo contacto desde la web de Good Energy</h1>
<p><strong>Nombre:</strong> %s</p>
<p><strong>Teléfono:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<hr />
<p><strong>Mensaje:</strong></p>
<p>%s</p>`, req.Name, req.Phone, req.Email, req.Message)

	msg := mailer.Message{
		From:    h.From,
		To:      []string{h.Inbox},
		Subject: "Nuevo Lead de Good Energy: " + req.Name,
		HTML:    html,
	}
	if err := h.Mailer.Send(c.Request().Context(), msg); err != nil {
		c.Logger().Errorf("contact email failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Something went wrong"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Email sent successfully!"})
}
