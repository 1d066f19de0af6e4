// Package registration implements the direct student registration
// endpoint, used by advisors to set a student's department without going
// through the chat flow.
package registration

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domerrors "github.com/sdu-se/zibot-go/internal/errors"
	"github.com/sdu-se/zibot-go/internal/logger"
	"github.com/sdu-se/zibot-go/internal/store"
)

// Handler handles student registration requests.
type Handler struct {
	store  store.Store
	logger *logger.Logger
}

// NewHandler creates a new registration handler.
func NewHandler(s store.Store, log *logger.Logger) *Handler {
	return &Handler{
		store:  s,
		logger: log.WithModule("registration"),
	}
}

// registerRequest is the POST /register-student body.
type registerRequest struct {
	WhatsApp   string `json:"whatsapp"`
	Department string `json:"department"`
}

// Register is the Gin handler for POST /register-student.
// Missing fields yield an explicit 400; unlike the webhook, this endpoint
// has no platform retry behavior to appease.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing whatsapp or department"})
		return
	}

	if req.WhatsApp == "" || req.Department == "" {
		h.logger.WithError(domerrors.ErrMissingField).
			Debug("Rejected registration request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing whatsapp or department"})
		return
	}

	student := &store.Student{Department: req.Department}
	if err := h.store.SetStudent(c.Request.Context(), req.WhatsApp, student); err != nil {
		h.logger.WithError(err).WithField("whatsapp", req.WhatsApp).
			Error("Failed to write student record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register student"})
		return
	}

	h.logger.WithField("whatsapp", req.WhatsApp).
		WithField("department", req.Department).
		Info("Student registered")
	c.JSON(http.StatusOK, gin.H{"message": "Student registered."})
}
