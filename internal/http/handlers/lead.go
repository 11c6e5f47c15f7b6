package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/http/response"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/platform/logger"
	"github.com/AdminHomeSmile/scg-customer-screening/internal/services"
)

const LivenessMessage = "SCG Customer Screening Data Handler is running!"

const defaultMaxLeadBytes = 64 << 10

type LeadHandler struct {
	log      *logger.Logger
	leads    services.LeadService
	maxBytes int64
}

func NewLeadHandler(log *logger.Logger, leads services.LeadService, maxBytes int64) *LeadHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxLeadBytes
	}
	return &LeadHandler{log: log.With("handler", "LeadHandler"), leads: leads, maxBytes: maxBytes}
}

// POST / and /exec
// The body is read whatever its Content-Type: browsers sending opaque
// requests downgrade it to text/plain. The reply is always 200.
func (h *LeadHandler) Submit(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes))
	if err != nil {
		h.log.Warn("Lead body unreadable", "error", err)
		response.RespondOK(c, services.Envelope{
			Result:  services.ResultError,
			Message: fmt.Sprintf("read body: %v", err),
		})
		return
	}
	response.RespondOK(c, h.leads.Handle(c.Request.Context(), body))
}

// GET / and /exec
func (h *LeadHandler) Status(c *gin.Context) {
	c.String(http.StatusOK, LivenessMessage)
}
