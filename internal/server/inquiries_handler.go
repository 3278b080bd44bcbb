// internal/server/inquiries_handler.go
package server

import (
	"net/http"

	apperrors "corpsite-backend/internal/common/errors"
	"corpsite-backend/internal/common/logger"
	"corpsite-backend/internal/inquiries"

	"github.com/gin-gonic/gin"
)

// InquiryHandler exposes the contact and quote submission endpoints.
type InquiryHandler struct {
	svc    *inquiries.Service
	logger logger.Logger
}

func NewInquiryHandler(svc *inquiries.Service, log logger.Logger) *InquiryHandler {
	return &InquiryHandler{svc: svc, logger: log}
}

// ListContacts handles GET /contacts.
func (h *InquiryHandler) ListContacts(c *gin.Context) {
	contacts, err := h.svc.ListContacts(c.Request.Context())
	if err != nil {
		respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// ListQuotes handles GET /quotes.
func (h *InquiryHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.svc.ListQuotes(c.Request.Context())
	if err != nil {
		respondListError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// SubmitQuote handles POST /quote.
func (h *InquiryHandler) SubmitQuote(c *gin.Context) {
	var in inquiries.InquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperrors.NewParseError(err.Error()))
		return
	}

	id, err := h.svc.SubmitQuote(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Quote request submitted successfully",
		"id":      id,
	})
}

// SubmitContact handles POST /contact.
func (h *InquiryHandler) SubmitContact(c *gin.Context) {
	var in inquiries.InquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperrors.NewParseError(err.Error()))
		return
	}

	id, err := h.svc.SubmitContact(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Message sent successfully",
		"id":      id,
	})
}
