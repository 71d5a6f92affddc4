package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/logging"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

type ContactHandler struct {
	contacts usecase.ContactRepo
}

func NewContactHandler(contacts usecase.ContactRepo) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type contactReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=10"`
}

// Submit handles POST /v1/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	msg := &usecase.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
	if err := h.contacts.Insert(ctx, msg); err != nil {
		logging.From(c).Error("contact insert failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": msg.ID})
}
