package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonbot/models"
	"salonbot/services/session"
	"salonbot/utils"
)

// ChatHandler serves the JSON chat API used by the web widget.
type ChatHandler struct {
	Sessions *session.Service
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	SessionID string            `json:"sessionId"`
	Step      models.Step       `json:"step"`
	Draft     map[string]string `json:"draft"`
}

type businessResponse struct {
	models.BusinessConfig
	Greeting string `json:"greeting"`
}

// Business returns the salon info panel and greeting.
func (h *ChatHandler) Business(c *gin.Context) {
	m := h.Sessions.Machine()
	c.JSON(http.StatusOK, businessResponse{
		BusinessConfig: m.Config(),
		Greeting:       m.Greeting(),
	})
}

// SendMessage feeds one utterance into the session's dialogue.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "message is required")
		return
	}

	reply, err := h.Sessions.Apply(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		h.sessionError(c, sessionID, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

// GetSession returns the session's step and collected fields, creating it if needed.
func (h *ChatHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	sess, err := h.Sessions.GetOrCreate(c.Request.Context(), sessionID)
	if err != nil {
		h.sessionError(c, sessionID, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		SessionID: sess.SessionID,
		Step:      sess.Step,
		Draft:     sess.Draft.Snapshot(),
	})
}

// ResetSession discards the session so the dialogue starts over.
func (h *ChatHandler) ResetSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	if err := h.Sessions.Reset(c.Request.Context(), sessionID); err != nil {
		h.sessionError(c, sessionID, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ChatHandler) sessionError(c *gin.Context, sessionID string, err error) {
	if errors.Is(err, session.ErrEmptySessionID) {
		utils.JSONError(c, http.StatusBadRequest, "invalid session", err.Error())
		return
	}
	getLogger(c).Error("session operation failed", zap.String("session_id", sessionID), zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "session unavailable", "Please try again later.")
}
