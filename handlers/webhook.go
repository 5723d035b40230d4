package handlers

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonbot/services/session"
)

// twimlResponse is the minimal TwiML document Twilio expects back.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message,omitempty"`
}

// TwilioHandler answers inbound SMS and WhatsApp messages.
type TwilioHandler struct {
	Sessions *session.Service
}

const twilioErrorReply = "Došlo je do greške. Molimo pokušajte ponovno kasnije."

// Webhook handles Twilio's form POST. The sender number is the session ID.
func (h *TwilioHandler) Webhook(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")
	logger := getLogger(c).With(zap.String("session_id", from))

	if from == "" {
		logger.Warn("twilio webhook without sender")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reply, err := h.Sessions.Apply(c.Request.Context(), from, body)
	if err != nil {
		// Twilio retries non-2xx responses; answer with an apology instead.
		logger.Error("failed to process inbound message", zap.Error(err))
		writeTwiML(c, twilioErrorReply)
		return
	}
	writeTwiML(c, reply.Reply)
}

func writeTwiML(c *gin.Context, message string) {
	out, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), out...))
}
