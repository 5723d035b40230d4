package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"salonbot/models"
	"salonbot/services/booking"
	"salonbot/services/dialogue"
	"salonbot/services/session"
	"salonbot/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

type stubReservations struct {
	items  []models.Reservation
	filter models.ReservationFilter
	err    error
}

func (s *stubReservations) BookingCompleted(context.Context, models.BookingSession) error { return nil }

func (s *stubReservations) ListReservations(_ context.Context, f models.ReservationFilter) ([]models.Reservation, error) {
	s.filter = f
	return s.items, s.err
}

func newSessions() *session.Service {
	return session.NewService(session.NewMemoryStore(), dialogue.NewMachine(models.DefaultBusinessConfig()), nil, nil)
}

func chatRouter(sessions *session.Service) *gin.Engine {
	h := &ChatHandler{Sessions: sessions}
	r := gin.New()
	r.GET("/business", h.Business)
	r.POST("/sessions/:sessionID/messages", h.SendMessage)
	r.GET("/sessions/:sessionID", h.GetSession)
	r.DELETE("/sessions/:sessionID", h.ResetSession)
	return r
}

func postMessage(r http.Handler, sessionID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/sessions/"+sessionID+"/messages", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestChat_Business(t *testing.T) {
	r := chatRouter(newSessions())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/business", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Frizerski Salon Elegance", body["name"])
	assert.Contains(t, body["greeting"], "Dobrodošli")
	assert.Len(t, body["services"], 4)
}

func TestChat_SendMessage(t *testing.T) {
	r := chatRouter(newSessions())

	w := postMessage(r, "web-1", `{"message":"rezervacija"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var reply models.ChatReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, "web-1", reply.SessionID)
	assert.Equal(t, models.StepService, reply.Step)
	assert.Contains(t, reply.Reply, "Šišanje")

	w = postMessage(r, "web-1", `{"message":"2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, models.StepDate, reply.Step)
	assert.Equal(t, map[string]string{"service": "Farbanje"}, reply.Draft)
}

func TestChat_SendMessageRejectsBadInput(t *testing.T) {
	r := chatRouter(newSessions())

	for _, body := range []string{`{"message":"   "}`, `{}`, `not json`} {
		w := postMessage(r, "web-2", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp utils.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid input", resp.Error)
	}
}

func TestChat_GetAndResetSession(t *testing.T) {
	r := chatRouter(newSessions())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/web-3", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sessionId":"web-3","step":"initial","draft":{}}`, w.Body.String())

	postMessage(r, "web-3", `{"message":"rezervacija"}`)
	postMessage(r, "web-3", `{"message":"1"}`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/web-3", nil))
	assert.JSONEq(t, `{"sessionId":"web-3","step":"date","draft":{"service":"Šišanje"}}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/web-3", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions/web-3", nil))
	assert.JSONEq(t, `{"sessionId":"web-3","step":"initial","draft":{}}`, w.Body.String())
}

func twilioRouter(sessions *session.Service) *gin.Engine {
	h := &TwilioHandler{Sessions: sessions}
	r := gin.New()
	r.POST("/webhook/twilio", h.Webhook)
	return r
}

func postTwilio(r http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/twilio", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTwilioWebhook(t *testing.T) {
	sessions := newSessions()
	r := twilioRouter(sessions)
	from := "whatsapp:+385911234567"

	w := postTwilio(r, url.Values{"From": {from}, "Body": {"rezervacija"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.True(t, strings.HasPrefix(w.Body.String(), xml.Header))

	var doc twimlResponse
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc.Message, "Šišanje")

	sess, err := sessions.GetOrCreate(context.Background(), from)
	require.NoError(t, err)
	assert.Equal(t, models.StepService, sess.Step)
}

func TestTwilioWebhook_MissingSender(t *testing.T) {
	w := postTwilio(twilioRouter(newSessions()), url.Values{"Body": {"bok"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWriteTwiML_Escapes(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	writeTwiML(c, `Tom & "Jerry" <3`)

	assert.Contains(t, w.Body.String(), "Tom &amp; &#34;Jerry&#34; &lt;3")
	var doc twimlResponse
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, `Tom & "Jerry" <3`, doc.Message)
}

func reservationRouter(svc booking.ReservationService) *gin.Engine {
	h := &ReservationHandler{Reservations: svc}
	r := gin.New()
	r.GET("/reservations", h.List)
	return r
}

func TestReservations_List(t *testing.T) {
	stub := &stubReservations{items: []models.Reservation{{ID: "r-1", ClientName: "Marko"}}}
	r := reservationRouter(stub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservations?phone=0911234567&limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ReservationFilter{ClientPhone: "0911234567", Limit: 10}, stub.filter)

	var body struct {
		Reservations []models.Reservation `json:"reservations"`
		Count        int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "Marko", body.Reservations[0].ClientName)
}

func TestReservations_ListErrors(t *testing.T) {
	cases := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{"bad limit", "?limit=abc", nil, http.StatusBadRequest},
		{"zero limit", "?limit=0", nil, http.StatusBadRequest},
		{"limit too large", "?limit=5000", nil, http.StatusBadRequest},
		{"persistence disabled", "", booking.ErrPersistenceDisabled, http.StatusServiceUnavailable},
		{"store failure", "", errors.New("mongo down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := reservationRouter(&stubReservations{err: tc.err})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reservations"+tc.query, nil))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestHealth(t *testing.T) {
	utils.CheckHealth(context.Background(), map[string]utils.HealthCheck{
		"redis": func(context.Context) error { return nil },
		"mongo": func(context.Context) error { return errors.New("down") },
	})

	r := gin.New()
	r.GET("/health", Health)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status       string             `json:"status"`
		Dependencies utils.HealthStatus `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.True(t, body.Dependencies.Dependencies["redis"])
	assert.False(t, body.Dependencies.Dependencies["mongo"])
}
