package tasks

import (
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbot/models"
	"salonbot/utils"
)

func TestNewBookingConfirmedTask(t *testing.T) {
	payload := models.BookingConfirmedPayload{
		ReservationID: "r-1",
		Business:      "Frizerski Salon Elegance",
		Service:       "Manikura",
		Date:          "15.03.",
		Time:          "14:00",
		ClientName:    "Iva",
		ClientPhone:   "+385911234567",
		SessionID:     "whatsapp:+385911234567",
	}

	task, opts, err := NewBookingConfirmedTask(payload)
	require.NoError(t, err)
	assert.Equal(t, utils.TaskBookingConfirmed, task.Type())
	assert.Len(t, opts, 3)

	got, err := ParseBookingConfirmedPayload(task)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestNewBookingConfirmedTask_WithoutReservationID(t *testing.T) {
	_, opts, err := NewBookingConfirmedTask(models.BookingConfirmedPayload{Service: "Šišanje"})
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestParseBookingConfirmedPayload_Invalid(t *testing.T) {
	_, err := ParseBookingConfirmedPayload(asynq.NewTask(utils.TaskBookingConfirmed, []byte("{")))
	assert.Error(t, err)
}
