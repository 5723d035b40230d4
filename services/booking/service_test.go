package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salonbot/models"
	"salonbot/services/tasks"
	"salonbot/utils"
)

type fakeRepo struct {
	created []models.Reservation
	listed  []models.ReservationFilter
	err     error
}

func (f *fakeRepo) Create(_ context.Context, r models.Reservation) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, r)
	return r.ID, nil
}

func (f *fakeRepo) GetByID(context.Context, string) (*models.Reservation, error) { return nil, f.err }

func (f *fakeRepo) List(_ context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	f.listed = append(f.listed, filter)
	return f.created, f.err
}

func (f *fakeRepo) EnsureIndexes(context.Context) error { return nil }

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func completedSession(id string) models.BookingSession {
	s := models.NewBookingSession(id, time.Now())
	s.Step = models.StepCompleted
	s.Draft = models.BookingDraft{Service: "Šišanje", Date: "sutra", Time: "09:00", Name: "Marko", Phone: "0911234567"}
	return *s
}

func TestBookingCompleted_PersistsAndEnqueues(t *testing.T) {
	repo, queue := &fakeRepo{}, &fakeQueue{}
	svc := NewDefaultReservationService(repo, queue, "Frizerski Salon Elegance", nil)

	require.NoError(t, svc.BookingCompleted(context.Background(), completedSession("whatsapp:+385911234567")))

	require.Len(t, repo.created, 1)
	res := repo.created[0]
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "Frizerski Salon Elegance", res.Business)
	assert.Equal(t, "Marko", res.ClientName)
	assert.Equal(t, "0911234567", res.ClientPhone)
	assert.Equal(t, ChannelWhatsApp, res.Channel)
	assert.Equal(t, models.ReservationStatusConfirmed, res.Status)

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, utils.TaskBookingConfirmed, queue.tasks[0].Type())
	payload, err := tasks.ParseBookingConfirmedPayload(queue.tasks[0])
	require.NoError(t, err)
	assert.Equal(t, res.ID, payload.ReservationID)
	assert.Equal(t, "09:00", payload.Time)
}

func TestBookingCompleted_RepoFailureSkipsQueue(t *testing.T) {
	repo, queue := &fakeRepo{err: errors.New("insert failed")}, &fakeQueue{}
	svc := NewDefaultReservationService(repo, queue, "Salon", nil)

	err := svc.BookingCompleted(context.Background(), completedSession("web-1"))
	assert.ErrorIs(t, err, repo.err)
	assert.Empty(t, queue.tasks)
}

func TestBookingCompleted_QueueErrors(t *testing.T) {
	boom := errors.New("redis down")
	svc := NewDefaultReservationService(nil, &fakeQueue{err: boom}, "Salon", nil)
	assert.ErrorIs(t, svc.BookingCompleted(context.Background(), completedSession("web-1")), boom)

	svc = NewDefaultReservationService(nil, &fakeQueue{err: asynq.ErrTaskIDConflict}, "Salon", nil)
	assert.NoError(t, svc.BookingCompleted(context.Background(), completedSession("web-1")))
}

func TestBookingCompleted_AllDisabled(t *testing.T) {
	svc := NewDefaultReservationService(nil, nil, "Salon", nil)
	assert.NoError(t, svc.BookingCompleted(context.Background(), completedSession("web-1")))
}

func TestListReservations(t *testing.T) {
	repo := &fakeRepo{created: []models.Reservation{{ID: "r-1"}}}
	svc := NewDefaultReservationService(repo, nil, "Salon", nil)

	got, err := svc.ListReservations(context.Background(), models.ReservationFilter{ClientPhone: "091", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, []models.ReservationFilter{{ClientPhone: "091", Limit: 10}}, repo.listed)

	_, err = NewDefaultReservationService(nil, nil, "Salon", nil).ListReservations(context.Background(), models.ReservationFilter{})
	assert.ErrorIs(t, err, ErrPersistenceDisabled)
}

func TestChannelFor(t *testing.T) {
	cases := map[string]string{
		"whatsapp:+385911234567": ChannelWhatsApp,
		"+385911234567":          ChannelSMS,
		"3f2b9c3e-web":           ChannelWeb,
		"":                       ChannelWeb,
	}
	for id, want := range cases {
		assert.Equal(t, want, ChannelFor(id), id)
	}
}
