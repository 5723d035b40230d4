package reservationRepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"salonbot/models"
)

func reservationDoc(id, phone string, created time.Time) bson.D {
	return bson.D{
		{Key: "id", Value: id},
		{Key: "business", Value: "Frizerski Salon Elegance"},
		{Key: "service", Value: "Šišanje"},
		{Key: "date", Value: "sutra"},
		{Key: "time", Value: "09:00"},
		{Key: "client_name", Value: "Marko"},
		{Key: "client_phone", Value: phone},
		{Key: "session_id", Value: "whatsapp:" + phone},
		{Key: "channel", Value: "whatsapp"},
		{Key: "status", Value: models.ReservationStatusConfirmed},
		{Key: "created_at", Value: primitive.NewDateTimeFromTime(created)},
	}
}

func TestReservationRepo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id and status", func(mt *mtest.T) {
		repo := NewMongoReservationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id, err := repo.Create(context.Background(), models.Reservation{
			Service:     "Farbanje",
			ClientName:  "Ana",
			ClientPhone: "0911234567",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		sent := mt.GetStartedEvent()
		require.NotNil(t, sent)
		assert.Equal(t, "insert", sent.CommandName)
		assert.Equal(t, collectionName, sent.Command.Lookup("insert").StringValue())
	})

	mt.Run("duplicate id", func(mt *mtest.T) {
		repo := NewMongoReservationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Create(context.Background(), models.Reservation{ID: "r-1"})
		assert.Error(t, err)
	})
}

func TestReservationRepo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "salonbot." + collectionName

	mt.Run("returns decoded reservations", func(mt *mtest.T) {
		repo := NewMongoReservationRepo(mt.DB)
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			reservationDoc("r-2", "0911234567", now),
			reservationDoc("r-1", "0911234567", now.Add(-time.Hour)),
		))

		got, err := repo.List(context.Background(), models.ReservationFilter{ClientPhone: "0911234567"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "r-2", got[0].ID)
		assert.Equal(t, "Marko", got[0].ClientName)
		assert.True(t, now.Equal(got[0].CreatedAt))

		sent := mt.GetStartedEvent()
		require.NotNil(t, sent)
		assert.Equal(t, "find", sent.CommandName)
		assert.Equal(t, "0911234567", sent.Command.Lookup("filter", "client_phone").StringValue())
		assert.Equal(t, DefaultListLimit, sent.Command.Lookup("limit").Int64())
	})

	mt.Run("empty result is not nil", func(mt *mtest.T) {
		repo := NewMongoReservationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		got, err := repo.List(context.Background(), models.ReservationFilter{Limit: 5})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestReservationRepo_GetByIDNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewMongoReservationRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "salonbot."+collectionName, mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}
