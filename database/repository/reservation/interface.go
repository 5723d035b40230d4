// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"salonbot/models"
)

const collectionName = "reservations"

type ReservationRepository interface {
	Create(ctx context.Context, r models.Reservation) (string, error)
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo returns a ReservationRepository backed by the
// reservations collection of db.
func NewMongoReservationRepo(db *mongo.Database) ReservationRepository {
	return &mongoReservationRepo{
		coll: db.Collection(collectionName),
	}
}
