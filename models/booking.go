package models

import "time"

const ReservationStatusConfirmed = "confirmed"

// Reservation is the persisted record of a confirmed booking.
type Reservation struct {
	ID          string    `bson:"id" json:"id"`
	Business    string    `bson:"business" json:"business"`
	Service     string    `bson:"service" json:"service"`
	Date        string    `bson:"date" json:"date"`
	Time        string    `bson:"time" json:"time"`
	ClientName  string    `bson:"client_name" json:"client_name"`
	ClientPhone string    `bson:"client_phone" json:"client_phone"`
	SessionID   string    `bson:"session_id" json:"session_id"`
	Channel     string    `bson:"channel" json:"channel"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// ReservationFilter narrows admin reservation listings.
type ReservationFilter struct {
	ClientPhone string
	Limit       int64
}
