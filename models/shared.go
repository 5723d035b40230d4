package models

// BookingConfirmedPayload is the body of the booking:confirmed task.
type BookingConfirmedPayload struct {
	ReservationID string `json:"reservationId"`
	Business      string `json:"business"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	ClientName    string `json:"clientName"`
	ClientPhone   string `json:"clientPhone"`
	SessionID     string `json:"sessionId"`
}
