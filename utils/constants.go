// File: utils/constants.go
package utils

// SessionKeyPrefix is the prefix used for Redis dialogue session keys.
const SessionKeyPrefix = "chat:session:"

// TaskBookingConfirmed is the asynq task type emitted when a client confirms a booking.
const TaskBookingConfirmed = "booking:confirmed"
