package models

import "time"

// Step is the position of a session inside the booking dialogue.
type Step string

const (
	StepInitial   Step = "initial"
	StepService   Step = "service"
	StepDate      Step = "date"
	StepTime      Step = "time"
	StepName      Step = "name"
	StepPhone     Step = "phone"
	StepConfirm   Step = "confirm"
	StepCompleted Step = "completed"
)

// Steps lists every dialogue step in flow order.
var Steps = []Step{
	StepInitial,
	StepService,
	StepDate,
	StepTime,
	StepName,
	StepPhone,
	StepConfirm,
	StepCompleted,
}

// Valid reports whether s is one of the known steps.
func (s Step) Valid() bool {
	for _, known := range Steps {
		if s == known {
			return true
		}
	}
	return false
}

// BookingSession holds the dialogue state of one conversation partner.
type BookingSession struct {
	SessionID string       `json:"sessionId"`
	Step      Step         `json:"step"`
	Draft     BookingDraft `json:"draft"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewBookingSession returns a fresh session positioned at the first step.
func NewBookingSession(sessionID string, now time.Time) *BookingSession {
	return &BookingSession{
		SessionID: sessionID,
		Step:      StepInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ChatReply is what a host receives after one utterance has been processed.
type ChatReply struct {
	SessionID string            `json:"sessionId"`
	Reply     string            `json:"reply"`
	Step      Step              `json:"step"`
	Draft     map[string]string `json:"draft"`
}
