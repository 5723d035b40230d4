package dialogue

import "strings"

// Intent is what a free-form message outside the booking flow asks for.
type Intent int

const (
	IntentUnknown Intent = iota
	IntentBooking
	IntentHours
)

// Router classifies messages by keyword. Booking keywords win over hours keywords.
type Router struct {
	Booking []string
	Hours   []string
}

var (
	initialRouter = Router{
		Booking: []string{"rezerv", "termin", "naruč"},
		Hours:   []string{"radno", "vrijeme", "kada"},
	}
	completedRouter = Router{
		Booking: []string{"rezerv", "termin", "nova"},
		Hours:   []string{"radno", "vrijeme"},
	}
)

func (r Router) Route(in Input) Intent {
	switch {
	case containsAny(in.Lower, r.Booking):
		return IntentBooking
	case containsAny(in.Lower, r.Hours):
		return IntentHours
	default:
		return IntentUnknown
	}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
