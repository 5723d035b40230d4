package dialogue

import (
	"strings"
	"unicode/utf8"

	"salonbot/models"
)

const (
	minNameLength  = 2
	minPhoneDigits = 9
)

var (
	dateKeywords = []string{"sutra", "danas"}

	affirmativeAnswers = map[string]bool{"da": true, "yes": true, "potvrđujem": true, "potvrdi": true}
	negativeAnswers    = map[string]bool{"ne": true, "no": true, "odustani": true}
)

// Match is the outcome of a slot extractor. OK is false when nothing matched.
type Match struct {
	Value string
	OK    bool
}

func matched(value string) Match { return Match{Value: value, OK: true} }

var noMatch = Match{}

// Extractor resolves a normalized utterance to a slot value.
type Extractor func(in Input, cfg models.BusinessConfig) Match

// ExtractService picks a service by 1-based number, falling back to the first
// service whose name appears in the text.
func ExtractService(in Input, cfg models.BusinessConfig) Match {
	if service, ok := pickByIndex(in, cfg.Services); ok {
		return matched(service)
	}
	for _, service := range cfg.Services {
		if strings.Contains(in.Lower, strings.ToLower(service)) {
			return matched(service)
		}
	}
	return noMatch
}

// ExtractDate accepts anything that looks like a dotted date or mentions
// today/tomorrow. The raw text is kept as typed; no calendar validation happens.
func ExtractDate(in Input, _ models.BusinessConfig) Match {
	if _, ok := in.DateToken(); ok {
		return matched(in.Raw)
	}
	for _, keyword := range dateKeywords {
		if strings.Contains(in.Lower, keyword) {
			return matched(in.Raw)
		}
	}
	return noMatch
}

// ExtractTime picks a slot by 1-based number, falling back to the first slot
// label contained in the raw text.
func ExtractTime(in Input, cfg models.BusinessConfig) Match {
	if slot, ok := pickByIndex(in, cfg.TimeSlots); ok {
		return matched(slot)
	}
	for _, slot := range cfg.TimeSlots {
		if strings.Contains(in.Raw, slot) {
			return matched(slot)
		}
	}
	return noMatch
}

func ExtractName(in Input, _ models.BusinessConfig) Match {
	if utf8.RuneCountInString(in.Raw) >= minNameLength {
		return matched(in.Raw)
	}
	return noMatch
}

// ExtractPhone validates the digits but stores the number as the client typed it.
func ExtractPhone(in Input, _ models.BusinessConfig) Match {
	digits := in.PhoneDigits()
	if len(digits) < minPhoneDigits {
		return noMatch
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return noMatch
		}
	}
	return matched(in.Raw)
}

func pickByIndex(in Input, options []string) (string, bool) {
	n, ok := in.Int()
	if !ok || n < 1 || n > len(options) {
		return "", false
	}
	return options[n-1], true
}

// Answer is the result of matching a yes/no confirmation.
type Answer int

const (
	AnswerNone Answer = iota
	AnswerYes
	AnswerNo
)

// Confirmation matches the whole utterance against the closed yes/no sets.
func Confirmation(in Input) Answer {
	switch {
	case affirmativeAnswers[in.Lower]:
		return AnswerYes
	case negativeAnswers[in.Lower]:
		return AnswerNo
	default:
		return AnswerNone
	}
}
