package dialogue

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	leadingIntPattern = regexp.MustCompile(`^[+-]?\d+`)
	datePattern       = regexp.MustCompile(`\d{1,2}\.\d{1,2}\.?\d{0,4}`)
)

// Input is a normalized user utterance.
type Input struct {
	Raw   string // trimmed original text
	Lower string // trimmed, lowercased copy for case-insensitive matching
}

// Normalize trims the utterance and prepares its lowercase form. It never fails.
func Normalize(utterance string) Input {
	raw := strings.TrimSpace(utterance)
	return Input{
		Raw:   raw,
		Lower: strings.ToLower(raw),
	}
}

// Int returns the integer the text starts with, if any. Trailing text is
// ignored, so "2 Farbanje" yields 2 and "14:00" yields 14.
func (in Input) Int() (int, bool) {
	token := leadingIntPattern.FindString(in.Raw)
	if token == "" {
		return 0, false
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DateToken returns the first date-like substring such as "15.12.2024" or "3.4".
func (in Input) DateToken() (string, bool) {
	token := datePattern.FindString(in.Raw)
	return token, token != ""
}

// PhoneDigits strips whitespace and '+' characters from the raw text.
func (in Input) PhoneDigits() string {
	return strings.Map(func(r rune) rune {
		if r == '+' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, in.Raw)
}
