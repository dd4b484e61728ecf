package phone

import (
	"errors"
	"strings"
)

// Ethiopian mobile numbering plan: country code 251, nine-digit subscriber
// numbers starting with 9 (Ethio Telecom) or 7 (Safaricom Ethiopia).
const (
	CountryCode      = "251"
	SubscriberLength = 9
)

var ErrInvalid = errors.New("invalid ethiopian phone number")

// Number is a phone number in canonical E.164 form, e.g. +251911234567.
// Construct only through Normalize.
type Number string

func (n Number) String() string { return string(n) }

// Masked returns the number with all but the last four subscriber digits
// hidden, for logs and default display names.
func (n Number) Masked() string {
	s := string(n)
	if len(s) <= 4 {
		return s
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// Last4 returns the last four digits of the subscriber number.
func (n Number) Last4() string {
	s := string(n)
	if len(s) < 4 {
		return s
	}
	return s[len(s)-4:]
}

func allowedLeading(b byte) bool { return b == '9' || b == '7' }

// Normalize canonicalizes raw user input into +251XXXXXXXXX.
//
// Accepted shapes, checked in strict priority order:
//  1. international: 251 followed by the nine-digit subscriber
//  2. trunk-prefixed: 0 followed by the nine-digit subscriber
//  3. bare: the nine-digit subscriber itself
//
// Everything else is rejected. Normalize is pure and idempotent: feeding a
// canonical value back in returns the same value.
func Normalize(raw string) (Number, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	var subscriber string
	switch {
	case strings.HasPrefix(digits, CountryCode) && len(digits) == len(CountryCode)+SubscriberLength:
		subscriber = digits[len(CountryCode):]
	case strings.HasPrefix(digits, "0") && len(digits) == 1+SubscriberLength:
		subscriber = digits[1:]
	case len(digits) == SubscriberLength:
		subscriber = digits
	default:
		return "", ErrInvalid
	}

	if !allowedLeading(subscriber[0]) {
		return "", ErrInvalid
	}
	return Number("+" + CountryCode + subscriber), nil
}
