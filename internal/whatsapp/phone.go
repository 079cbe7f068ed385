package whatsapp

import (
	"errors"
	"strings"
)

// Ghana country code; local numbers lead with 0.
const countryCode = "233"

var ErrInvalidPhone = errors.New("invalid phone number")

// FormatPhone normalizes a phone number into WhatsApp's international form
// without the plus sign. "0241234567" becomes "233241234567";
// "233241234567" is returned unchanged; anything too short is rejected.
func FormatPhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	number := digits.String()

	switch {
	case strings.HasPrefix(number, countryCode) && len(number) == 12:
		return number, nil
	case strings.HasPrefix(number, "0") && len(number) == 10:
		return countryCode + number[1:], nil
	case len(number) == 9:
		return countryCode + number, nil
	default:
		return "", ErrInvalidPhone
	}
}
