package msisdn

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalid is returned for numbers that are not Ugandan mobile numbers.
var ErrInvalid = errors.New("invalid msisdn")

var ugandanMobile = regexp.MustCompile(`^(?:\+256|0)(7\d{8})$`)

// Normalize canonicalizes a Ugandan mobile number ("+2567...", "07...")
// to the bare digit form "2567XXXXXXXX". Whitespace is ignored.
func Normalize(input string) (string, error) {
	trimmed := strings.Join(strings.Fields(input), "")
	m := ugandanMobile.FindStringSubmatch(trimmed)
	if m == nil {
		return "", ErrInvalid
	}
	return "256" + m[1], nil
}
