package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used to parse numbers written without a country code.
const DefaultRegion = "IN"

// NormalizePhone returns the national significant number of phone, so
// "+91 98765-43210" and "098765 43210" both become "9876543210". Input that
// does not parse is returned trimmed so validation can report it.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	parsedNumber, err := phonenumbers.Parse(phone, DefaultRegion)
	if err != nil {
		return phone
	}
	return phonenumbers.GetNationalSignificantNumber(parsedNumber)
}
