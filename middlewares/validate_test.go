package middlewares

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type phoneHolder struct {
	Phone string `validate:"required,loose_phone"`
}

func TestLoosePhoneValidation(t *testing.T) {
	valid := []string{
		"+15551234567",
		"5551234567",
		"555-123-4567",
		"(555) 123-4567",
		"555.123.4567",
		"1 555 123 4567",
	}
	for _, phone := range valid {
		assert.NoError(t, ValidateStruct(phoneHolder{Phone: phone}), phone)
	}

	invalid := []string{
		"abc",
		"555-1234",             // too few digits
		"555-123-4567 ext 9",   // letters
		"12345678901234567890", // too many digits
		"",
	}
	for _, phone := range invalid {
		assert.Error(t, ValidateStruct(phoneHolder{Phone: phone}), phone)
	}
}
