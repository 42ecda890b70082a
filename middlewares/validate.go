package middlewares

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// loosePhoneChars admits digits with common punctuation; the digit count is
// checked separately. Users edit the extracted draft by hand, so punctuated
// forms like "555-123-4567" or "(555) 123-4567" must pass.
var loosePhoneChars = regexp.MustCompile(`^[0-9()+\-. ]+$`)

func loosePhone(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !loosePhoneChars.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10 && digits <= 15
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loose_phone", loosePhone)
	return v
}

// BindAndValidate parses the request body into dst and validates it.
// Returns fiber.ErrBadRequest for parse errors and a validator.ValidationErrors for validation issues.
func BindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return validate.Struct(dst)
}

// ValidateStruct validates any struct value using the shared validator instance.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
