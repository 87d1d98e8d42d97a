package validators

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// IsEmail checks the address format only.
func IsEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// IsPhone accepts digits with the usual separators and an optional +.
func IsPhone(phone string) bool {
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 8 && digits <= 15
}
