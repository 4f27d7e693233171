package form

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const (
	MsgAccountRequired = "Account number is required"
	MsgAccountFormat   = "Account number must be at least 6 alphanumeric characters"
)

// accountIdentifierRules is checked against the trimmed identifier. The
// validator stops at the first failing tag, so "required" is reported alone.
const accountIdentifierRules = "required,alphanum,min=6"

var validate = validator.New()

// ValidationError is a field-level problem shown next to the input. It never
// reaches the notification channel.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateAccountIdentifier checks an account identifier after trimming
// surrounding whitespace (see trimAccountIdentifier). It returns nil or a *ValidationError.
func ValidateAccountIdentifier(identifier string) error {
	err := validate.Var(trimAccountIdentifier(identifier), accountIdentifierRules)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
		return &ValidationError{Field: "accountNumber", Message: MsgAccountRequired}
	}
	return &ValidationError{Field: "accountNumber", Message: MsgAccountFormat}
}

// trimAccountIdentifier strips the whitespace and line terminators a browser
// form trims: tab, VT, FF, space, NBSP, BOM, LF, CR, LS, PS and the rest of
// Unicode Zs. Unlike strings.TrimSpace it strips U+FEFF and keeps U+0085.
func trimAccountIdentifier(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		switch r {
		case '\t', '\v', '\f', ' ', '\u00a0', '\ufeff', '\n', '\r', '\u2028', '\u2029':
			return true
		}
		return unicode.Is(unicode.Zs, r)
	})
}
