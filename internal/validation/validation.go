package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// One process-wide validator instance; it caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SignupInput declares the field rules for signup.
type SignupInput struct {
	Name     string `validate:"required"`
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,alphanum,min=3,max=30"`
}

// UpdateProfileInput declares the field rules for profile update.
// Empty fields are skipped: absent and empty both mean "keep the old value".
type UpdateProfileInput struct {
	Name       string
	Username   string
	Email      string `validate:"omitempty,email"`
	Password   string `validate:"omitempty,alphanum,min=3,max=30"`
	ProfilePic string
	Bio        string `validate:"omitempty,max=256"`
}

// CreatePostInput declares the field rules for post creation.
type CreatePostInput struct {
	PostedBy string `validate:"required"`
	Text     string `validate:"required,max=500"`
	Img      string
}

// ReplyInput declares the field rules for replying to a post.
type ReplyInput struct {
	Text string `validate:"required"`
}

// Check validates in and returns one FieldError per rejected field, or nil
// when all rules pass. It is independent of any HTTP binding.
func Check(in any) []FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: lowerFirst(fe.Field()), Message: message(fe)})
	}
	return out
}

// Summary joins field errors into a single caller-facing message.
func Summary(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// FieldNames extracts the rejected field names.
func FieldNames(errs []FieldError) []string {
	names := make([]string, 0, len(errs))
	for _, e := range errs {
		names = append(names, e.Field)
	}
	return names
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "alphanum":
		return "must contain only letters and digits"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
