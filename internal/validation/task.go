package validation

import (
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/deppfellow/taskform/internal/i18n"
)

// Task form field names, as posted by the form and used as error keys.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldEmail       = "email"
)

// MaxFieldLength applies to every task field, counted in characters.
const MaxFieldLength = 255

// ASCII letters and whitespace, vertical tab included; see DESIGN.md for the
// Unicode decision.
var titlePattern = regexp.MustCompile(`^[a-zA-Z\s\v]+$`)

// Kind classifies a failed task field check.
type Kind int

const (
	PatternMismatch Kind = iota + 1
	LengthExceeded
	InvalidEmailFormat
)

func (k Kind) String() string {
	switch k {
	case PatternMismatch:
		return "pattern_mismatch"
	case LengthExceeded:
		return "length_exceeded"
	case InvalidEmailFormat:
		return "invalid_email_format"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Input is a raw task submission. Missing fields are empty strings.
type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Email       string `json:"email"`
}

// FromValues reads the task fields through get, keyed by the Field names.
// A field get does not know comes back as "" and is validated as empty.
// Typical getters are echo.Context.FormValue and url.Values.Get.
func FromValues(get func(name string) string) Input {
	return Input{
		Title:       get(FieldTitle),
		Description: get(FieldDescription),
		Email:       get(FieldEmail),
	}
}

// Violation is one failed check, kept even when a later check on the same
// field replaced its message in Result.Errors.
type Violation struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Result is the outcome of validating one Input.
//
// Errors holds one message per failing field and is non-empty exactly when
// Valid is false. Input is the submission after normalization.
type Result struct {
	Valid      bool              `json:"valid"`
	Errors     map[string]string `json:"errors"`
	Violations []Violation       `json:"violations,omitempty"`
	Input      Input             `json:"-"`
}

func (r *Result) fail(field string, kind Kind, message string) {
	r.Valid = false
	r.Errors[field] = message
	r.Violations = append(r.Violations, Violation{Field: field, Kind: kind, Message: message})
}

// Err returns nil for a valid result, otherwise CustomValidationErrors with
// one entry per failing field, ordered by field name.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}

	fields := make([]string, 0, len(r.Errors))
	for field := range r.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make(CustomValidationErrors, 0, len(fields))
	for _, field := range fields {
		out = append(out, CustomValidationError{Field: field, Message: r.Errors[field]})
	}
	return out
}

// FieldValidator applies the task form rules. It holds no per-call state
// and is safe for concurrent use.
type FieldValidator struct {
	messages *i18n.Messages
}

func New(messages *i18n.Messages) *FieldValidator {
	return &FieldValidator{messages: messages}
}

// Validate runs every check on in. Checks run in a fixed order (title
// pattern, email format, then the length of each field) and a later failure
// on a field overwrites the earlier message for that field. No failure stops
// the remaining checks.
func (v *FieldValidator) Validate(in Input) Result {
	res := Result{
		Valid:  true,
		Errors: make(map[string]string),
		Input:  in,
	}

	if !titlePattern.MatchString(in.Title) {
		res.fail(FieldTitle, PatternMismatch, v.messages.TitlePattern())
	}

	if !IsValidEmail(in.Email) {
		res.fail(FieldEmail, InvalidEmailFormat, v.messages.EmailFormat())
	}

	// Description has no content rule; a missing one is already "".

	for _, f := range []struct{ name, value string }{
		{FieldTitle, res.Input.Title},
		{FieldDescription, res.Input.Description},
		{FieldEmail, res.Input.Email},
	} {
		if utf8.RuneCountInString(f.value) > MaxFieldLength {
			res.fail(f.name, LengthExceeded, v.messages.MaxLength(f.name, MaxFieldLength))
		}
	}

	return res
}
