package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidTitle is returned when a task title is empty or
	// whitespace-only after trimming.
	ErrInvalidTitle = errors.New("task title cannot be empty")
	// ErrIndexOutOfRange is returned when a positional task index does not
	// address an existing task.
	ErrIndexOutOfRange = errors.New("task index out of range")
)

// MaxTitleLength is the cap applied to task titles. Longer titles are
// truncated, not rejected.
const MaxTitleLength = 200

// forbiddenTitleChars are stripped from titles before persistence.
const forbiddenTitleChars = `<>&"'`

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validator enforces the task schema constraints. Construct one and pass it
// where it is needed; there is no shared global instance.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateTitle cleans a raw title and returns the canonical form. It fails
// with ErrInvalidTitle when the trimmed input is empty. Otherwise the title
// is truncated to MaxTitleLength runes, forbidden characters are stripped,
// and internal whitespace runs collapse to single spaces. The cleaned value
// is returned; the input is never modified in place.
func (v *Validator) ValidateTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrInvalidTitle
	}

	if runes := []rune(title); len(runes) > MaxTitleLength {
		title = string(runes[:MaxTitleLength])
	}

	title = strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenTitleChars, r) {
			return -1
		}
		return r
	}, title)

	return strings.Join(strings.Fields(title), " "), nil
}

// ValidateTask applies title cleaning to the given task. The done flag is
// already coerced to a boolean during unmarshaling, so only the title needs
// attention here.
func (v *Validator) ValidateTask(t *Task) error {
	title, err := v.ValidateTitle(t.Title)
	if err != nil {
		return err
	}
	t.Title = title
	return nil
}

// ValidateIndex fails with ErrIndexOutOfRange unless index addresses an
// element of a collection of the given length.
func (v *Validator) ValidateIndex(index, length int) error {
	if index < 0 || index >= length {
		return fmt.Errorf("%w: %d (have %d tasks)", ErrIndexOutOfRange, index, length)
	}
	return nil
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// CheckIntegrity verifies that every task in the list satisfies the
// canonical schema: a non-empty title within the length cap and a boolean
// done flag. It is used by tests and the self-check hook.
func CheckIntegrity(list TaskList) error {
	for i, t := range list {
		if err := ValidateStruct(t); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	return nil
}
