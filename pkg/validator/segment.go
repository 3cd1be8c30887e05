package validator

import (
	"errors"
	"fmt"
	"strconv"

	playground "github.com/go-playground/validator/v10"
)

var (
	// ErrEmptyLocation indicates origin or destination is missing
	ErrEmptyLocation = errors.New("origin and destination cannot be empty")

	// ErrEmptyLeadTime indicates lead time is missing
	ErrEmptyLeadTime = errors.New("lead time cannot be empty")

	// ErrInvalidLeadTime indicates lead time is not a whole number of days
	ErrInvalidLeadTime = errors.New("lead time must be a whole number of days between 0 and 36500")
)

// MaxLeadTimeDays caps a single segment at one hundred years
const MaxLeadTimeDays = 36500

// segmentFields mirrors the form a user fills in for a new segment
type segmentFields struct {
	From     string `validate:"required"`
	To       string `validate:"required"`
	LeadTime string `validate:"required,number"`
}

// leg is an already typed segment, as found in seed catalogs
type leg struct {
	From         string `validate:"required"`
	To           string `validate:"required"`
	LeadTimeDays int    `validate:"min=0,max=36500"`
}

// SegmentValidator handles segment field validation
type SegmentValidator struct {
	validate *playground.Validate
}

// NewSegmentValidator creates a new segment validator instance
func NewSegmentValidator() *SegmentValidator {
	return &SegmentValidator{
		validate: playground.New(),
	}
}

// ValidateFields validates raw segment input and returns the parsed lead time.
// Location names are checked for presence only; they are never trimmed or
// case folded.
func (v *SegmentValidator) ValidateFields(from, to, leadTime string) (int, error) {
	if err := v.validate.Struct(segmentFields{From: from, To: to, LeadTime: leadTime}); err != nil {
		return 0, mapFieldError(err)
	}

	days, err := strconv.Atoi(leadTime)
	if err != nil || days < 0 || days > MaxLeadTimeDays {
		return 0, ErrInvalidLeadTime
	}

	return days, nil
}

// ValidateLeg validates a typed origin, destination and lead time
func (v *SegmentValidator) ValidateLeg(from, to string, leadTimeDays int) error {
	if err := v.validate.Struct(leg{From: from, To: to, LeadTimeDays: leadTimeDays}); err != nil {
		return mapFieldError(err)
	}
	return nil
}

// IsValid is a convenience method that returns true if the raw input is valid
func (v *SegmentValidator) IsValid(from, to, leadTime string) bool {
	_, err := v.ValidateFields(from, to, leadTime)
	return err == nil
}

func mapFieldError(err error) error {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate segment: %w", err)
	}

	fe := verrs[0]
	switch fe.Field() {
	case "From", "To":
		return ErrEmptyLocation
	case "LeadTime":
		if fe.Tag() == "required" {
			return ErrEmptyLeadTime
		}
		return ErrInvalidLeadTime
	case "LeadTimeDays":
		return ErrInvalidLeadTime
	default:
		return fmt.Errorf("%s: failed %q validation", fe.Field(), fe.Tag())
	}
}
