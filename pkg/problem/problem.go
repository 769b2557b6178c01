package problem

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	arrangementValidator "github.com/aretw0/goalstack/internal/validator"
	"github.com/aretw0/goalstack/pkg/domain"
)

const (
	// DefaultMaxSteps bounds a run when the document does not set max_steps.
	DefaultMaxSteps = 36

	// MaxStepsLimit is the largest bound a document may request.
	MaxStepsLimit = 100000
)

// Problem is a named planning task.
type Problem struct {
	Name        string             `json:"name" yaml:"name" mapstructure:"name" validate:"omitempty,problemname"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description" validate:"max=1024"`
	Start       domain.Arrangement `json:"start" yaml:"start" mapstructure:"start"`
	Goal        domain.Arrangement `json:"goal" yaml:"goal" mapstructure:"goal"`

	// MaxSteps is optional; nil means DefaultMaxSteps. Zero is a valid bound.
	MaxSteps *int `json:"max_steps,omitempty" yaml:"max_steps,omitempty" mapstructure:"max_steps" validate:"omitempty,gte=0,lte=100000"`
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)

// problemValidate is the validator instance for problem documents.
// Initialized in init() with custom validators.
var problemValidate *validator.Validate

func init() {
	problemValidate = validator.New()
	problemValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Names end up in URLs, redis keys and file names.
	_ = problemValidate.RegisterValidation("problemname", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
}

// Bound returns the effective step bound.
func (p *Problem) Bound() int {
	if p.MaxSteps == nil {
		return DefaultMaxSteps
	}
	return *p.MaxSteps
}

// WithMaxSteps sets an explicit bound and returns p.
func (p *Problem) WithMaxSteps(n int) *Problem {
	p.MaxSteps = &n
	return p
}

// Clone returns a deep copy.
func (p *Problem) Clone() *Problem {
	out := *p
	out.Start = p.Start.Clone()
	out.Goal = p.Goal.Clone()
	if p.MaxSteps != nil {
		n := *p.MaxSteps
		out.MaxSteps = &n
	}
	return &out
}

// Validate checks struct tags and then the arrangement rules.
// Every failure is reported; the result is nil or an *AggregateError.
func (p *Problem) Validate() error {
	var errs []error

	if err := problemValidate.Struct(p); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs = append(errs, &FieldError{
					Field:  fe.Field(),
					Reason: reason(fe),
				})
			}
		} else {
			errs = append(errs, err)
		}
	}

	_, startErr := arrangementValidator.ValidateArrangement("start", p.Start)
	if startErr != nil {
		errs = append(errs, &FieldError{Field: "start", Reason: startErr.Error(), Err: startErr})
	}
	_, goalErr := arrangementValidator.ValidateArrangement("goal", p.Goal)
	if goalErr != nil {
		errs = append(errs, &FieldError{Field: "goal", Reason: goalErr.Error(), Err: goalErr})
	}
	if startErr == nil && goalErr == nil {
		if err := arrangementValidator.ValidatePair(p.Start, p.Goal); err != nil {
			errs = append(errs, &FieldError{Field: "goal", Reason: err.Error(), Err: err})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "problemname":
		return "must start with a letter or digit and use only letters, digits, '.', '_' or '-' (max 64)"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed %q", fe.Tag())
}
