package workflow

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/volunteer-board/pkg/core/model"
)

// DateLayout is the layout of event start and end dates
const DateLayout = "2006-01-02"

const (
	eventTagTag   = "eventtag"
	isoDateTag    = "isodate"
	singleLineTag = "singleline"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(eventTagTag, func(fl validator.FieldLevel) bool {
		return model.IsKnownTag(fl.Field().String())
	})
	_ = validate.RegisterValidation(isoDateTag, func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation(singleLineTag, func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
}

// validateStruct runs struct validation and converts failures into a ValidationError.
// A missing required field takes precedence and reports ErrMissingFields.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	cause := ErrInvalidInput
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			cause = ErrMissingFields
		}
		fields = append(fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return invalid(cause, fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case isoDateTag:
		return "must be a date in YYYY-MM-DD format"
	case singleLineTag:
		return "must not contain line breaks"
	case eventTagTag:
		return fmt.Sprintf("unknown tag %q", fe.Value())
	case "max":
		if fe.Kind() == reflect.Slice {
			return "at most " + fe.Param() + " tags allowed"
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "is invalid"
}

// startOfDay truncates t to midnight in its own location
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseDate parses a YYYY-MM-DD date in loc
func parseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}
