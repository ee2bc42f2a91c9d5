package validator

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/go-playground/validator"
)

var (
	global   *validator.Validate
	otpRegex = regexp.MustCompile(`^[0-9]{6}$`)
)

const (
	ErrInvalidFormat      = "Invalid format"
	ErrFieldRequired      = "Field is required"
	ErrFieldExceedsMaxLen = "Field exceeds maximum length"
	ErrFieldBelowMinLen   = "Field is below minimum length"
	ErrFieldExceedsMaxVal = "Field exceeds maximum value"
	ErrFieldBelowMinVal   = "Field is below minimum value"
	ErrUnknownValidation  = "Unknown validation error"
)

func init() {
	SetValidator(New())
}

func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("otp", validateOTP)
	_ = v.RegisterValidation("meridiem", validateMeridiem)
	_ = v.RegisterValidation("clockhour", validateClockHour)
	_ = v.RegisterValidation("positive", validatePositiveInt)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

func validateOTP(fl validator.FieldLevel) bool {
	return otpRegex.MatchString(fl.Field().String())
}

func validateMeridiem(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "AM" || s == "PM"
}

// validateClockHour accepts a 12-hour clock hour, "1" through "12", with or
// without a leading zero.
func validateClockHour(fl validator.FieldLevel) bool {
	h, err := strconv.Atoi(fl.Field().String())
	return err == nil && h >= 1 && h <= 12
}

func validatePositiveInt(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(int)
	return ok && val > 0
}

func Validate(ctx context.Context, structure any) error {
	return parseValidationErrors(Validator().StructCtx(ctx, structure))
}

func parseValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(vErrors) == 0 {
		return nil
	}
	ve := vErrors[0]
	var msg string
	switch ve.Tag() {
	case "required":
		msg = ErrFieldRequired
	case "max":
		msg = ErrFieldExceedsMaxLen
	case "min":
		msg = ErrFieldBelowMinLen
	case "lt", "lte":
		msg = ErrFieldExceedsMaxVal
	case "gt", "gte":
		msg = ErrFieldBelowMinVal
	case "otp":
		msg = "OTP must be exactly 6 digits"
	case "meridiem":
		msg = "Time type must be AM or PM"
	case "clockhour":
		msg = "Hour must be between 1 and 12"
	case "positive":
		msg = "Value must be positive"
	case "oneof":
		msg = ErrInvalidFormat
	case "email":
		msg = ErrInvalidFormat
	default:
		msg = ErrUnknownValidation
	}
	return errors.New(msg + ": " + ve.Namespace())
}
