package services

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// ErrValidation classifies missing or malformed input.
var ErrValidation = errors.New("validation failed")

// ValidationError lists the offending fields by their JSON name.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(names, ", "))
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors runs struct validation and collects failures into fields.
func fieldErrors(v *validator.Validate, s any, fields map[string]string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errors.Wrap(err, "failed to validate input")
	}
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return nil
}

// requireFloat coerces a present numeric (or numeric string) value.
// Booleans and non-finite values are rejected.
func requireFloat(fields map[string]string, name string, value any) float64 {
	if value == nil {
		fields[name] = fmt.Sprintf("Field '%s' is required", name)
		return 0
	}
	if _, ok := value.(bool); ok {
		fields[name] = fmt.Sprintf("Field '%s' must be a number", name)
		return 0
	}
	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		fields[name] = fmt.Sprintf("Field '%s' must be a number", name)
		return 0
	}
	return f
}

// requireInt coerces a present integer value. Strings are read in base 10
// and fractions are truncated; values outside the int range are rejected.
func requireInt(fields map[string]string, name string, value any) int {
	if value == nil {
		fields[name] = fmt.Sprintf("Field '%s' is required", name)
		return 0
	}
	n, ok := toInt(value)
	if !ok {
		fields[name] = fmt.Sprintf("Field '%s' must be an integer", name)
		return 0
	}
	return n
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case bool:
		return 0, false
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 0); err == nil {
			return int(n), true
		}
		f, err := strconv.ParseFloat(s, 64)
		// ParseFloat also reads hexadecimal mantissas.
		if err != nil || strings.ContainsAny(s, "xX") {
			return 0, false
		}
		return truncate(f)
	case float64:
		return truncate(v)
	case float32:
		return truncate(float64(v))
	default:
		n, err := cast.ToIntE(value)
		return n, err == nil
	}
}

// truncate drops the fraction of f when the result fits in an int.
func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	// float64(math.MaxInt) rounds up to 2^63, so the upper bound is exclusive.
	if t < math.MinInt || t >= math.MaxInt {
		return 0, false
	}
	return int(t), true
}
