package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/Conversly/carteira-api/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	idPattern    = regexp.MustCompile(`^\d+$`)
	registerOnce sync.Once
)

// RegisterValidators makes validator errors report JSON field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// ParseID validates a path identifier: digits only, positive, fits int64.
func ParseID(raw string) (int64, error) {
	if !idPattern.MatchString(raw) {
		return 0, types.NewValidationError("id", "must be a positive integer, got %q", raw)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, types.NewValidationError("id", "out of range: %s", raw)
	}
	if id <= 0 {
		return 0, types.NewValidationError("id", "must be a positive integer, got %q", raw)
	}
	return id, nil
}

// BindJSON decodes and tag-validates the request body into dst. Every
// failure is returned as a *types.ValidationError.
func BindJSON(c *gin.Context, dst interface{}) error {
	RegisterValidators()
	if err := c.ShouldBindJSON(dst); err != nil {
		return toValidationError(err)
	}
	return nil
}

// ValidateStruct runs the binding tags of obj outside of a request, so other
// entry points enforce the same rules as the HTTP handlers.
func ValidateStruct(obj interface{}) error {
	RegisterValidators()
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return toValidationError(err)
	}
	return nil
}

// ValidateAmount checks that a monetary or quantity value is present, positive
// and fits the stored precision. The value is never formatted, since a large
// exponent would expand into that many digits.
func ValidateAmount(field string, a *types.Amount) (decimal.Decimal, error) {
	if a == nil {
		return decimal.Zero, types.NewValidationError(field, "is required")
	}
	if !a.IsPositive() {
		return decimal.Zero, types.NewValidationError(field, "must be positive")
	}
	if !types.AmountFits(a.Decimal) {
		return decimal.Zero, types.NewValidationError(field,
			"must have at most %d integer digits and %d decimal places",
			types.AmountMaxIntegerDigits, types.AmountMaxScale)
	}
	return a.Decimal, nil
}

func toValidationError(err error) *types.ValidationError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.Is(err, io.EOF):
		return types.NewValidationError("", "request body is required")
	case errors.As(err, &syntaxErr):
		return types.NewValidationError("", "malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return types.NewValidationError(typeErr.Field, "expected %s, got %s", jsonKind(typeErr.Type), typeErr.Value)
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		fe := fieldErrs[0]
		return types.NewValidationError(fe.Field(), "%s", describeTag(fe))
	default:
		return types.NewValidationError("", "%s", err.Error())
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Ptr:
		return jsonKind(t.Elem())
	default:
		return "object"
	}
}
