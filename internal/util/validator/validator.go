// Package validator wraps go-playground/validator with the rules used by the API.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gildecio/ezion/internal/util/cnpj"
)

type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the cnpj and decimal rules registered.
// Struct fields are reported by their json name.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

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

	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("cnpj", validateCNPJ)
	_ = v.RegisterValidation("dec_positive", validateDecimalPositive)
	_ = v.RegisterValidation("dec_nonneg", validateDecimalNonNegative)
	_ = v.RegisterValidation("dec_digits", validateDecimalDigits)

	return &Validator{v: v}
}

func (val *Validator) Struct(s any) error {
	return val.v.Struct(s)
}

// Fields turns a validation error into field -> message pairs for API responses.
// It returns nil when err does not come from the validator.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "cnpj":
		if err := cnpj.Check(fmt.Sprint(fe.Value())); err != nil {
			var verr *cnpj.ValidationError
			if errors.As(err, &verr) {
				return verr.Message()
			}
		}
		return "CNPJ inválido"
	case "max":
		return fmt.Sprintf("máximo de %s caracteres", fe.Param())
	case "len":
		return fmt.Sprintf("deve ter %s caracteres", fe.Param())
	case "email":
		return "e-mail inválido"
	case "oneof":
		return fmt.Sprintf("valor deve ser um de: %s", fe.Param())
	case "min":
		return fmt.Sprintf("mínimo de %s caracteres", fe.Param())
	case "gt":
		return fmt.Sprintf("deve ser maior que %s", fe.Param())
	case "dec_positive":
		return "deve ser maior que zero"
	case "dec_nonneg":
		return "não pode ser negativo"
	case "dec_digits":
		i, f, err := digitsParam(fe.Param())
		if err != nil {
			return "valor inválido"
		}
		return fmt.Sprintf("máximo de %d dígitos inteiros e %d decimais", i, f)
	default:
		return "valor inválido"
	}
}

func validateCNPJ(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return cnpj.Validate(field.String())
}

// decimalValue lets the rules below see decimals as their string form.
// An unset NullDecimal becomes nil so omitempty skips it.
func decimalValue(field reflect.Value) any {
	switch v := field.Interface().(type) {
	case decimal.Decimal:
		return v.String()
	case decimal.NullDecimal:
		if !v.Valid {
			return nil
		}
		return v.Decimal.String()
	}
	return nil
}

func parseDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	return d, err == nil
}

func validateDecimalPositive(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && d.IsPositive()
}

func validateDecimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && !d.IsNegative()
}

// validateDecimalDigits enforces "dec_digits=I_F": at most I integer and F fraction digits.
func validateDecimalDigits(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	if !ok {
		return false
	}

	intDigits, fracDigits, err := digitsParam(fl.Param())
	if err != nil {
		return false
	}

	if !d.Equal(d.Truncate(fracDigits)) {
		return false
	}
	integer := d.Abs().Truncate(0).String()
	return integer == "0" || int32(len(integer)) <= intDigits
}

func digitsParam(param string) (intDigits, fracDigits int32, err error) {
	_, err = fmt.Sscanf(param, "%d_%d", &intDigits, &fracDigits)
	return intDigits, fracDigits, err
}
