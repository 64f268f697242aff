package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/go-playground/validator/v10"
)

// CustomValidator plugs go-playground/validator into echo.Context.Validate.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(errs.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, errs.FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}
