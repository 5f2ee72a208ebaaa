package validators

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dwelli/backend/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts go-playground/validator to echo.Validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds a validator with the domain tags registered
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("property_type", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.EqualFold(s, models.AnyPropertyType) {
			return true
		}
		_, ok := models.ParsePropertyType(s)
		return ok
	})
	_ = v.RegisterValidation("document_category", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseDocumentCategory(fl.Field().String())
		return ok
	})
	return &CustomValidator{validator: v}
}

// Validate runs struct validation and turns failures into a 400
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return echo.NewHTTPError(http.StatusBadRequest, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be less than %s", fe.Field(), fe.Param())
	case "property_type":
		return fmt.Sprintf("%s must be one of APARTMENT, HOUSE, STUDIO or ANY", fe.Field())
	case "document_category":
		return fmt.Sprintf("%s must be one of ID, REFERENCE, PAYSLIP or OTHER", fe.Field())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}
