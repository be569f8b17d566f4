// Package validation provides configuration and input validation utilities.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// inputValidate is shared by every caller; validator.Validate caches struct
// metadata and is safe for concurrent use.
var inputValidate *validator.Validate

func init() {
	inputValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages match what users typed.
	inputValidate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
}

// Struct validates s against its `validate` tags and returns a single error
// listing every failing field, or nil.
func Struct(s interface{}) error {
	err := inputValidate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("invalid inputs: %s", strings.Join(messages, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// ValidateTaxRate warns about tax rates above 100%, which the WACC formula
// accepts but which turn the debt tax shield into a cost.
func ValidateTaxRate(taxPercent float64) string {
	if taxPercent > 100 {
		return fmt.Sprintf("Tax rate %.2f%% exceeds 100%% - after-tax cost of debt is negative", taxPercent)
	}
	return ""
}

// ValidateMarketPremium warns when the market return is below the risk-free
// rate, i.e. the market risk premium is negative.
func ValidateMarketPremium(riskFreePercent, marketPercent float64) string {
	if marketPercent < riskFreePercent {
		return fmt.Sprintf("Market return %.2f%% is below the risk-free rate %.2f%% - market risk premium is negative",
			marketPercent, riskFreePercent)
	}
	return ""
}

// ValidateCapital warns when there is no capital, in which case WACC is undefined.
func ValidateCapital(equityValue, debtValue float64) string {
	if equityValue+debtValue == 0 {
		return "Equity and debt values are both zero - WACC is undefined"
	}
	return ""
}
