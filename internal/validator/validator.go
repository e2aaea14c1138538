// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var lastDigitsRegex = regexp.MustCompile(`^[0-9]{4}$`)

// Register registers all custom validators with the Gin binding engine.
// Decimal fields are validated as float64, so numeric tags such as gt=0
// work on money amounts.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("transaction_status", validateTransactionStatus)
		_ = v.RegisterValidation("recurring_period", validateRecurringPeriod)
		_ = v.RegisterValidation("type_filter", validateTypeFilter)
		_ = v.RegisterValidation("bank_account_type", validateBankAccountType)
		_ = v.RegisterValidation("card_theme", validateCardTheme)
		_ = v.RegisterValidation("goal_status", validateGoalStatus)
		_ = v.RegisterValidation("last_digits", validateLastDigits)
		_ = v.RegisterValidation("sort_field", validateSortField)
		_ = v.RegisterValidation("sort_direction", validateSortDirection)
	}
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func oneOf(fl validator.FieldLevel, allowed ...string) bool {
	value := fl.Field().String()
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return oneOf(fl, "income", "expense")
}

func validateTransactionStatus(fl validator.FieldLevel) bool {
	return oneOf(fl, "completed", "pending", "cancelled")
}

func validateRecurringPeriod(fl validator.FieldLevel) bool {
	return oneOf(fl, "monthly", "weekly", "yearly")
}

func validateTypeFilter(fl validator.FieldLevel) bool {
	return oneOf(fl, "all", "income", "expense")
}

func validateBankAccountType(fl validator.FieldLevel) bool {
	return oneOf(fl, "checking", "savings", "investment")
}

func validateCardTheme(fl validator.FieldLevel) bool {
	return oneOf(fl, "black", "lime", "white")
}

func validateGoalStatus(fl validator.FieldLevel) bool {
	return oneOf(fl, "active", "completed", "paused", "cancelled")
}

func validateLastDigits(fl validator.FieldLevel) bool {
	return lastDigitsRegex.MatchString(fl.Field().String())
}

func validateSortField(fl validator.FieldLevel) bool {
	return oneOf(fl, "date", "amount", "description", "category")
}

func validateSortDirection(fl validator.FieldLevel) bool {
	return oneOf(fl, "asc", "desc")
}
