package wizard

import "fmt"

// ValidationError reports a user-correctable problem with one field.
// It never aborts the session; the failed action leaves state untouched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ExpenseField names the field of an expense row in validation errors.
func ExpenseField(id int) string {
	return fmt.Sprintf("expense #%d", id)
}

// FieldIncome is the field name used for income validation errors.
const FieldIncome = "income"

// FieldExpenses is the field name used when the expense list is empty.
const FieldExpenses = "expenses"
