package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RequiredText rejects empty (after trimming) values.
func RequiredText(field, value string) error {
	if err := validate.Var(strings.TrimSpace(value), "required"); err != nil {
		return fmt.Errorf("%s must not be empty", field)
	}
	return nil
}

// Email rejects values that are not a plausible e-mail address.
func Email(field, value string) error {
	if err := validate.Var(strings.TrimSpace(value), "required,email"); err != nil {
		return fmt.Errorf("%s must be a valid e-mail address", field)
	}
	return nil
}

// PositiveQuantity rejects values that are not whole numbers greater
// than zero.
func PositiveQuantity(field, value string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("%s must be a whole number", field)
	}
	if err := validate.Var(n, "gt=0"); err != nil {
		return fmt.Errorf("%s must be positive", field)
	}
	return nil
}

// Price rejects values that are not finite non-negative numbers.
func Price(field, value string) error {
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("%s must be a number", field)
	}
	if err := validate.Var(n, "gte=0"); err != nil {
		return fmt.Errorf("%s must not be negative", field)
	}
	return nil
}

// KnownID rejects values that do not name an id present in the loaded
// option set, the referential check for foreign-key cells.
func KnownID(field, value string, known func(int64) bool) error {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fmt.Errorf("%s must be an id", field)
	}
	if !known(id) {
		return fmt.Errorf("%s %d is not in the loaded list", field, id)
	}
	return nil
}

// TrimSpace is the default Normalize hook for editors.
func TrimSpace(_, value string) string {
	return strings.TrimSpace(value)
}
