package definition

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/meenmo/finsec/accrual"
	"github.com/meenmo/finsec/calendar"
	"github.com/meenmo/finsec/daycount"
	"github.com/meenmo/finsec/period"
	"github.com/meenmo/finsec/utils"
)

// ErrInvalidBook wraps every validation failure.
var ErrInvalidBook = errors.New("invalid book")

var validate = newValidator()

var customValidations = []struct {
	tag string
	fn  validator.Func
}{
	{"date", validateDate},
	{"tenor", validateTenor},
	{"end", validateEnd},
	{"daycount", validateDayCount},
	{"calendar", validateCalendar},
	{"bdc", validateConvention},
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	for _, c := range customValidations {
		if err := v.RegisterValidation(c.tag, c.fn); err != nil {
			panic(fmt.Sprintf("definition: register %q validation: %v", c.tag, err))
		}
	}
	return v
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := utils.ParseDate(fl.Field().String())
	return err == nil
}

func validateTenor(fl validator.FieldLevel) bool {
	_, err := period.Parse(fl.Field().String())
	return err == nil
}

func validateEnd(fl validator.FieldLevel) bool {
	_, err := accrual.ParseEnd(fl.Field().String())
	return err == nil
}

func validateDayCount(fl validator.FieldLevel) bool {
	_, err := daycount.Parse(fl.Field().String())
	return err == nil
}

func validateCalendar(fl validator.FieldLevel) bool {
	_, err := calendar.ParseID(fl.Field().String())
	return err == nil
}

func validateConvention(fl validator.FieldLevel) bool {
	_, err := calendar.ParseConvention(fl.Field().String())
	return err == nil
}

// Validate checks field formats and cross-field rules of b.
func (b *Book) Validate() error {
	if err := validate.Struct(b); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("definition.Validate: %s fails %q (%d problems): %w",
				first.Namespace(), first.Tag(), len(verrs), ErrInvalidBook)
		}
		return fmt.Errorf("definition.Validate: %w: %v", ErrInvalidBook, err)
	}

	seen := make(map[string]bool)
	for _, name := range b.names() {
		if seen[name] {
			return fmt.Errorf("definition.Validate: duplicate instrument %q: %w", name, ErrInvalidBook)
		}
		seen[name] = true
	}
	return nil
}

func (b *Book) names() []string {
	var out []string
	for i, l := range b.Legs {
		out = append(out, legName(l, i))
	}
	for _, bd := range b.Bonds {
		out = append(out, bd.Name)
	}
	for _, s := range b.Swaps {
		out = append(out, s.Name)
	}
	for _, o := range b.OIS {
		out = append(out, o.Name)
	}
	return out
}

func legName(l LegDef, i int) string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("leg-%d", i)
}
