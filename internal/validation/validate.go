package validation

import "tax-simulation/internal/model"

// Rule is one range constraint on a simulation input field.
type Rule struct {
	Field   string
	Code    string
	Message string
	Valid   func(in model.SimulationInput) bool
}

var rules = []Rule{
	{
		Field:   model.FieldWage,
		Code:    "INVALID_WAGE",
		Message: "wage must be positive",
		Valid:   func(in model.SimulationInput) bool { return in.Wage >= 0 },
	},
	{
		Field:   model.FieldYear,
		Code:    "INVALID_YEAR",
		Message: "year must be positive",
		Valid:   func(in model.SimulationInput) bool { return in.Year >= 0 },
	},
	{
		Field:   model.FieldNbAdults,
		Code:    "INVALID_ADULTS",
		Message: "1 or 2 adults only",
		Valid:   func(in model.SimulationInput) bool { return in.NbAdults >= 1 && in.NbAdults <= 2 },
	},
	{
		Field:   model.FieldNbChildren,
		Code:    "INVALID_CHILDREN",
		Message: "between 0 and 100 children",
		Valid:   func(in model.SimulationInput) bool { return in.NbChildren >= 0 && in.NbChildren <= 100 },
	},
}

// Validate evaluates every rule and returns one FieldError per violation.
// An empty result means the input may be submitted.
func Validate(in model.SimulationInput) []model.FieldError {
	var errs []model.FieldError
	for _, r := range rules {
		if r.Valid(in) {
			continue
		}
		errs = append(errs, model.FieldError{
			Field:   r.Field,
			Code:    r.Code,
			Message: r.Message,
		})
	}
	return errs
}

// Rules returns a copy of the constraint table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
