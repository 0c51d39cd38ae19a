// Package mapper converts form input into the computation service wire shape.
package mapper

import "tax-simulation/internal/model"

// ToRequest copies a validated input into a TaxComputationRequest.
// Callers must run validation.Validate first; nothing is checked here.
func ToRequest(in model.SimulationInput) model.TaxComputationRequest {
	return model.TaxComputationRequest{
		Wage: in.Wage,
		Year: in.Year,
		TaxHouseholdComposition: model.HouseholdComposition{
			NbAdults:   in.NbAdults,
			NbChildren: in.NbChildren,
		},
	}
}
