package model

type SimulationInput struct {
	Wage       float64 `json:"wage"`
	Year       int     `json:"year"`
	NbAdults   int     `json:"nbAdults"`
	NbChildren int     `json:"nbChildren"`
}

// DefaultInput is the form state shown before the user edits anything.
func DefaultInput() SimulationInput {
	return SimulationInput{
		Year:       2019,
		NbAdults:   1,
		NbChildren: 0,
		Wage:       40000,
	}
}

// Years offered by the simulation form.
var Years = []int{2019, 2020}

type TaxComputationRequest struct {
	Wage                    float64              `json:"Wage"`
	Year                    int                  `json:"Year"`
	TaxHouseholdComposition HouseholdComposition `json:"TaxHouseholdComposition"`
}

type HouseholdComposition struct {
	NbAdults   int `json:"NbAdults"`
	NbChildren int `json:"NbChildren"`
}
