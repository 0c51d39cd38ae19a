package validation

import (
	"math"
	"sort"
	"testing"

	"tax-simulation/internal/model"
)

func TestValidateAcceptsInRangeInputs(t *testing.T) {
	inputs := []model.SimulationInput{
		model.DefaultInput(),
		{Wage: 0, Year: 0, NbAdults: 1, NbChildren: 0},
		{Wage: 1e9, Year: 2020, NbAdults: 2, NbChildren: 100},
		{Wage: math.MaxFloat64, Year: math.MaxInt32, NbAdults: 2, NbChildren: 3},
	}
	for _, in := range inputs {
		if errs := Validate(in); len(errs) != 0 {
			t.Fatalf("Validate(%+v) = %v, want no errors", in, errs)
		}
	}
}

func TestValidateSingleViolation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.SimulationInput)
		field   string
		message string
	}{
		{"negative wage", func(in *model.SimulationInput) { in.Wage = -1 }, model.FieldWage, "wage must be positive"},
		{"negative year", func(in *model.SimulationInput) { in.Year = -2 }, model.FieldYear, "year must be positive"},
		{"no adults", func(in *model.SimulationInput) { in.NbAdults = 0 }, model.FieldNbAdults, "1 or 2 adults only"},
		{"three adults", func(in *model.SimulationInput) { in.NbAdults = 3 }, model.FieldNbAdults, "1 or 2 adults only"},
		{"negative children", func(in *model.SimulationInput) { in.NbChildren = -1 }, model.FieldNbChildren, "between 0 and 100 children"},
		{"too many children", func(in *model.SimulationInput) { in.NbChildren = 101 }, model.FieldNbChildren, "between 0 and 100 children"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := model.DefaultInput()
			tt.mutate(&in)
			errs := Validate(in)
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
			}
			if errs[0].Field != tt.field {
				t.Fatalf("expected field %s, got %s", tt.field, errs[0].Field)
			}
			if errs[0].Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, errs[0].Message)
			}
		})
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	in := model.SimulationInput{Wage: -10, Year: -1, NbAdults: 5, NbChildren: 200}

	errs := Validate(in)

	var got []string
	for _, e := range errs {
		got = append(got, e.Message)
	}
	sort.Strings(got)
	want := []string{
		"1 or 2 adults only",
		"between 0 and 100 children",
		"wage must be positive",
		"year must be positive",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %q at %d, got %q", want[i], i, got[i])
		}
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	rs := Rules()
	rs[0].Message = "changed"
	if Rules()[0].Message == "changed" {
		t.Fatal("Rules should not expose the internal table")
	}
}
