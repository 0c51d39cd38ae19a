package present

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"tax-simulation/internal/model"
	"tax-simulation/internal/outcome"
)

func TestPresentSuccess(t *testing.T) {
	o, err := outcome.Classify(200, []byte(`{"amount":7000}`))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	n, chart := Present(o, 40000)

	if n.Severity != model.SeveritySuccess {
		t.Fatalf("expected success severity, got %s", n.Severity)
	}
	if n.Summary != "Calculation done" || n.Detail != "Calculation succeeded" {
		t.Fatalf("unexpected notification %+v", n)
	}
	if n.DurationMs != 5000 {
		t.Fatalf("expected duration 5000, got %d", n.DurationMs)
	}
	want := []model.ChartDatum{
		{Label: "remaining income", Value: 33000},
		{Label: "tax", Value: 7000},
	}
	if !reflect.DeepEqual(chart, want) {
		t.Fatalf("expected chart %v, got %v", want, chart)
	}
	if chart[0].Value+chart[1].Value != 40000 {
		t.Fatalf("chart values should sum to wage")
	}
}

func TestPresentServiceFailure(t *testing.T) {
	o, _ := outcome.Classify(500, nil)

	n, chart := Present(o, 40000)

	if chart != nil {
		t.Fatalf("expected no chart, got %v", chart)
	}
	want := model.Notification{
		Severity:   model.SeverityError,
		Summary:    "Calculation failed",
		Detail:     "500 — computation service error",
		DurationMs: 5000,
	}
	if n != want {
		t.Fatalf("expected %+v, got %+v", want, n)
	}
}

func TestPresentRequestRejected(t *testing.T) {
	o, err := outcome.Classify(400, []byte(`{"title":"Salary must be positive"}`))
	if err != nil {
		t.Fatalf("classify: %v", err)
	}

	n, chart := Present(o, 40000)

	if chart != nil {
		t.Fatalf("expected no chart, got %v", chart)
	}
	if n.Severity != model.SeverityError || n.Detail != "Salary must be positive" {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestPresentUnclassifiedIsNeverBlank(t *testing.T) {
	o, _ := outcome.Classify(404, nil)

	n, chart := Present(o, 40000)

	if chart != nil {
		t.Fatalf("expected no chart, got %v", chart)
	}
	if n.Severity != model.SeverityError || n.Summary == "" || n.DurationMs != 5000 {
		t.Fatalf("unexpected notification %+v", n)
	}
	if n.Detail != "unexpected response status 404" {
		t.Fatalf("expected status in detail, got %q", n.Detail)
	}
}

func TestPresentMalformedSuccess(t *testing.T) {
	o, _ := outcome.Classify(200, []byte(`{}`))

	n, chart := Present(o, 40000)

	if chart != nil {
		t.Fatalf("expected no chart, got %v", chart)
	}
	if n.Detail != "malformed response from computation service (status 200)" {
		t.Fatalf("unexpected detail %q", n.Detail)
	}
}

func TestPresentIsIdempotent(t *testing.T) {
	outcomes := []outcome.Outcome{
		outcome.Success{Amount: 1234.5},
		outcome.ServiceFailure{},
		outcome.RequestRejected{Title: "nope"},
		outcome.Unclassified{StatusCode: 302},
	}
	for _, o := range outcomes {
		n1, c1 := Present(o, 50000)
		n2, c2 := Present(o, 50000)
		if n1 != n2 || !reflect.DeepEqual(c1, c2) {
			t.Fatalf("Present(%#v) not idempotent", o)
		}
	}
}

func TestRejection(t *testing.T) {
	n := Rejection([]model.FieldError{
		{Field: model.FieldWage, Message: "wage must be positive"},
		{Field: model.FieldNbAdults, Message: "1 or 2 adults only"},
	})

	if n.Severity != model.SeverityError || n.Summary != "Invalid input" {
		t.Fatalf("unexpected notification %+v", n)
	}
	if n.Detail != "wage must be positive; 1 or 2 adults only" {
		t.Fatalf("unexpected detail %q", n.Detail)
	}
}

func TestFailure(t *testing.T) {
	_, err := outcome.Classify(400, nil)
	n := Failure(fmt.Errorf("classify: %w", err))
	if n.Detail != "malformed response from computation service (status 400)" {
		t.Fatalf("unexpected detail %q", n.Detail)
	}

	n = Failure(errors.New("dial tcp: connection refused"))
	if n.Detail != "computation service unavailable" || n.Severity != model.SeverityError {
		t.Fatalf("unexpected notification %+v", n)
	}
}
