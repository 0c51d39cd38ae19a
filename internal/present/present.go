// Package present turns classified outcomes into user notifications and
// chart values.
package present

import (
	"errors"
	"fmt"
	"strings"

	"tax-simulation/internal/model"
	"tax-simulation/internal/outcome"
)

const DurationMs = 5000

const (
	LabelRemainingIncome = "remaining income"
	LabelTax             = "tax"
)

const (
	summaryDone     = "Calculation done"
	summaryFailed   = "Calculation failed"
	summaryInvalid  = "Invalid input"
	summaryReplaced = "Calculation superseded"
)

// Present builds the notification for o. Chart data is returned only for a
// Success and always sums to wage.
func Present(o outcome.Outcome, wage float64) (model.Notification, []model.ChartDatum) {
	switch v := o.(type) {
	case outcome.Success:
		return notify(model.SeveritySuccess, summaryDone, "Calculation succeeded"), []model.ChartDatum{
			{Label: LabelRemainingIncome, Value: wage - v.Amount},
			{Label: LabelTax, Value: v.Amount},
		}
	case outcome.ServiceFailure:
		return failed("500 — computation service error"), nil
	case outcome.RequestRejected:
		return failed(v.Title), nil
	case outcome.Unclassified:
		if v.Cause != nil {
			return failed(fmt.Sprintf("malformed response from computation service (status %d)", v.StatusCode)), nil
		}
		return failed(fmt.Sprintf("unexpected response status %d", v.StatusCode)), nil
	default:
		return failed(fmt.Sprintf("unknown outcome %T", o)), nil
	}
}

// Rejection reports input that failed validation.
func Rejection(errs []model.FieldError) model.Notification {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return notify(model.SeverityError, summaryInvalid, strings.Join(msgs, "; "))
}

// Failure reports a submission that produced no classifiable response.
func Failure(err error) model.Notification {
	var mbe *outcome.MalformedBodyError
	if errors.As(err, &mbe) {
		return failed(fmt.Sprintf("malformed response from computation service (status %d)", mbe.StatusCode))
	}
	return failed("computation service unavailable")
}

// Superseded reports a submission replaced by a newer one before it
// completed. It is returned to the caller but never sent to the sink.
func Superseded() model.Notification {
	return notify(model.SeverityInfo, summaryReplaced, "a newer simulation replaced this one")
}

func failed(detail string) model.Notification {
	return notify(model.SeverityError, summaryFailed, detail)
}

func notify(sev model.Severity, summary, detail string) model.Notification {
	return model.Notification{
		Severity:   sev,
		Summary:    summary,
		Detail:     detail,
		DurationMs: DurationMs,
	}
}
