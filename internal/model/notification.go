package model

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

type Notification struct {
	Severity   Severity `json:"severity"`
	Summary    string   `json:"summary"`
	Detail     string   `json:"detail"`
	DurationMs int      `json:"durationMs"`
}

type ChartDatum struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
