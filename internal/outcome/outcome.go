// Package outcome classifies computation service responses into a closed set
// of results.
//
// Every status code maps to exactly one Outcome variant. Rules live in a
// Registry keyed by exact code and by status class, so new codes are added
// with Register without touching callers.
package outcome

// Outcome is implemented only by the variants in this package.
type Outcome interface {
	Kind() Kind
	outcome()
}

type Kind string

const (
	KindSuccess         Kind = "SUCCESS"
	KindServiceFailure  Kind = "SERVICE_FAILURE"
	KindRequestRejected Kind = "REQUEST_REJECTED"
	KindUnclassified    Kind = "UNCLASSIFIED"
)

type Success struct {
	Amount float64
}

type ServiceFailure struct{}

type RequestRejected struct {
	Title string
}

// Unclassified covers status codes with no rule and 2xx responses whose body
// could not be read. Cause is set in the latter case.
type Unclassified struct {
	StatusCode int
	Cause      error
}

func (Success) Kind() Kind         { return KindSuccess }
func (ServiceFailure) Kind() Kind  { return KindServiceFailure }
func (RequestRejected) Kind() Kind { return KindRequestRejected }
func (Unclassified) Kind() Kind    { return KindUnclassified }

func (Success) outcome()         {}
func (ServiceFailure) outcome()  {}
func (RequestRejected) outcome() {}
func (Unclassified) outcome()    {}
