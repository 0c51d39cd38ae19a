package outcome

// Handler turns one class of responses into an Outcome. A returned error
// means the response could not be classified at all.
type Handler interface {
	Handle(statusCode int, body []byte) (Outcome, error)
}

type HandlerFunc func(statusCode int, body []byte) (Outcome, error)

func (f HandlerFunc) Handle(statusCode int, body []byte) (Outcome, error) {
	return f(statusCode, body)
}

// SuccessHandler reads the tax amount. A body that breaks the contract is
// surfaced as Unclassified with the cause attached.
type SuccessHandler struct{}

func (h *SuccessHandler) Handle(statusCode int, body []byte) (Outcome, error) {
	obj, err := decodeContract(taxResultContract, body)
	if err != nil {
		return Unclassified{
			StatusCode: statusCode,
			Cause:      &MalformedBodyError{StatusCode: statusCode, Cause: err},
		}, nil
	}
	amount, _ := firstOf(obj, "Amount", "amount").(float64)
	return Success{Amount: amount}, nil
}

type ServiceFailureHandler struct{}

func (h *ServiceFailureHandler) Handle(int, []byte) (Outcome, error) {
	return ServiceFailure{}, nil
}

// RejectionHandler reads the problem-details title. A missing body or title
// is an error, never an empty rejection.
type RejectionHandler struct{}

func (h *RejectionHandler) Handle(statusCode int, body []byte) (Outcome, error) {
	obj, err := decodeContract(problemDetailsContract, body)
	if err != nil {
		return nil, &MalformedBodyError{StatusCode: statusCode, Cause: err}
	}
	title, _ := firstOf(obj, "Title", "title").(string)
	return RequestRejected{Title: title}, nil
}
