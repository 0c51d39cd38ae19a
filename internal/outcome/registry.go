package outcome

import "net/http"

// Registry maps status codes to handlers. Exact codes win over status
// classes; anything unmatched is Unclassified. Register everything before
// the registry is shared between goroutines.
type Registry struct {
	codes   map[int]Handler
	classes map[int]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		codes:   map[int]Handler{},
		classes: map[int]Handler{},
	}
}

// DefaultRegistry holds the rules of the tax computation service.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterClass(2, &SuccessHandler{})
	r.Register(http.StatusBadRequest, &RejectionHandler{})
	r.Register(http.StatusInternalServerError, &ServiceFailureHandler{})
	return r
}

func (r *Registry) Register(code int, h Handler) {
	r.codes[code] = h
}

// RegisterClass binds a handler to every code in class*100 .. class*100+99.
func (r *Registry) RegisterClass(class int, h Handler) {
	r.classes[class] = h
}

func (r *Registry) Get(statusCode int) (Handler, bool) {
	if h, ok := r.codes[statusCode]; ok {
		return h, true
	}
	h, ok := r.classes[statusCode/100]
	return h, ok
}

func (r *Registry) Classify(statusCode int, body []byte) (Outcome, error) {
	h, ok := r.Get(statusCode)
	if !ok {
		return Unclassified{StatusCode: statusCode}, nil
	}
	return h.Handle(statusCode, body)
}

var defaultRegistry = DefaultRegistry()

// Classify uses the default registry.
func Classify(statusCode int, body []byte) (Outcome, error) {
	return defaultRegistry.Classify(statusCode, body)
}
