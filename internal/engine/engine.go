package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tax-simulation/internal/mapper"
	"tax-simulation/internal/model"
	"tax-simulation/internal/outcome"
	"tax-simulation/internal/present"
	"tax-simulation/internal/taxclient"
	"tax-simulation/internal/validation"
)

type Phase string

const (
	PhaseIdle        Phase = "IDLE"
	PhaseValidating  Phase = "VALIDATING"
	PhaseRejected    Phase = "REJECTED"
	PhaseSubmitting  Phase = "SUBMITTING"
	PhaseAwaiting    Phase = "AWAITING"
	PhaseClassifying Phase = "CLASSIFYING"
	PhasePresenting  Phase = "PRESENTING"
)

// Computer sends a request to the tax computation service.
type Computer interface {
	Compute(ctx context.Context, req model.TaxComputationRequest) (taxclient.Response, error)
}

type Classifier interface {
	Classify(statusCode int, body []byte) (outcome.Outcome, error)
}

// Notifier receives the notification of every submission that is still
// current when it completes.
type Notifier func(model.Notification)

type Result struct {
	SubmissionID string                `json:"submission_id"`
	Phase        Phase                 `json:"phase"`
	Input        model.SimulationInput `json:"input"`
	StatusCode   int                   `json:"status_code,omitempty"`
	Outcome      outcome.Kind          `json:"outcome,omitempty"`
	Notification model.Notification    `json:"notification"`
	Chart        []model.ChartDatum    `json:"chart,omitempty"`
	FieldErrors  []model.FieldError    `json:"field_errors,omitempty"`
	StartedAt    string                `json:"started_at"`
	CompletedAt  string                `json:"completed_at"`
	DurationMs   int64                 `json:"duration_ms"`
	Superseded   bool                  `json:"superseded,omitempty"`
}

type Controller struct {
	computer   Computer
	classifier Classifier
	notify     Notifier
	log        zerolog.Logger

	// notifyMu orders sink deliveries; it is taken before mu.
	notifyMu sync.Mutex

	mu      sync.Mutex
	current uuid.UUID
	cancel  context.CancelFunc
	phase   Phase
	last    *Result
}

type Option func(*Controller)

func WithClassifier(cl Classifier) Option {
	return func(c *Controller) { c.classifier = cl }
}

func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notify = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func New(computer Computer, opts ...Option) *Controller {
	c := &Controller{
		computer:   computer,
		classifier: outcome.DefaultRegistry(),
		log:        zerolog.Nop(),
		phase:      PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notify == nil {
		c.notify = c.logNotification
	}
	return c
}

// Validate runs the input rules without submitting anything.
func (c *Controller) Validate(in model.SimulationInput) []model.FieldError {
	return validation.Validate(in)
}

// Submit runs one submission to completion. Starting a submission cancels
// the one in flight; a submission that is no longer current when it
// completes comes back with Superseded set and is neither stored nor
// notified.
func (c *Controller) Submit(ctx context.Context, in model.SimulationInput) Result {
	start := time.Now()
	id := uuid.New()
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.current = id
	c.cancel = cancel
	c.phase = PhaseValidating
	c.mu.Unlock()

	log := c.log.With().Str("submission_id", id.String()).Logger()
	res := Result{SubmissionID: id.String(), Input: in}

	if errs := validation.Validate(in); len(errs) > 0 {
		log.Debug().Int("violations", len(errs)).Msg("input rejected")
		res.FieldErrors = errs
		res.Notification = present.Rejection(errs)
		return c.finish(id, PhaseRejected, res, start, log)
	}

	c.advance(id, PhaseSubmitting)
	req := mapper.ToRequest(in)

	c.advance(id, PhaseAwaiting)
	resp, err := c.computer.Compute(subCtx, req)
	if err != nil {
		log.Warn().Err(err).Msg("tax computation request failed")
		res.Notification = present.Failure(err)
		return c.finish(id, PhasePresenting, res, start, log)
	}
	res.StatusCode = resp.StatusCode

	c.advance(id, PhaseClassifying)
	o, err := c.classifier.Classify(resp.StatusCode, resp.Body)
	if err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Msg("response could not be classified")
		res.Notification = present.Failure(err)
		return c.finish(id, PhasePresenting, res, start, log)
	}
	if u, ok := o.(outcome.Unclassified); ok {
		log.Warn().Err(u.Cause).Int("status", u.StatusCode).Msg("unclassified response")
	}
	res.Outcome = o.Kind()

	c.advance(id, PhasePresenting)
	res.Notification, res.Chart = present.Present(o, in.Wage)
	return c.finish(id, PhasePresenting, res, start, log)
}

// Current returns the result of the latest completed current submission.
func (c *Controller) Current() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Result{}, false
	}
	return *c.last, true
}

// Phase reports where the current submission is; PhaseIdle when none is in
// flight.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) advance(id uuid.UUID, p Phase) {
	c.mu.Lock()
	if c.current == id {
		c.phase = p
	}
	c.mu.Unlock()
}

func (c *Controller) finish(id uuid.UUID, terminal Phase, res Result, start time.Time, log zerolog.Logger) Result {
	elapsed := time.Since(start)
	now := time.Now().UTC()
	res.Phase = terminal
	res.StartedAt = now.Add(-elapsed).Format(time.RFC3339)
	res.CompletedAt = now.Format(time.RFC3339)
	res.DurationMs = elapsed.Milliseconds()

	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if c.current != id {
		c.mu.Unlock()
		log.Debug().Msg("submission superseded, result dropped")
		return superseded(res)
	}
	stored := res
	c.last = &stored
	c.cancel = nil
	c.phase = PhaseIdle
	c.mu.Unlock()

	log.Info().
		Str("phase", string(terminal)).
		Str("outcome", string(res.Outcome)).
		Int("status", res.StatusCode).
		Int64("duration_ms", res.DurationMs).
		Msg("submission completed")
	// A newer submission cannot finish while notifyMu is held, so the sink
	// sees completions in submission order.
	c.notify(res.Notification)
	return res
}

// superseded replaces whatever the dropped submission produced; its chart
// and notification describe a result nobody should act on.
func superseded(res Result) Result {
	res.Superseded = true
	res.Chart = nil
	res.Notification = present.Superseded()
	return res
}

func (c *Controller) logNotification(n model.Notification) {
	ev := c.log.Info()
	if n.Severity == model.SeverityError {
		ev = c.log.Warn()
	}
	ev.Str("severity", string(n.Severity)).
		Str("summary", n.Summary).
		Str("detail", n.Detail).
		Int("duration_ms", n.DurationMs).
		Msg("notification")
}
