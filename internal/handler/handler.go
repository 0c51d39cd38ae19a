package handler

import (
	"bytes"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"tax-simulation/internal/chart"
	"tax-simulation/internal/engine"
	"tax-simulation/internal/model"
	"tax-simulation/internal/validation"
)

const (
	pathSubmit   = "/api/simulation"
	pathValidate = "/api/simulation/validate"
	pathDefaults = "/api/simulation/defaults"
	pathChart    = "/api/simulation/chart.svg"
)

type Handler struct {
	sessions *sessions
	log      zerolog.Logger
}

type Option func(*handlerOptions)

type handlerOptions struct {
	ttl time.Duration
	max int
}

// WithSessionLimits bounds how long an idle session lives and how many are
// kept at once.
func WithSessionLimits(ttl time.Duration, max int) Option {
	return func(o *handlerOptions) {
		o.ttl = ttl
		o.max = max
	}
}

// New serves one controller per form session, built by newCtrl on the
// session's first submission.
func New(newCtrl ControllerFactory, log zerolog.Logger, opts ...Option) *Handler {
	var o handlerOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Handler{
		sessions: newSessions(newCtrl, o.ttl, o.max),
		log:      log,
	}
}

type validateResponse struct {
	Errors []model.FieldError `json:"errors"`
}

type defaultsResponse struct {
	Input model.SimulationInput `json:"input"`
	Years []int                 `json:"years"`
}

func (h *Handler) HandleRequest(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case pathSubmit:
		if !ctx.IsPost() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.submit(ctx)
	case pathValidate:
		if !ctx.IsPost() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.validate(ctx)
	case pathDefaults:
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, defaultsResponse{Input: model.DefaultInput(), Years: model.Years})
	case pathChart:
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		h.chart(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) submit(ctx *fasthttp.RequestCtx) {
	in, err := decodeInput(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	id := sessionID(ctx)
	res := h.sessions.get(id).Submit(ctx, in)

	status := fasthttp.StatusOK
	switch {
	case res.Superseded:
		status = fasthttp.StatusConflict
	case res.Phase == engine.PhaseRejected:
		status = fasthttp.StatusUnprocessableEntity
	}
	writeJSON(ctx, status, res)
}

func (h *Handler) validate(ctx *fasthttp.RequestCtx) {
	in, err := decodeInput(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	errs := validation.Validate(in)
	if errs == nil {
		errs = []model.FieldError{}
	}
	writeJSON(ctx, fasthttp.StatusOK, validateResponse{Errors: errs})
}

func (h *Handler) chart(ctx *fasthttp.RequestCtx) {
	id := sessionID(ctx)
	var res engine.Result
	ok := false
	if ctrl, found := h.sessions.lookup(id); found {
		res, ok = ctrl.Current()
	}
	if !ok || res.Chart == nil {
		writeError(ctx, fasthttp.StatusNotFound, "No simulation result to chart")
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderSVG(&buf, res.Chart); err != nil {
		h.log.Warn().Err(err).Str("submission_id", res.SubmissionID).Msg("chart render failed")
		status := fasthttp.StatusUnprocessableEntity
		if errors.Is(err, chart.ErrNoData) {
			status = fasthttp.StatusNotFound
		}
		writeError(ctx, status, err.Error())
		return
	}
	ctx.SetContentType("image/svg+xml")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(buf.Bytes())
}

// decodeInput overlays the body on the default form state, so omitted
// fields keep their defaults.
func decodeInput(body []byte) (model.SimulationInput, error) {
	in := model.DefaultInput()
	if len(bytes.TrimSpace(body)) == 0 {
		return in, errors.New("empty body")
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return in, err
	}
	return in, nil
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	b, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(b)
}
