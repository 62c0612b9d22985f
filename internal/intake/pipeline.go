package intake

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/MaxiCo1/fwg-api-test/internal/sheetstore"
	"github.com/MaxiCo1/fwg-api-test/internal/telemetry"
)

// Result is the HTTP-shaped outcome of one submission.
type Result struct {
	Status int
	Body   any
}

// SuccessBody acknowledges a persisted submission.
type SuccessBody struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
}

// ErrorBody reports a rejected or failed submission. Details carries the
// ordered validation errors and is omitted otherwise.
type ErrorBody struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Pipeline carries one submission from validation to the destination store
// and shapes the HTTP response. The connected store is cached in an atomic
// handle: read-mostly after the first successful connect, rebuilt inline at
// most once per request when absent. Concurrent rebuilds may race; the last
// published handle wins, which is safe because connecting is side-effect
// free and the handle is immutable once stored.
type Pipeline struct {
	connect     ConnectFunc
	clock       Clock
	environment string
	log         *zap.Logger

	store atomic.Pointer[storeBox]
}

type storeBox struct {
	store Store
}

// NewPipeline wires the pipeline. environment is echoed in success and
// health payloads.
func NewPipeline(connect ConnectFunc, clock Clock, environment string, log *zap.Logger) *Pipeline {
	return &Pipeline{
		connect:     connect,
		clock:       clock,
		environment: environment,
		log:         log,
	}
}

// Process runs one origin-checked submission end to end.
func (p *Pipeline) Process(ctx context.Context, sub Submission) Result {
	if errs := Validate(sub); len(errs) > 0 {
		p.log.Info("submission rejected", zap.Strings("details", errs))
		telemetry.ObserveSubmission("rejected_validation")
		if sub.Application == nil {
			return Result{
				Status: http.StatusBadRequest,
				Body:   ErrorBody{Error: ErrApplicationRequired},
			}
		}
		return Result{
			Status: http.StatusBadRequest,
			Body:   ErrorBody{Error: "invalid submission data", Details: errs},
		}
	}

	store, err := p.ensureStore(ctx)
	if err != nil {
		p.log.Error("store unavailable", zap.Error(err))
		telemetry.ObserveSubmission("store_unavailable")
		return Result{
			Status: http.StatusServiceUnavailable,
			Body:   ErrorBody{Error: "service temporarily unavailable"},
		}
	}

	meta := Metadata{}
	if sub.Metadata != nil {
		meta = *sub.Metadata
	}

	now := p.clock.Now()
	row := ProjectRow(*sub.Application, meta, now)

	updatedRange, err := store.Append(ctx, row)
	if err != nil {
		return p.failure(err)
	}

	p.log.Info("submission saved",
		zap.String("email", sub.Application.EmailAddress),
		zap.String("range", updatedRange),
	)
	telemetry.ObserveSubmission("accepted")
	return Result{
		Status: http.StatusOK,
		Body: SuccessBody{
			Success:     true,
			Message:     "Data saved successfully",
			Environment: p.environment,
			Timestamp:   now.UTC().Format(time.RFC3339),
		},
	}
}

// Health freshly connects and probes the destination store under the
// caller's deadline. The probe result is never cached into the pipeline:
// health checks must observe the store as it is right now.
func (p *Pipeline) Health(ctx context.Context) bool {
	store, err := p.connect(ctx)
	if err != nil {
		p.log.Warn("health probe failed", zap.Error(err))
		return false
	}
	if err := store.Probe(ctx); err != nil {
		p.log.Warn("health probe failed", zap.Error(err))
		return false
	}
	return true
}

// Environment returns the deployment-mode echo used in payloads.
func (p *Pipeline) Environment() string {
	return p.environment
}

// Now exposes the pipeline clock for response timestamps.
func (p *Pipeline) Now() time.Time {
	return p.clock.Now()
}

func (p *Pipeline) ensureStore(ctx context.Context) (Store, error) {
	if box := p.store.Load(); box != nil {
		return box.store, nil
	}
	store, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}
	p.store.Store(&storeBox{store: store})
	return store, nil
}

// failure maps a classified store error onto a response. Status codes:
// permission 403, missing spreadsheet 404, quota 503, timeout 504,
// auth/unknown 500. Internal detail stays in the logs.
func (p *Pipeline) failure(err error) Result {
	kind := sheetstore.KindUnknown
	var serr *sheetstore.StoreError
	if errors.As(err, &serr) {
		kind = serr.Kind
	}

	p.log.Error("append failed", zap.String("kind", string(kind)), zap.Error(err))
	telemetry.ObserveSubmission(string(kind))

	switch kind {
	case sheetstore.KindPermission:
		return Result{http.StatusForbidden, ErrorBody{Error: "no permission to access the spreadsheet"}}
	case sheetstore.KindNotFound:
		return Result{http.StatusNotFound, ErrorBody{Error: "spreadsheet not found"}}
	case sheetstore.KindQuota:
		return Result{http.StatusServiceUnavailable, ErrorBody{Error: "quota exceeded, please try again later"}}
	case sheetstore.KindTimeout:
		return Result{http.StatusGatewayTimeout, ErrorBody{Error: "the spreadsheet service timed out"}}
	case sheetstore.KindAuth:
		return Result{http.StatusInternalServerError, ErrorBody{Error: "spreadsheet authentication failed"}}
	default:
		return Result{http.StatusInternalServerError, ErrorBody{Error: "failed to save data"}}
	}
}
