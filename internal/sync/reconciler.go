package sync

import (
	"context"
	"time"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/forms"
	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// State names one phase of the submit pipeline.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateUploading  State = "uploading"
	StateWriting    State = "writing"
	StateSettled    State = "settled"
	StateFailed     State = "failed"
)

// ReconcilerOption customises the reconciler.
type ReconcilerOption func(*Reconciler)

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) ReconcilerOption {
	return func(r *Reconciler) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithReconcilerLogger attaches a logger for pipeline diagnostics.
func WithReconcilerLogger(logger interfaces.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTransitionHook observes every state transition. Useful for tests and
// progress indicators.
func WithTransitionHook(hook func(State)) ReconcilerOption {
	return func(r *Reconciler) {
		if hook != nil {
			r.onTransition = hook
		}
	}
}

// Reconciler runs the submit pipeline for one entity: validate, upload
// pending media, stamp, write. Each submit is a single pass; validation
// failures stop before any network traffic, and the first failing stage
// aborts the rest. Sessions are only reset after a settled write, so every
// failure leaves the operator's edits intact.
type Reconciler struct {
	def          catalog.Definition
	gateway      *Gateway
	clock        func() time.Time
	logger       interfaces.Logger
	onTransition func(State)
}

// NewReconciler wires the submit pipeline for the given definition.
func NewReconciler(def catalog.Definition, gateway *Gateway, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		def:          def,
		gateway:      gateway,
		clock:        time.Now,
		logger:       logging.NoOp(),
		onTransition: func(State) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Submit runs one full pipeline pass for the session. existing is the live
// record count used by creation caps. On success the session is reset to
// create mode and the entity's success notice is returned; on failure the
// session is untouched and the error carries the blocking notice.
func (r *Reconciler) Submit(ctx context.Context, session *forms.Session, existing int) (Notice, error) {
	editing := session.Editing()
	fields := session.Fields()

	r.transition(StateValidating)
	if err := r.def.Validate(fields, existing, editing); err != nil {
		r.transition(StateFailed)
		return Notice{}, validationFailure(err)
	}
	if r.def.Normalize != nil {
		r.def.Normalize(fields)
	}

	if len(r.def.MediaFields) > 0 {
		r.transition(StateUploading)
		if err := r.gateway.UploadPending(ctx, fields); err != nil {
			r.transition(StateFailed)
			r.logger.Error("sync.upload.failed", "collection", r.def.Collection, "error", err)
			return Notice{}, uploadFailure(err, r.def.Notices)
		}
	}

	r.def.Stamp(fields, r.clock(), editing)

	r.transition(StateWriting)
	doc, err := r.gateway.Write(ctx, session.RecordID(), fields)
	if err != nil {
		r.transition(StateFailed)
		r.logger.Error("sync.write.failed", "collection", r.def.Collection, "error", err)
		return Notice{}, writeFailure(err, r.def.Notices.SaveFailed)
	}

	r.transition(StateSettled)
	r.logger.Info("sync.write.done", "collection", r.def.Collection, "id", doc.ID, "editing", editing)
	session.Reset()

	message := r.def.Notices.Created
	if editing {
		message = r.def.Notices.Updated
	}
	return Notice{Title: catalog.TitleSuccess, Message: message}, nil
}

// Delete removes a record. The local mirror only reflects the removal once
// the store's next snapshot lands. Entities without a Deleted message
// remove silently and return a zero notice.
func (r *Reconciler) Delete(ctx context.Context, recordID string) (Notice, error) {
	r.transition(StateWriting)
	if err := r.gateway.Delete(ctx, recordID); err != nil {
		r.transition(StateFailed)
		r.logger.Error("sync.delete.failed", "collection", r.def.Collection, "id", recordID, "error", err)
		return Notice{}, writeFailure(err, r.def.Notices.DeleteFailed)
	}
	r.transition(StateSettled)
	r.logger.Info("sync.delete.done", "collection", r.def.Collection, "id", recordID)
	if r.def.Notices.Deleted == "" {
		return Notice{}, nil
	}
	return Notice{Title: catalog.TitleSuccess, Message: r.def.Notices.Deleted}, nil
}

func (r *Reconciler) transition(state State) {
	r.onTransition(state)
}
