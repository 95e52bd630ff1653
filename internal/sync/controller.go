package sync

import (
	"context"
	"time"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/forms"
	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/internal/media"
	"github.com/arya-5990/RoarFitnessAdmin/internal/validation"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// ControllerOption customises a collection controller.
type ControllerOption func(*Controller)

// ControllerWithClock overrides the timestamp source used for stamping.
func ControllerWithClock(clock func() time.Time) ControllerOption {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// ControllerWithLogger attaches a logger shared by the controller's parts.
func ControllerWithLogger(logger interfaces.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// ControllerWithTransitionHook observes reconciler state transitions.
func ControllerWithTransitionHook(hook func(State)) ControllerOption {
	return func(c *Controller) {
		c.transitionHook = hook
	}
}

// Controller binds one entity definition to a live mirror, a form session
// factory, and the submit pipeline. One controller per collection; all of
// its methods are safe for concurrent use once Start has returned.
type Controller struct {
	def        catalog.Definition
	store      interfaces.DocumentStore
	reconciler *Reconciler
	mirror     *Mirror
	logger     interfaces.Logger

	clock          func() time.Time
	transitionHook func(State)
}

// NewController validates the definition's schema and assembles the
// controller. Start must be called before the mirror serves data.
func NewController(def catalog.Definition, store interfaces.DocumentStore, mediaSvc media.Service, opts ...ControllerOption) (*Controller, error) {
	if err := validation.ValidateSchema(def.Schema); err != nil {
		return nil, err
	}
	c := &Controller{
		def:    def,
		store:  store,
		clock:  time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}

	gateway := NewGateway(def, store, mediaSvc)
	recOpts := []ReconcilerOption{
		WithClock(c.clock),
		WithReconcilerLogger(c.logger),
	}
	if c.transitionHook != nil {
		recOpts = append(recOpts, WithTransitionHook(c.transitionHook))
	}
	c.reconciler = NewReconciler(def, gateway, recOpts...)
	return c, nil
}

// Start subscribes the live mirror. The context bounds the subscription
// lifetime; cancelling it stops the feed.
func (c *Controller) Start(ctx context.Context) error {
	mirror, err := NewMirror(ctx, c.store, c.def.Collection, c.logger)
	if err != nil {
		return &Failure{
			Kind:   FailureSubscription,
			Notice: Notice{Title: catalog.TitleError, Message: c.def.Notices.FetchFailed},
			Err:    err,
		}
	}
	c.mirror = mirror
	return nil
}

// Collection returns the remote collection name.
func (c *Controller) Collection() string {
	return c.def.Collection
}

// Definition returns the entity definition the controller serves.
func (c *Controller) Definition() catalog.Definition {
	return c.def
}

// Records returns the mirror's current snapshot.
func (c *Controller) Records() []interfaces.Document {
	if c.mirror == nil {
		return nil
	}
	return c.mirror.Snapshot()
}

// Updates exposes the mirror's coalescing change signal.
func (c *Controller) Updates() <-chan struct{} {
	if c.mirror == nil {
		return nil
	}
	return c.mirror.Updates()
}

// FeedErr reports the last subscription error, if any.
func (c *Controller) FeedErr() error {
	if c.mirror == nil {
		return nil
	}
	return c.mirror.Err()
}

// NewSession returns a blank form session in create mode.
func (c *Controller) NewSession() *forms.Session {
	return forms.NewSession()
}

// EditSession opens a session seeded from an existing record. The mirror is
// consulted first; a cache miss falls back to the store. Singletons without
// a stored record yet open in create mode targeting the fixed identifier.
func (c *Controller) EditSession(ctx context.Context, recordID string) (*forms.Session, error) {
	if c.def.Singleton && recordID == "" {
		recordID = c.def.SingletonID
	}
	if c.mirror != nil {
		if doc, ok := c.mirror.Get(recordID); ok {
			return forms.EditSession(doc), nil
		}
	}
	doc, err := c.store.Get(ctx, c.def.Collection, recordID)
	if err != nil {
		if c.def.Singleton {
			return forms.NewSession(), nil
		}
		return nil, err
	}
	return forms.EditSession(doc), nil
}

// Submit runs the validate/upload/write pipeline for the session.
func (c *Controller) Submit(ctx context.Context, session *forms.Session) (Notice, error) {
	existing := 0
	if c.mirror != nil {
		existing = c.mirror.Len()
	}
	return c.reconciler.Submit(ctx, session, existing)
}

// Delete removes a record through the write gateway.
func (c *Controller) Delete(ctx context.Context, recordID string) (Notice, error) {
	return c.reconciler.Delete(ctx, recordID)
}

// Close releases the mirror subscription.
func (c *Controller) Close() {
	if c.mirror != nil {
		c.mirror.Close()
	}
}
