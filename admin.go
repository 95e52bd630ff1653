package admin

import (
	"context"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/di"
	"github.com/arya-5990/RoarFitnessAdmin/internal/forms"
	"github.com/arya-5990/RoarFitnessAdmin/internal/leads"
	"github.com/arya-5990/RoarFitnessAdmin/internal/markdown"
	"github.com/arya-5990/RoarFitnessAdmin/internal/media"
	"github.com/arya-5990/RoarFitnessAdmin/internal/sync"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// Controller exports the per-collection sync controller.
type Controller = sync.Controller

// Session exports the form session type.
type Session = forms.Session

// Notice exports the blocking notice type surfaced by submits.
type Notice = sync.Notice

// Failure exports the submit pipeline failure type.
type Failure = sync.Failure

// Lead exports the contact submission type.
type Lead = leads.Lead

// LeadsService exports the leads service contract.
type LeadsService = leads.Service

// MediaService exports the media helper contract.
type MediaService = media.Service

// BlogImporter exports the Markdown blog importer.
type BlogImporter = markdown.Importer

// Document exports the stored record type.
type Document = interfaces.Document

// Module is the admin console core: one live-synced controller per
// collection plus the lead handling and blog import services.
type Module struct {
	container *di.Container
}

// New assembles the module from configuration. Call Start before using the
// controllers' live mirrors.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Start provisions storage and subscribes every collection mirror. The
// context bounds the subscriptions; cancelling it stops the feeds.
func (m *Module) Start(ctx context.Context) error {
	return m.container.Start(ctx)
}

// Close releases every mirror subscription.
func (m *Module) Close() {
	m.container.Close()
}

// BasicDetails returns the gym details singleton controller.
func (m *Module) BasicDetails() *Controller {
	return m.controller(catalog.CollectionBasicDetails)
}

// Blogs returns the blog post controller.
func (m *Module) Blogs() *Controller {
	return m.controller(catalog.CollectionBlogs)
}

// FAQs returns the FAQ controller.
func (m *Module) FAQs() *Controller {
	return m.controller(catalog.CollectionFAQ)
}

// Programs returns the membership program controller.
func (m *Module) Programs() *Controller {
	return m.controller(catalog.CollectionPrograms)
}

// Testimonials returns the testimonial controller.
func (m *Module) Testimonials() *Controller {
	return m.controller(catalog.CollectionTestimonials)
}

// Trainers returns the trainer profile controller.
func (m *Module) Trainers() *Controller {
	return m.controller(catalog.CollectionTrainers)
}

// Transformations returns the transformation story controller.
func (m *Module) Transformations() *Controller {
	return m.controller(catalog.CollectionTransformations)
}

// LeadEntries returns the contact submission controller. Leads are
// read-only from the console apart from status flips.
func (m *Module) LeadEntries() *Controller {
	return m.controller(catalog.CollectionLeads)
}

// Leads returns the lead handling service.
func (m *Module) Leads() LeadsService {
	return m.container.LeadsService()
}

// Media returns the media helper service.
func (m *Module) Media() MediaService {
	return m.container.MediaService()
}

// Commands returns the wired command handlers for bus-driven hosts.
func (m *Module) Commands() di.Commands {
	return m.container.Commands()
}

// Importer returns the Markdown blog importer, nil unless enabled.
func (m *Module) Importer() *BlogImporter {
	return m.container.BlogImporter()
}

// Store exposes the wired document store.
func (m *Module) Store() interfaces.DocumentStore {
	return m.container.DocumentStore()
}

func (m *Module) controller(collection string) *Controller {
	if m == nil || m.container == nil {
		return nil
	}
	controller, _ := m.container.Controller(collection)
	return controller
}
