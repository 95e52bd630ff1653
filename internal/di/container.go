package di

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/commands"
	"github.com/arya-5990/RoarFitnessAdmin/internal/commands/blogscmd"
	"github.com/arya-5990/RoarFitnessAdmin/internal/commands/entrycmd"
	"github.com/arya-5990/RoarFitnessAdmin/internal/commands/leadscmd"
	"github.com/arya-5990/RoarFitnessAdmin/internal/leads"
	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/internal/logging/gologger"
	"github.com/arya-5990/RoarFitnessAdmin/internal/markdown"
	"github.com/arya-5990/RoarFitnessAdmin/internal/media"
	"github.com/arya-5990/RoarFitnessAdmin/internal/runtimeconfig"
	"github.com/arya-5990/RoarFitnessAdmin/internal/store"
	syncctl "github.com/arya-5990/RoarFitnessAdmin/internal/sync"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// Container wires module dependencies: the document store, the media
// uploader, one sync controller per collection, and the lead and import
// services on top of them.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	documents      interfaces.DocumentStore
	uploader       interfaces.MediaUploader
	mediaSource    interfaces.MediaSource
	mediaSvc       media.Service
	clock          func() time.Time

	bunDB         *bun.DB
	cacheService  interfaces.CacheService
	keySerializer interfaces.KeySerializer

	controllers map[string]*syncctl.Controller
	leadsSvc    leads.Service
	importer    *markdown.Importer
	commands    Commands
}

// Commands bundles the wired command handlers so hosts can dispatch admin
// operations through a message bus.
type Commands struct {
	SubmitEntry  *entrycmd.SubmitEntryHandler
	DeleteEntry  *entrycmd.DeleteEntryHandler
	MarkLeadRead *leadscmd.MarkLeadReadHandler
	ExportLeads  *leadscmd.ExportLeadsHandler
	// ImportBlog is nil unless the blog import feature is enabled.
	ImportBlog *blogscmd.ImportBlogHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithDocumentStore overrides the default document store binding.
func WithDocumentStore(ds interfaces.DocumentStore) Option {
	return func(c *Container) {
		c.documents = ds
	}
}

// WithMediaUploader overrides the default uploader binding.
func WithMediaUploader(up interfaces.MediaUploader) Option {
	return func(c *Container) {
		c.uploader = up
	}
}

// WithMediaSource overrides how local media references are opened.
func WithMediaSource(source interfaces.MediaSource) Option {
	return func(c *Container) {
		c.mediaSource = source
	}
}

// WithLoggerProvider overrides the logging provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an existing database handle instead of opening one
// from the storage DSN.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache wires a read-through cache around the document repository.
func WithCache(service interfaces.CacheService, serializer interfaces.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithClock overrides the timestamp source used across the module.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewContainer validates the configuration and assembles the module's
// dependency graph. Controllers still need Start before their mirrors
// serve data; call Start on the container once.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureStore(); err != nil {
		return nil, err
	}
	if err := c.configureMedia(); err != nil {
		return nil, err
	}
	if err := c.configureControllers(); err != nil {
		return nil, err
	}

	c.leadsSvc = leads.NewService(c.documents,
		leads.WithLogger(logging.LeadsLogger(c.loggerProvider)),
		leads.WithClock(c.clock),
	)

	if cfg.Features.BlogImport {
		c.importer = markdown.NewImporter(
			c.controllers[catalog.CollectionBlogs],
			markdown.ImporterWithLogger(logging.MarkdownLogger(c.loggerProvider)),
		)
	}
	c.configureCommands()

	return c, nil
}

func (c *Container) configureCommands() {
	resolve := func(collection string) (*syncctl.Controller, bool) {
		controller, ok := c.controllers[collection]
		return controller, ok
	}
	c.commands = Commands{
		SubmitEntry:  entrycmd.NewSubmitEntryHandler(resolve, commands.CommandLogger(c.loggerProvider, "entry")),
		DeleteEntry:  entrycmd.NewDeleteEntryHandler(resolve, commands.CommandLogger(c.loggerProvider, "entry")),
		MarkLeadRead: leadscmd.NewMarkLeadReadHandler(c.leadsSvc, commands.CommandLogger(c.loggerProvider, "leads")),
		ExportLeads:  leadscmd.NewExportLeadsHandler(c.documents, c.leadsSvc, commands.CommandLogger(c.loggerProvider, "leads")),
	}
	if c.importer != nil {
		c.commands.ImportBlog = blogscmd.NewImportBlogHandler(c.importer, commands.CommandLogger(c.loggerProvider, "blogs"))
	}
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	if c.Config.Logging.Provider != "gologger" {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureStore() error {
	if c.documents != nil {
		return nil
	}

	logger := logging.StoreLogger(c.loggerProvider)
	switch c.Config.Storage.Provider {
	case "", "memory":
		c.documents = store.NewMemoryStore(
			store.WithClock(c.clock),
			store.WithLogger(logger),
		)
		return nil
	case "sqlite":
		if c.bunDB == nil {
			db, err := store.NewSQLiteDB(c.Config.Storage.DSN)
			if err != nil {
				return fmt.Errorf("open sqlite store: %w", err)
			}
			c.bunDB = db
		}
	case "postgres":
		if c.bunDB == nil {
			return fmt.Errorf("postgres storage requires a database handle, use WithBunDB")
		}
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrStorageProviderUnknown, c.Config.Storage.Provider)
	}

	cacheService, keySerializer := c.cacheService, c.keySerializer
	if !c.Config.Cache.Enabled {
		cacheService, keySerializer = nil, nil
	}
	c.documents = store.NewBunStoreWithCache(c.bunDB, cacheService, keySerializer,
		store.BunWithClock(c.clock),
		store.BunWithLogger(logger),
	)
	return nil
}

func (c *Container) configureMedia() error {
	if c.uploader == nil && c.Config.Features.Media {
		uploader, err := media.NewHTTPUploader(media.UploaderConfig{
			CloudName: c.Config.Media.CloudName,
			APIKey:    c.Config.Media.APIKey,
			APISecret: c.Config.Media.APISecret,
			BaseURL:   c.Config.Media.BaseURL,
			Clock:     c.clock,
		})
		if err != nil {
			return err
		}
		c.uploader = uploader
	}

	mediaOpts := []media.ServiceOption{
		media.WithLogger(logging.MediaLogger(c.loggerProvider)),
	}
	if c.mediaSource != nil {
		mediaOpts = append(mediaOpts, media.WithSource(c.mediaSource))
	}
	if c.Config.Media.Folder != "" {
		mediaOpts = append(mediaOpts, media.WithFolder(c.Config.Media.Folder))
	}
	c.mediaSvc = media.NewService(c.uploader, mediaOpts...)
	return nil
}

func (c *Container) configureControllers() error {
	logger := logging.SyncLogger(c.loggerProvider)
	c.controllers = make(map[string]*syncctl.Controller)
	for name, def := range catalog.All() {
		controller, err := syncctl.NewController(def, c.documents, c.mediaSvc,
			syncctl.ControllerWithClock(c.clock),
			syncctl.ControllerWithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("wire %s controller: %w", name, err)
		}
		c.controllers[name] = controller
	}
	return nil
}

// Start provisions storage schema when needed and subscribes every
// controller's mirror. The context bounds the subscriptions.
func (c *Container) Start(ctx context.Context) error {
	if c.bunDB != nil {
		if err := store.CreateSchema(ctx, c.bunDB); err != nil {
			return fmt.Errorf("provision document schema: %w", err)
		}
	}
	for name, controller := range c.controllers {
		if err := controller.Start(ctx); err != nil {
			return fmt.Errorf("start %s controller: %w", name, err)
		}
	}
	return nil
}

// Close releases every controller's subscription.
func (c *Container) Close() {
	for _, controller := range c.controllers {
		controller.Close()
	}
}

// DocumentStore exposes the wired store.
func (c *Container) DocumentStore() interfaces.DocumentStore {
	return c.documents
}

// LoggerProvider exposes the wired logging provider, nil when disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// MediaService exposes the wired media service.
func (c *Container) MediaService() media.Service {
	return c.mediaSvc
}

// Controller returns the sync controller serving a collection.
func (c *Container) Controller(collection string) (*syncctl.Controller, bool) {
	controller, ok := c.controllers[collection]
	return controller, ok
}

// Controllers returns every wired controller keyed by collection.
func (c *Container) Controllers() map[string]*syncctl.Controller {
	return c.controllers
}

// LeadsService exposes the wired leads service.
func (c *Container) LeadsService() leads.Service {
	return c.leadsSvc
}

// BlogImporter exposes the Markdown importer, nil unless the feature is
// enabled.
func (c *Container) BlogImporter() *markdown.Importer {
	return c.importer
}

// Commands exposes the wired command handlers.
func (c *Container) Commands() Commands {
	return c.commands
}
