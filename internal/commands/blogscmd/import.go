package blogscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arya-5990/RoarFitnessAdmin/internal/commands"
	"github.com/arya-5990/RoarFitnessAdmin/internal/markdown"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

const importBlogMessageType = "admin.blogs.import"

// ImportBlogCommand publishes a Markdown-authored blog post.
type ImportBlogCommand struct {
	// Path locates the Markdown source on disk. Ignored when Source is set.
	Path string `json:"path,omitempty"`
	// Source holds the Markdown content directly.
	Source []byte `json:"source,omitempty"`
}

// Type implements command.Message.
func (ImportBlogCommand) Type() string { return importBlogMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m ImportBlogCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Path) == "" && len(m.Source) == 0 {
		errs["path"] = validation.NewError("admin.blogs.import.source_required", "path or source is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ImportBlogHandler publishes posts through the Markdown importer.
type ImportBlogHandler struct {
	inner *commands.Handler[ImportBlogCommand]
}

// NewImportBlogHandler constructs a handler wired to the importer.
func NewImportBlogHandler(importer *markdown.Importer, logger interfaces.Logger, opts ...commands.HandlerOption[ImportBlogCommand]) *ImportBlogHandler {
	exec := func(ctx context.Context, msg ImportBlogCommand) error {
		if len(msg.Source) > 0 {
			_, err := importer.Import(ctx, msg.Source)
			return err
		}
		_, err := importer.ImportFile(ctx, msg.Path)
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportBlogCommand]{
		commands.WithLogger[ImportBlogCommand](logger),
		commands.WithOperation[ImportBlogCommand]("blogs.import"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportBlogHandler{
		inner: commands.NewHandler[ImportBlogCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportBlogCommand].Execute.
func (h *ImportBlogHandler) Execute(ctx context.Context, msg ImportBlogCommand) error {
	return h.inner.Execute(ctx, msg)
}
