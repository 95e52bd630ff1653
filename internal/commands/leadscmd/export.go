package leadscmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/commands"
	"github.com/arya-5990/RoarFitnessAdmin/internal/leads"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

const exportLeadsMessageType = "admin.leads.export"

// ExportLeadsCommand exports the full lead list as a spreadsheet.
type ExportLeadsCommand struct {
	// OutputDir is the directory the workbook is written to. The file name
	// is generated by the service.
	OutputDir string `json:"output_dir"`
	// Sort selects the row ordering; defaults to newest first.
	Sort leads.SortMode `json:"sort,omitempty"`
}

// Type implements command.Message.
func (ExportLeadsCommand) Type() string { return exportLeadsMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m ExportLeadsCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.OutputDir) == "" {
		errs["output_dir"] = validation.NewError("admin.leads.export.output_dir_required", "output_dir is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ExportLeadsHandler renders and writes the workbook to disk.
type ExportLeadsHandler struct {
	inner *commands.Handler[ExportLeadsCommand]
}

// NewExportLeadsHandler constructs a handler reading leads from the store.
func NewExportLeadsHandler(store interfaces.DocumentStore, service leads.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ExportLeadsCommand]) *ExportLeadsHandler {
	exec := func(ctx context.Context, msg ExportLeadsCommand) error {
		docs, err := store.List(ctx, catalog.CollectionLeads)
		if err != nil {
			return fmt.Errorf("list leads: %w", err)
		}

		mode := msg.Sort
		if mode == "" {
			mode = leads.SortNewestFirst
		}
		workbook, err := service.Export(leads.FromDocuments(docs, mode))
		if err != nil {
			return err
		}

		path := filepath.Join(msg.OutputDir, service.ExportFileName())
		if err := os.WriteFile(path, workbook, 0o644); err != nil {
			return fmt.Errorf("write export %s: %w", path, err)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ExportLeadsCommand]{
		commands.WithLogger[ExportLeadsCommand](logger),
		commands.WithOperation[ExportLeadsCommand]("leads.export"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ExportLeadsHandler{
		inner: commands.NewHandler[ExportLeadsCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ExportLeadsCommand].Execute.
func (h *ExportLeadsHandler) Execute(ctx context.Context, msg ExportLeadsCommand) error {
	return h.inner.Execute(ctx, msg)
}
