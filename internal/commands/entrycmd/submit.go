package entrycmd

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arya-5990/RoarFitnessAdmin/internal/commands"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

const submitEntryMessageType = "admin.entry.submit"

// SubmitEntryCommand creates or updates one record through the collection's
// full submit pipeline: validation, pending media upload, stamping, write.
type SubmitEntryCommand struct {
	Collection string `json:"collection"`
	// RecordID selects the record to edit; empty creates a new one.
	RecordID string         `json:"record_id,omitempty"`
	Fields   map[string]any `json:"fields"`
}

// Type implements command.Message.
func (SubmitEntryCommand) Type() string { return submitEntryMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m SubmitEntryCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Collection) == "" {
		errs["collection"] = validation.NewError("admin.entry.submit.collection_required", "collection is required")
	}
	if len(m.Fields) == 0 {
		errs["fields"] = validation.NewError("admin.entry.submit.fields_required", "fields are required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SubmitEntryHandler drives the reconcile pipeline for one record.
type SubmitEntryHandler struct {
	inner *commands.Handler[SubmitEntryCommand]
}

// NewSubmitEntryHandler constructs a handler resolving controllers per collection.
func NewSubmitEntryHandler(resolve ControllerResolver, logger interfaces.Logger, opts ...commands.HandlerOption[SubmitEntryCommand]) *SubmitEntryHandler {
	exec := func(ctx context.Context, msg SubmitEntryCommand) error {
		controller, ok := resolve(msg.Collection)
		if !ok {
			return fmt.Errorf("unknown collection %q", msg.Collection)
		}

		session := controller.NewSession()
		if msg.RecordID != "" {
			var err error
			session, err = controller.EditSession(ctx, msg.RecordID)
			if err != nil {
				return fmt.Errorf("open record %s: %w", msg.RecordID, err)
			}
		}
		for key, value := range msg.Fields {
			session.Set(key, value)
		}

		_, err := controller.Submit(ctx, session)
		return err
	}

	handlerOpts := []commands.HandlerOption[SubmitEntryCommand]{
		commands.WithLogger[SubmitEntryCommand](logger),
		commands.WithOperation[SubmitEntryCommand]("entry.submit"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SubmitEntryHandler{
		inner: commands.NewHandler[SubmitEntryCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SubmitEntryCommand].Execute.
func (h *SubmitEntryHandler) Execute(ctx context.Context, msg SubmitEntryCommand) error {
	return h.inner.Execute(ctx, msg)
}
