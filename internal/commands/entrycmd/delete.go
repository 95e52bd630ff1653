package entrycmd

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arya-5990/RoarFitnessAdmin/internal/commands"
	"github.com/arya-5990/RoarFitnessAdmin/internal/sync"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

const deleteEntryMessageType = "admin.entry.delete"

// ControllerResolver locates the sync controller serving a collection.
type ControllerResolver func(collection string) (*sync.Controller, bool)

// DeleteEntryCommand requests removal of one record from a collection.
type DeleteEntryCommand struct {
	Collection string `json:"collection"`
	RecordID   string `json:"record_id"`
}

// Type implements command.Message.
func (DeleteEntryCommand) Type() string { return deleteEntryMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m DeleteEntryCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Collection) == "" {
		errs["collection"] = validation.NewError("admin.entry.delete.collection_required", "collection is required")
	}
	if strings.TrimSpace(m.RecordID) == "" {
		errs["record_id"] = validation.NewError("admin.entry.delete.record_id_required", "record_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteEntryHandler deletes records through the collection's write gateway.
type DeleteEntryHandler struct {
	inner *commands.Handler[DeleteEntryCommand]
}

// NewDeleteEntryHandler constructs a handler resolving controllers per collection.
func NewDeleteEntryHandler(resolve ControllerResolver, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteEntryCommand]) *DeleteEntryHandler {
	exec := func(ctx context.Context, msg DeleteEntryCommand) error {
		controller, ok := resolve(msg.Collection)
		if !ok {
			return fmt.Errorf("unknown collection %q", msg.Collection)
		}
		_, err := controller.Delete(ctx, msg.RecordID)
		return err
	}

	handlerOpts := []commands.HandlerOption[DeleteEntryCommand]{
		commands.WithLogger[DeleteEntryCommand](logger),
		commands.WithOperation[DeleteEntryCommand]("entry.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteEntryHandler{
		inner: commands.NewHandler[DeleteEntryCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteEntryCommand].Execute.
func (h *DeleteEntryHandler) Execute(ctx context.Context, msg DeleteEntryCommand) error {
	return h.inner.Execute(ctx, msg)
}
