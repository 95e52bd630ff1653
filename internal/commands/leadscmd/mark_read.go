package leadscmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/arya-5990/RoarFitnessAdmin/internal/commands"
	"github.com/arya-5990/RoarFitnessAdmin/internal/leads"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

const markLeadReadMessageType = "admin.leads.mark_read"

// MarkLeadReadCommand flips one lead to read status.
type MarkLeadReadCommand struct {
	LeadID string `json:"lead_id"`
	Status string `json:"status,omitempty"`
}

// Type implements command.Message.
func (MarkLeadReadCommand) Type() string { return markLeadReadMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m MarkLeadReadCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.LeadID) == "" {
		errs["lead_id"] = validation.NewError("admin.leads.mark_read.lead_id_required", "lead_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MarkLeadReadHandler marks leads handled via the leads service.
type MarkLeadReadHandler struct {
	inner *commands.Handler[MarkLeadReadCommand]
}

// NewMarkLeadReadHandler constructs a handler wired to the leads service.
func NewMarkLeadReadHandler(service leads.Service, logger interfaces.Logger, opts ...commands.HandlerOption[MarkLeadReadCommand]) *MarkLeadReadHandler {
	exec := func(ctx context.Context, msg MarkLeadReadCommand) error {
		return service.MarkRead(ctx, leads.Lead{ID: msg.LeadID, Status: msg.Status})
	}

	handlerOpts := []commands.HandlerOption[MarkLeadReadCommand]{
		commands.WithLogger[MarkLeadReadCommand](logger),
		commands.WithOperation[MarkLeadReadCommand]("leads.mark_read"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MarkLeadReadHandler{
		inner: commands.NewHandler[MarkLeadReadCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[MarkLeadReadCommand].Execute.
func (h *MarkLeadReadHandler) Execute(ctx context.Context, msg MarkLeadReadCommand) error {
	return h.inner.Execute(ctx, msg)
}
