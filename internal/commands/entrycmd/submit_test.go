package entrycmd_test

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/commands/entrycmd"
	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/internal/store"
	"github.com/arya-5990/RoarFitnessAdmin/internal/sync"
)

func faqResolver(controller *sync.Controller) entrycmd.ControllerResolver {
	return func(collection string) (*sync.Controller, bool) {
		if collection == catalog.CollectionFAQ {
			return controller, true
		}
		return nil, false
	}
}

func TestSubmitEntryCreatesRecord(t *testing.T) {
	ctx := context.Background()
	docs := store.NewMemoryStore()
	controller := newFAQController(t, docs)
	handler := entrycmd.NewSubmitEntryHandler(faqResolver(controller), logging.NoOp())

	msg := entrycmd.SubmitEntryCommand{
		Collection: catalog.CollectionFAQ,
		Fields: map[string]any{
			"question": "Do you offer day passes?",
			"answer":   "Yes, at the front desk.",
		},
	}
	if err := handler.Execute(ctx, msg); err != nil {
		t.Fatalf("submit entry: %v", err)
	}

	stored, err := docs.List(ctx, catalog.CollectionFAQ)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 || stored[0].Fields["question"] != "Do you offer day passes?" {
		t.Fatalf("unexpected stored documents %+v", stored)
	}
}

func TestSubmitEntryEditsRecord(t *testing.T) {
	ctx := context.Background()
	docs := store.NewMemoryStore()
	controller := newFAQController(t, docs)
	handler := entrycmd.NewSubmitEntryHandler(faqResolver(controller), logging.NoOp())

	doc, err := docs.Create(ctx, catalog.CollectionFAQ, map[string]any{
		"question": "Do you offer day passes?",
		"answer":   "Yes.",
	})
	if err != nil {
		t.Fatalf("seed faq: %v", err)
	}

	msg := entrycmd.SubmitEntryCommand{
		Collection: catalog.CollectionFAQ,
		RecordID:   doc.ID,
		Fields:     map[string]any{"answer": "Yes, at the front desk."},
	}
	if err := handler.Execute(ctx, msg); err != nil {
		t.Fatalf("submit edit: %v", err)
	}

	updated, err := docs.Get(ctx, catalog.CollectionFAQ, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Fields["answer"] != "Yes, at the front desk." {
		t.Fatalf("expected merged answer, got %v", updated.Fields["answer"])
	}
	if updated.Fields["question"] != "Do you offer day passes?" {
		t.Fatalf("edit must preserve omitted fields, got %v", updated.Fields["question"])
	}
}

func TestSubmitEntrySurfacesRuleFailures(t *testing.T) {
	docs := store.NewMemoryStore()
	controller := newFAQController(t, docs)
	handler := entrycmd.NewSubmitEntryHandler(faqResolver(controller), logging.NoOp())

	msg := entrycmd.SubmitEntryCommand{
		Collection: catalog.CollectionFAQ,
		Fields:     map[string]any{"question": "Only a question"},
	}
	err := handler.Execute(context.Background(), msg)
	if err == nil {
		t.Fatal("expected rule failure")
	}
	var failure *sync.Failure
	if !errors.As(err, &failure) || failure.Kind != sync.FailureValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if failure.Notice.Message != "Please fill in both question and answer." {
		t.Fatalf("unexpected notice %+v", failure.Notice)
	}
}

func TestSubmitEntryValidatesMessage(t *testing.T) {
	handler := entrycmd.NewSubmitEntryHandler(func(string) (*sync.Controller, bool) { return nil, false }, logging.NoOp())

	err := handler.Execute(context.Background(), entrycmd.SubmitEntryCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}
