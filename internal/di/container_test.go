package di_test

import (
	"context"
	"testing"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/commands/entrycmd"
	"github.com/arya-5990/RoarFitnessAdmin/internal/di"
	"github.com/arya-5990/RoarFitnessAdmin/internal/runtimeconfig"
)

func entrySubmit(collection string) entrycmd.SubmitEntryCommand {
	return entrycmd.SubmitEntryCommand{
		Collection: collection,
		Fields: map[string]any{
			"question": "What are your opening hours?",
			"answer":   "We are open 6am to 10pm.",
		},
	}
}

func TestContainerWiresEveryCollection(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer container.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := container.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	for name := range catalog.All() {
		if _, ok := container.Controller(name); !ok {
			t.Fatalf("missing controller for %q", name)
		}
	}
	if container.DocumentStore() == nil {
		t.Fatal("expected a document store")
	}
	if container.LeadsService() == nil {
		t.Fatal("expected a leads service")
	}
}

func TestContainerWiresCommandHandlers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.BlogImport = true
	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer container.Close()

	cmds := container.Commands()
	if cmds.SubmitEntry == nil || cmds.DeleteEntry == nil {
		t.Fatal("expected entry handlers to be wired")
	}
	if cmds.MarkLeadRead == nil || cmds.ExportLeads == nil {
		t.Fatal("expected lead handlers to be wired")
	}
	if cmds.ImportBlog == nil {
		t.Fatal("expected blog import handler when the feature is on")
	}

	msg := entrySubmit(catalog.CollectionFAQ)
	if err := cmds.SubmitEntry.Execute(context.Background(), msg); err != nil {
		t.Fatalf("submit through container wiring: %v", err)
	}
	docs, err := container.DocumentStore().List(context.Background(), catalog.CollectionFAQ)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected one stored faq, got %d", len(docs))
	}
}

func TestContainerSkipsImportHandlerWhenDisabled(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer container.Close()

	if container.BlogImporter() != nil {
		t.Fatal("expected importer to be off by default")
	}
	if container.Commands().ImportBlog != nil {
		t.Fatal("expected no blog import handler when the feature is off")
	}
}
