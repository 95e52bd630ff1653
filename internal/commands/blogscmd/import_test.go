package blogscmd_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/commands/blogscmd"
	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/internal/markdown"
	"github.com/arya-5990/RoarFitnessAdmin/internal/media"
	"github.com/arya-5990/RoarFitnessAdmin/internal/store"
	syncctl "github.com/arya-5990/RoarFitnessAdmin/internal/sync"
)

const samplePost = `---
title: Five Mobility Drills
category: mobility
readingTime: 4 min
image: https://cdn.example/mobility.jpg
---

Start every session with these drills.
`

func TestImportBlogCommandFromSource(t *testing.T) {
	ctx := context.Background()
	backing := store.NewMemoryStore()
	ctrl, err := syncctl.NewController(catalog.Blogs(), backing, media.NewService(nil))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	importer := markdown.NewImporter(ctrl)
	handler := blogscmd.NewImportBlogHandler(importer, logging.NoOp())

	msg := blogscmd.ImportBlogCommand{Source: []byte(samplePost)}
	if err := handler.Execute(ctx, msg); err != nil {
		t.Fatalf("import: %v", err)
	}

	docs, err := backing.List(ctx, catalog.CollectionBlogs)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 || docs[0].Fields["title"] != "Five Mobility Drills" {
		t.Fatalf("unexpected stored posts %+v", docs)
	}
}

func TestImportBlogCommandRequiresSource(t *testing.T) {
	backing := store.NewMemoryStore()
	ctrl, err := syncctl.NewController(catalog.Blogs(), backing, media.NewService(nil))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	handler := blogscmd.NewImportBlogHandler(markdown.NewImporter(ctrl), logging.NoOp())

	execErr := handler.Execute(context.Background(), blogscmd.ImportBlogCommand{})
	if execErr == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(execErr, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", execErr)
	}
}
