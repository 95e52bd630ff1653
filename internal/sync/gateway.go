package sync

import (
	"context"
	"fmt"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/forms"
	"github.com/arya-5990/RoarFitnessAdmin/internal/media"
	"github.com/arya-5990/RoarFitnessAdmin/internal/validation"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// Gateway performs the remote writes for one entity collection. It owns no
// validation or timing policy; the reconciler hands it payloads that are
// already validated, normalized, and stamped.
type Gateway struct {
	def   catalog.Definition
	store interfaces.DocumentStore
	media media.Service
}

// NewGateway wires a write gateway for the given entity definition.
func NewGateway(def catalog.Definition, store interfaces.DocumentStore, mediaSvc media.Service) *Gateway {
	return &Gateway{def: def, store: store, media: mediaSvc}
}

// UploadPending rewrites every media field still holding a local reference
// to its uploaded remote URL. Fields already carrying remote URLs are left
// alone, so an unchanged photo never re-uploads. The payload is mutated in
// place only after every upload succeeds.
func (g *Gateway) UploadPending(ctx context.Context, fields catalog.Fields) error {
	if len(g.def.MediaFields) == 0 {
		return nil
	}
	resolved := make(map[string]string, len(g.def.MediaFields))
	for _, key := range g.def.MediaFields {
		ref := catalog.Text(fields, key)
		if ref == "" || forms.IsRemoteRef(ref) {
			continue
		}
		if g.media == nil {
			return media.ErrUploaderUnavailable
		}
		url, err := g.media.EnsureRemote(ctx, ref)
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		resolved[key] = url
	}
	for key, url := range resolved {
		fields[key] = url
	}
	return nil
}

// Write persists the payload. Singletons are upserted under their fixed
// identifier, edits merge into the existing record, and creates mint a new
// one. The payload is schema-checked first when the definition carries one.
func (g *Gateway) Write(ctx context.Context, recordID string, fields catalog.Fields) (*interfaces.Document, error) {
	if err := validation.ValidatePayload(g.def.Schema, fields); err != nil {
		return nil, err
	}
	if g.def.Singleton {
		return g.store.Upsert(ctx, g.def.Collection, g.def.SingletonID, fields)
	}
	if recordID != "" {
		return g.store.Merge(ctx, g.def.Collection, recordID, fields)
	}
	return g.store.Create(ctx, g.def.Collection, fields)
}

// Delete removes a record from the collection.
func (g *Gateway) Delete(ctx context.Context, recordID string) error {
	return g.store.Delete(ctx, g.def.Collection, recordID)
}
