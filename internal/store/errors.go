package store

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
)

var (
	// ErrCollectionRequired reports an empty collection identifier.
	ErrCollectionRequired = errors.New("store: collection is required")
	// ErrDocumentIDRequired reports an empty document identifier.
	ErrDocumentIDRequired = errors.New("store: document id is required")
	// ErrStoreClosed reports operations against a closed store.
	ErrStoreClosed = errors.New("store: store is closed")
)

// NotFoundError represents a missing document lookup.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("document in %s not found", e.Collection)
	}
	return fmt.Sprintf("document %s/%s not found", e.Collection, e.ID)
}

func mapRepositoryError(err error, collection, id string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Collection: collection, ID: id}
	}
	return fmt.Errorf("document repository error: %w", err)
}
