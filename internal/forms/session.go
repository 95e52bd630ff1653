package forms

import (
	"strings"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// Session holds the transient create/edit state for a single record: the
// identifier being edited (empty means create mode), the working copy of
// every field, and which media fields still point at local device files.
// Sessions never touch the network; the reconciler owns that.
type Session struct {
	recordID string
	fields   catalog.Fields
}

// NewSession returns a blank session in create mode.
func NewSession() *Session {
	return &Session{fields: catalog.Fields{}}
}

// EditSession initializes a session from an existing record. Every field is
// copied verbatim, including media URLs already hosted remotely, so an
// unchanged photo never re-uploads on submit.
func EditSession(doc *interfaces.Document) *Session {
	s := NewSession()
	if doc == nil {
		return s
	}
	s.recordID = doc.ID
	for key, value := range doc.Fields {
		s.fields[key] = value
	}
	return s
}

// RecordID returns the identifier of the record under edit, empty in
// create mode.
func (s *Session) RecordID() string {
	return s.recordID
}

// Editing reports whether the session targets an existing record.
func (s *Session) Editing() bool {
	return s.recordID != ""
}

// Set stores one field value.
func (s *Session) Set(key string, value any) {
	s.fields[key] = value
}

// Get reads one field value.
func (s *Session) Get(key string) any {
	return s.fields[key]
}

// Text reads one field as a string.
func (s *Session) Text(key string) string {
	return catalog.Text(s.fields, key)
}

// Fields returns a copy of the working payload. Mutating the copy does not
// affect the session, so a failed submit leaves every edit in place.
func (s *Session) Fields() catalog.Fields {
	copied := make(catalog.Fields, len(s.fields))
	for key, value := range s.fields {
		switch typed := value.(type) {
		case []string:
			copied[key] = append([]string(nil), typed...)
		default:
			copied[key] = value
		}
	}
	return copied
}

// PendingMedia lists the media fields whose value is still a local device
// reference rather than a remote URL.
func (s *Session) PendingMedia(mediaFields []string) []string {
	pending := make([]string, 0, len(mediaFields))
	for _, key := range mediaFields {
		value := s.Text(key)
		if value == "" {
			continue
		}
		if !IsRemoteRef(value) {
			pending = append(pending, key)
		}
	}
	return pending
}

// Reset returns the session to blank create mode. Called when the form is
// opened for a new record, after a successful submit, and on cancel.
func (s *Session) Reset() {
	s.recordID = ""
	s.fields = catalog.Fields{}
}

// IsRemoteRef reports whether a media reference already points at hosted
// storage. Anything else is treated as a pending local file.
func IsRemoteRef(ref string) bool {
	return strings.HasPrefix(ref, "http")
}
