package sync

import (
	"errors"
	"fmt"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
)

// Notice is a blocking message surfaced to the operator. Every failure and
// every successful submit resolves to exactly one notice.
type Notice struct {
	Title   string
	Message string
}

// FailureKind classifies where in the submit pipeline an error occurred.
type FailureKind string

const (
	// FailureValidation means a rule rejected the payload before any
	// network traffic.
	FailureValidation FailureKind = "validation"
	// FailureUpload means a pending media upload did not complete.
	FailureUpload FailureKind = "upload"
	// FailureWrite means the remote write itself failed.
	FailureWrite FailureKind = "write"
	// FailureSubscription means the live collection feed errored.
	FailureSubscription FailureKind = "subscription"
)

// Failure wraps an error from the submit pipeline with the notice shown to
// the operator. The form session is left untouched on any failure so the
// operator can retry without re-entering data.
type Failure struct {
	Kind   FailureKind
	Notice Notice
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s failure: %s", f.Kind, f.Notice.Message)
	}
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// AsFailure extracts a pipeline failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

func validationFailure(err error) *Failure {
	notice := Notice{Title: catalog.TitleError, Message: err.Error()}
	var rule *catalog.RuleError
	if errors.As(err, &rule) {
		notice = Notice{Title: rule.Title, Message: rule.Message}
	}
	return &Failure{Kind: FailureValidation, Notice: notice, Err: err}
}

func uploadFailure(err error, notices catalog.Notices) *Failure {
	return &Failure{
		Kind:   FailureUpload,
		Notice: Notice{Title: catalog.TitleError, Message: notices.SaveFailed},
		Err:    err,
	}
}

func writeFailure(err error, message string) *Failure {
	return &Failure{
		Kind:   FailureWrite,
		Notice: Notice{Title: catalog.TitleError, Message: message},
		Err:    err,
	}
}
