package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Fields is the JSON-like payload of one entity record.
type Fields = map[string]any

// RuleError is a single failed validation rule, carrying the static notice
// title and human-readable message shown to the operator. Validation stops
// at the first failing rule, so one RuleError is all a submit ever surfaces.
type RuleError struct {
	Title   string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// Notice titles reused across every entity.
const (
	TitleError         = "Error"
	TitleSuccess       = "Success"
	TitleLimitExceeded = "Limit Exceeded"
	TitleLimitReached  = "Limit Reached"
)

// Notices holds the static user-facing messages for one entity's
// operations. Failures always block with the same message; success
// messages distinguish create from update. An empty Deleted means the
// entity removes records silently.
type Notices struct {
	Created      string
	Updated      string
	Deleted      string
	SaveFailed   string
	DeleteFailed string
	FetchFailed  string
}

// Definition parameterizes the sync controller for one entity type.
type Definition struct {
	// Collection is the remote collection name.
	Collection string
	// Singleton marks collections holding exactly one well-known document.
	Singleton bool
	// SingletonID is the fixed identifier of the singleton document.
	SingletonID string
	// MediaFields lists payload keys that may hold a pending local image
	// reference requiring upload before the write.
	MediaFields []string
	// TextFields are trimmed before persistence.
	TextFields []string
	// CreateCap limits collection size. Validate reads it when creating;
	// zero means uncapped.
	CreateCap int
	// Validate applies the entity's rules in their fixed order. existing is
	// the local mirror's record count; editing is true when the session has
	// a record identifier.
	Validate func(fields Fields, existing int, editing bool) error
	// Stamp writes the entity's timestamp fields. Merge semantics preserve
	// whatever an edit leaves out, so creation-time stamps are simply not
	// rewritten when editing.
	Stamp func(fields Fields, now time.Time, editing bool)
	// Notices are the static blocking messages surfaced for this entity.
	Notices Notices
	// Normalize adjusts the payload after validation, before any upload or
	// write (field trimming, numeric coercion, list filtering).
	Normalize func(fields Fields)
	// Schema optionally guards the payload shape before it reaches the
	// store. JSON Schema draft 2020-12.
	Schema map[string]any
}

// Text returns a payload value as a string; missing or non-string values
// read as empty.
func Text(fields Fields, key string) string {
	if fields == nil {
		return ""
	}
	value, ok := fields[key].(string)
	if !ok {
		return ""
	}
	return value
}

// StringList returns a payload value as a string slice. JSON decoding may
// deliver []any, which is converted element-wise.
func StringList(fields Fields, key string) []string {
	if fields == nil {
		return nil
	}
	switch typed := fields[key].(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Number returns a payload value as float64 when it holds a numeric type or
// a parseable string.
func Number(fields Fields, key string) (float64, bool) {
	if fields == nil {
		return 0, false
	}
	switch typed := fields[key].(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		var parsed float64
		if _, err := fmt.Sscanf(strings.TrimSpace(typed), "%g", &parsed); err == nil {
			return parsed, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// AppendListEntry trims the candidate and appends it unless blank or the
// list already holds max entries. Used for repeated sub-fields such as
// program facilities.
func AppendListEntry(list []string, value string, max int) ([]string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return list, nil
	}
	if len(list) >= max {
		return list, &RuleError{
			Title:   TitleLimitReached,
			Message: fmt.Sprintf("You can only add up to %d facilities.", max),
		}
	}
	return append(list, trimmed), nil
}

func trimTextFields(fields Fields, keys []string) {
	for _, key := range keys {
		if value, ok := fields[key].(string); ok {
			fields[key] = strings.TrimSpace(value)
		}
	}
}

func anyBlank(fields Fields, keys ...string) bool {
	for _, key := range keys {
		if strings.TrimSpace(Text(fields, key)) == "" {
			return true
		}
	}
	return false
}
