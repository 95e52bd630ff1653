package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/arya-5990/RoarFitnessAdmin/internal/validation"
)

// Collection names as persisted remotely.
const (
	CollectionBasicDetails    = "basic_details"
	CollectionBlogs           = "blogs"
	CollectionFAQ             = "FAQ"
	CollectionPrograms        = "programs"
	CollectionTestimonials    = "testimonials"
	CollectionTrainers        = "trainers"
	CollectionTransformations = "transformations"
	CollectionLeads           = "user_data"
)

// BasicDetailsID is the fixed identifier of the gym details singleton.
const BasicDetailsID = "gym_info"

const (
	maxFAQs              = 5
	maxFAQQuestionWords  = 20
	maxFAQAnswerWords    = 40
	maxTestimonials      = 10
	maxReviewWords       = 60
	maxRating            = 5
	maxBlogContentWords  = 1000
	maxFacilities        = 4
	maxTransformationTxt = 40
)

// BasicDetails is the phone/email/address singleton.
func BasicDetails() Definition {
	return Definition{
		Collection:  CollectionBasicDetails,
		Singleton:   true,
		SingletonID: BasicDetailsID,
		TextFields:  []string{"phone", "email", "address"},
		Validate: func(fields Fields, _ int, _ bool) error {
			if anyBlank(fields, "phone", "email", "address") {
				return &RuleError{Title: TitleError, Message: "Please fill in all fields"}
			}
			if !validation.IsEmail(Text(fields, "email")) {
				return &RuleError{Title: TitleError, Message: "Please enter a valid email address"}
			}
			if !validation.IsPhone(Text(fields, "phone")) {
				return &RuleError{Title: TitleError, Message: "Please enter a valid phone number"}
			}
			return nil
		},
		Stamp: func(fields Fields, now time.Time, _ bool) {
			fields["updatedAt"] = now.UTC().Format(time.RFC3339)
		},
		Normalize: func(fields Fields) {
			trimTextFields(fields, []string{"phone", "email", "address"})
		},
		Notices: Notices{
			Created:     "Basic details updated successfully!",
			Updated:     "Basic details updated successfully!",
			SaveFailed:  "Failed to update details.",
			FetchFailed: "Could not fetch details.",
		},
		Schema: objectSchema(map[string]any{
			"phone":   map[string]any{"type": "string"},
			"email":   map[string]any{"type": "string"},
			"address": map[string]any{"type": "string"},
		}, "phone", "email", "address"),
	}
}

// Blogs covers the blog post collection.
func Blogs() Definition {
	return Definition{
		Collection:  CollectionBlogs,
		MediaFields: []string{"imageUrl"},
		TextFields:  []string{"title", "readingTime", "category", "content"},
		Validate: func(fields Fields, _ int, _ bool) error {
			if anyBlank(fields, "title", "readingTime", "category", "content") {
				return &RuleError{Title: TitleError, Message: "Please fill in all fields"}
			}
			if validation.IsBlank(Text(fields, "imageUrl")) {
				return &RuleError{Title: TitleError, Message: "Please select an image"}
			}
			if !validation.IsSingleWord(Text(fields, "category")) {
				return &RuleError{Title: TitleError, Message: "Category must be a single word"}
			}
			if validation.WordCount(Text(fields, "content")) > maxBlogContentWords {
				return &RuleError{Title: TitleError, Message: "Content exceeds 1000 words limit"}
			}
			return nil
		},
		Stamp: func(fields Fields, now time.Time, editing bool) {
			// dateUploaded survives edits untouched; the merge write keeps
			// whatever the record already carries.
			if editing {
				return
			}
			fields["dateUploaded"] = now.Format("1/2/2006")
		},
		Normalize: func(fields Fields) {
			trimTextFields(fields, []string{"title", "readingTime", "category", "content"})
		},
		Notices: Notices{
			Created:      "Blog uploaded successfully!",
			Updated:      "Blog updated successfully!",
			Deleted:      "Blog deleted successfully",
			SaveFailed:   "Failed to save blog. Please try again.",
			DeleteFailed: "Failed to delete blog",
			FetchFailed:  "Could not fetch blogs.",
		},
		Schema: objectSchema(map[string]any{
			"title":        map[string]any{"type": "string"},
			"readingTime":  map[string]any{"type": "string"},
			"category":     map[string]any{"type": "string"},
			"content":      map[string]any{"type": "string"},
			"imageUrl":     map[string]any{"type": "string"},
			"dateUploaded": map[string]any{"type": "string"},
		}, "title", "readingTime", "category", "content", "imageUrl"),
	}
}

// FAQ covers the question/answer collection. At most five questions.
func FAQ() Definition {
	def := Definition{
		Collection: CollectionFAQ,
		TextFields: []string{"question", "answer"},
		CreateCap:  maxFAQs,
		Stamp: func(fields Fields, now time.Time, editing bool) {
			stamp := now.UTC().Format(time.RFC3339)
			fields["updatedAt"] = stamp
			if !editing {
				fields["createdAt"] = stamp
			}
		},
		Normalize: func(fields Fields) {
			trimTextFields(fields, []string{"question", "answer"})
		},
		Notices: Notices{
			Created:      "FAQ added successfully!",
			Updated:      "FAQ updated successfully!",
			SaveFailed:   "Failed to save FAQ.",
			DeleteFailed: "Failed to delete FAQ.",
			FetchFailed:  "Could not fetch FAQs.",
		},
		Schema: objectSchema(map[string]any{
			"question": map[string]any{"type": "string"},
			"answer":   map[string]any{"type": "string"},
		}, "question", "answer"),
	}
	def.Validate = func(fields Fields, existing int, editing bool) error {
		if anyBlank(fields, "question", "answer") {
			return &RuleError{Title: TitleError, Message: "Please fill in both question and answer."}
		}
		if words := validation.WordCount(Text(fields, "question")); words > maxFAQQuestionWords {
			return &RuleError{
				Title:   TitleLimitExceeded,
				Message: fmt.Sprintf("Question must be %d words or less. Current: %d", maxFAQQuestionWords, words),
			}
		}
		if words := validation.WordCount(Text(fields, "answer")); words > maxFAQAnswerWords {
			return &RuleError{
				Title:   TitleLimitExceeded,
				Message: fmt.Sprintf("Answer must be %d words or less. Current: %d", maxFAQAnswerWords, words),
			}
		}
		if !editing && existing >= def.CreateCap {
			return &RuleError{
				Title:   TitleLimitReached,
				Message: fmt.Sprintf("You can only have up to %d FAQs. Please delete one first.", def.CreateCap),
			}
		}
		return nil
	}
	return def
}

// Programs covers membership programs with their facility lists.
func Programs() Definition {
	return Definition{
		Collection: CollectionPrograms,
		TextFields: []string{"programType", "planType", "duration", "description"},
		Validate: func(fields Fields, _ int, _ bool) error {
			if anyBlank(fields, "programType", "planType", "duration", "description") || blankNumberOrText(fields, "price") {
				return &RuleError{Title: TitleError, Message: "Please fill in all fields"}
			}
			if _, ok := Number(fields, "price"); !ok {
				return &RuleError{Title: TitleError, Message: "Please enter a valid price"}
			}
			if len(StringList(fields, "facilities")) > maxFacilities {
				return &RuleError{
					Title:   TitleLimitReached,
					Message: fmt.Sprintf("You can only add up to %d facilities.", maxFacilities),
				}
			}
			return nil
		},
		Stamp: stampCreatedOrUpdated,
		Normalize: func(fields Fields) {
			trimTextFields(fields, []string{"programType", "planType", "duration", "description"})
			if price, ok := Number(fields, "price"); ok {
				fields["price"] = price
			}
			fields["facilities"] = filterFacilities(StringList(fields, "facilities"))
		},
		Notices: Notices{
			Created:      "Program added successfully!",
			Updated:      "Program updated successfully!",
			SaveFailed:   "Failed to save program.",
			DeleteFailed: "Failed to delete program.",
			FetchFailed:  "Could not fetch programs.",
		},
		Schema: objectSchema(map[string]any{
			"programType": map[string]any{"type": "string"},
			"planType":    map[string]any{"type": "string"},
			"price":       map[string]any{"type": "number"},
			"duration":    map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"facilities": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"maxItems": maxFacilities,
			},
		}, "programType", "planType", "price", "duration", "description"),
	}
}

// Testimonials covers member reviews. At most ten shown.
func Testimonials() Definition {
	def := Definition{
		Collection: CollectionTestimonials,
		TextFields: []string{"name", "programType", "review"},
		CreateCap:  maxTestimonials,
		Stamp: stampCreatedOrUpdated,
		Normalize: func(fields Fields) {
			trimTextFields(fields, []string{"name", "programType", "review"})
			if rating, ok := Number(fields, "rating"); ok {
				fields["rating"] = int(rating)
			}
		},
		Notices: Notices{
			Created:      "Testimonial added successfully!",
			Updated:      "Testimonial updated successfully!",
			SaveFailed:   "Failed to save testimonial.",
			DeleteFailed: "Failed to delete review.",
			FetchFailed:  "Could not fetch testimonials.",
		},
		Schema: objectSchema(map[string]any{
			"name":        map[string]any{"type": "string"},
			"programType": map[string]any{"type": "string"},
			"review":      map[string]any{"type": "string"},
			"rating":      map[string]any{"type": "integer", "minimum": 1, "maximum": maxRating},
		}, "name", "programType", "review", "rating"),
	}
	def.Validate = func(fields Fields, existing int, editing bool) error {
		if anyBlank(fields, "name", "programType", "review") {
			return &RuleError{Title: TitleError, Message: "Please fill in all fields"}
		}
		if words := validation.WordCount(Text(fields, "review")); words > maxReviewWords {
			return &RuleError{
				Title:   TitleLimitExceeded,
				Message: fmt.Sprintf("Review must be %d words or less. Current: %d", maxReviewWords, words),
			}
		}
		if !editing && existing >= def.CreateCap {
			return &RuleError{
				Title:   TitleLimitReached,
				Message: fmt.Sprintf("You can only show up to %d testimonials.", def.CreateCap),
			}
		}
		if rating, ok := Number(fields, "rating"); !ok || rating < 1 || rating > maxRating || rating != float64(int(rating)) {
			return &RuleError{Title: TitleError, Message: "Rating must be a whole number between 1 and 5"}
		}
		return nil
	}
	return def
}

// Trainers covers staff profiles with a photo.
func Trainers() Definition {
	return Definition{
		Collection:  CollectionTrainers,
		MediaFields: []string{"imageUrl"},
		TextFields:  []string{"name", "speciality"},
		Validate: func(fields Fields, _ int, _ bool) error {
			if anyBlank(fields, "name", "speciality") {
				return &RuleError{Title: TitleError, Message: "Please fill in all fields"}
			}
			if validation.IsBlank(Text(fields, "imageUrl")) {
				return &RuleError{Title: TitleError, Message: "Please select an image"}
			}
			return nil
		},
		Stamp: stampCreatedOrUpdated,
		Normalize: func(fields Fields) {
			trimTextFields(fields, []string{"name", "speciality"})
		},
		Notices: Notices{
			Created:      "Trainer added successfully!",
			Updated:      "Trainer updated successfully!",
			SaveFailed:   "Failed to save trainer.",
			DeleteFailed: "Failed to delete trainer.",
			FetchFailed:  "Could not fetch trainers.",
		},
		Schema: objectSchema(map[string]any{
			"name":       map[string]any{"type": "string"},
			"speciality": map[string]any{"type": "string"},
			"imageUrl":   map[string]any{"type": "string"},
		}, "name", "speciality", "imageUrl"),
	}
}

// Transformations covers before/after member stories.
func Transformations() Definition {
	return Definition{
		Collection:  CollectionTransformations,
		MediaFields: []string{"beforeImage", "afterImage"},
		TextFields:  []string{"title", "category", "duration", "description", "quote", "howWeDidIt"},
		Validate: func(fields Fields, _ int, _ bool) error {
			if anyBlank(fields, "title", "category", "duration", "description", "quote", "howWeDidIt") {
				return &RuleError{Title: TitleError, Message: "Please fill in all text fields"}
			}
			if validation.IsBlank(Text(fields, "beforeImage")) || validation.IsBlank(Text(fields, "afterImage")) {
				return &RuleError{Title: TitleError, Message: "Please select both Before and After images"}
			}
			if validation.WordCount(Text(fields, "description")) > maxTransformationTxt {
				return &RuleError{
					Title:   TitleLimitExceeded,
					Message: fmt.Sprintf("Description must be %d words or less.", maxTransformationTxt),
				}
			}
			if validation.WordCount(Text(fields, "howWeDidIt")) > maxTransformationTxt {
				return &RuleError{
					Title:   TitleLimitExceeded,
					Message: fmt.Sprintf("%q must be %d words or less.", "How We Did It", maxTransformationTxt),
				}
			}
			return nil
		},
		Stamp: stampCreatedOrUpdated,
		Normalize: func(fields Fields) {
			trimTextFields(fields, []string{"title", "category", "duration", "description", "quote", "howWeDidIt"})
		},
		Notices: Notices{
			Created:      "Transformation added!",
			Updated:      "Transformation updated!",
			SaveFailed:   "Failed to save transformation.",
			DeleteFailed: "Failed to delete.",
			FetchFailed:  "Could not fetch transformations.",
		},
		Schema: objectSchema(map[string]any{
			"title":       map[string]any{"type": "string"},
			"category":    map[string]any{"type": "string"},
			"duration":    map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"quote":       map[string]any{"type": "string"},
			"howWeDidIt":  map[string]any{"type": "string"},
			"beforeImage": map[string]any{"type": "string"},
			"afterImage":  map[string]any{"type": "string"},
		}, "title", "category", "duration", "description", "quote", "howWeDidIt", "beforeImage", "afterImage"),
	}
}

// Leads covers website contact submissions. The admin console never creates
// these; it only reads them, flips their status, and exports them.
func Leads() Definition {
	return Definition{
		Collection: CollectionLeads,
		Validate:   func(Fields, int, bool) error { return nil },
		Stamp:      func(Fields, time.Time, bool) {},
		Notices: Notices{
			SaveFailed:  "Failed to mark as read.",
			FetchFailed: "Could not fetch data.",
		},
	}
}

// All returns every entity definition keyed by collection.
func All() map[string]Definition {
	defs := []Definition{
		BasicDetails(),
		Blogs(),
		FAQ(),
		Programs(),
		Testimonials(),
		Trainers(),
		Transformations(),
		Leads(),
	}
	out := make(map[string]Definition, len(defs))
	for _, def := range defs {
		out[def.Collection] = def
	}
	return out
}

// stampCreatedOrUpdated is the shared policy: creation stamps createdAt,
// edits stamp updatedAt and never touch createdAt.
func stampCreatedOrUpdated(fields Fields, now time.Time, editing bool) {
	stamp := now.UTC().Format(time.RFC3339)
	if editing {
		fields["updatedAt"] = stamp
		return
	}
	fields["createdAt"] = stamp
}

func filterFacilities(list []string) []string {
	out := make([]string, 0, len(list))
	for _, entry := range list {
		if trimmed := strings.TrimSpace(entry); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func blankNumberOrText(fields Fields, key string) bool {
	switch typed := fields[key].(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(typed) == ""
	default:
		return false
	}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
