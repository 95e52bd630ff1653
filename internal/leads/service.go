package leads

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/logging"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// StatusRead marks a lead the operator has already handled.
const StatusRead = "read"

// ExportSheet is the worksheet name of the spreadsheet export.
const ExportSheet = "UserData"

// SortMode selects the lead list ordering.
type SortMode string

const (
	// SortNewestFirst orders by submission time, most recent on top.
	SortNewestFirst SortMode = "date_desc"
	// SortByDataID orders by the numeric lead sequence, highest on top.
	SortByDataID SortMode = "id_desc"
)

// Lead is one website contact submission.
type Lead struct {
	ID        string
	DataID    string
	Name      string
	Age       string
	Contact   string
	Status    string
	CreatedAt time.Time
}

// Read reports whether the lead has been marked as handled.
func (l Lead) Read() bool {
	return l.Status == StatusRead
}

// FromDocument converts a stored lead record. Missing text fields stay
// empty; the export substitutes its own placeholder.
func FromDocument(doc interfaces.Document) Lead {
	lead := Lead{
		ID:      doc.ID,
		DataID:  leadText(doc.Fields, "Data_id"),
		Name:    leadText(doc.Fields, "user_name"),
		Age:     leadText(doc.Fields, "user_age"),
		Contact: leadText(doc.Fields, "user_contact"),
		Status:  leadText(doc.Fields, "status"),
	}
	if raw := leadText(doc.Fields, "created_at"); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			lead.CreatedAt = ts
		}
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = doc.CreatedAt
	}
	return lead
}

// FromDocuments converts and sorts a snapshot of lead records.
func FromDocuments(docs []interfaces.Document, mode SortMode) []Lead {
	out := make([]Lead, 0, len(docs))
	for _, doc := range docs {
		out = append(out, FromDocument(doc))
	}
	Sort(out, mode)
	return out
}

// Sort orders leads in place according to the mode.
func Sort(list []Lead, mode SortMode) {
	switch mode {
	case SortByDataID:
		sort.SliceStable(list, func(i, j int) bool {
			return numericID(list[i].DataID) > numericID(list[j].DataID)
		})
	default:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		})
	}
}

// ServiceOption customises the leads service.
type ServiceOption func(*service)

// WithLogger attaches a logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the export timestamp source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Service handles the lead operations the console exposes: flipping a lead
// to read and exporting the full list as a spreadsheet. Leads are never
// created or deleted from the console.
type Service interface {
	MarkRead(ctx context.Context, lead Lead) error
	Export(leads []Lead) ([]byte, error)
	ExportFileName() string
}

type service struct {
	store  interfaces.DocumentStore
	logger interfaces.Logger
	clock  func() time.Time
}

// NewService wires the leads service over the document store.
func NewService(store interfaces.DocumentStore, opts ...ServiceOption) Service {
	s := &service{
		store:  store,
		logger: logging.NoOp(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MarkRead flips a lead's status to read. Already-read leads are left
// alone, so repeated taps never issue a write.
func (s *service) MarkRead(ctx context.Context, lead Lead) error {
	if lead.Read() {
		return nil
	}
	_, err := s.store.Merge(ctx, catalog.CollectionLeads, lead.ID, map[string]any{
		"status": StatusRead,
	})
	if err != nil {
		s.logger.Error("leads.mark_read.failed", "id", lead.ID, "error", err)
		return fmt.Errorf("mark lead %s read: %w", lead.ID, err)
	}
	s.logger.Info("leads.mark_read.done", "id", lead.ID)
	return nil
}

// Export renders the leads into an xlsx workbook with one row per lead.
// Blank fields export as "N/A" and the status column spells out Read or
// Unread.
func (s *service) Export(list []Lead) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return nil, fmt.Errorf("export leads: %w", err)
	}

	headers := []string{"ID", "Name", "Age", "Contact", "Date", "Status"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export leads: %w", err)
		}
		if err := f.SetCellValue(ExportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("export leads: %w", err)
		}
	}

	for row, lead := range list {
		status := "Unread"
		if lead.Read() {
			status = "Read"
		}
		values := []string{
			lead.DataID,
			orPlaceholder(lead.Name),
			orPlaceholder(lead.Age),
			orPlaceholder(lead.Contact),
			formatDate(lead.CreatedAt),
			status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("export leads: %w", err)
			}
			if err := f.SetCellValue(ExportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("export leads: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("leads.export.failed", "error", err)
		return nil, fmt.Errorf("export leads: %w", err)
	}
	s.logger.Info("leads.export.done", "count", len(list))
	return buf.Bytes(), nil
}

// ExportFileName returns a timestamped workbook name.
func (s *service) ExportFileName() string {
	return fmt.Sprintf("user_data_%d.xlsx", s.clock().UnixMilli())
}

// DialURL builds the dialer link for a lead's contact number.
func DialURL(contact string) string {
	return "tel:" + strings.TrimSpace(contact)
}

func leadText(fields map[string]any, key string) string {
	if fields == nil {
		return ""
	}
	switch typed := fields[key].(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	default:
		return ""
	}
}

func orPlaceholder(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}

func formatDate(ts time.Time) string {
	if ts.IsZero() {
		return "N/A"
	}
	return ts.Format("1/2/2006, 3:04:05 PM")
}

func numericID(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
