package leads_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/leads"
	"github.com/arya-5990/RoarFitnessAdmin/internal/store"
	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

func seedLead(t *testing.T, s *store.MemoryStore, dataID, name, status string, created time.Time) interfaces.Document {
	t.Helper()
	doc, err := s.Upsert(context.Background(), catalog.CollectionLeads, "lead-"+dataID, map[string]any{
		"Data_id":      dataID,
		"user_name":    name,
		"user_age":     "29",
		"user_contact": "9876543210",
		"created_at":   created.Format(time.RFC3339),
		"status":       status,
	})
	if err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	return *doc
}

func TestFromDocumentsSortsNewestFirst(t *testing.T) {
	s := store.NewMemoryStore()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedLead(t, s, "1", "First", "", base)
	seedLead(t, s, "2", "Second", "", base.Add(time.Hour))
	seedLead(t, s, "3", "Third", "", base.Add(2*time.Hour))

	docs, err := s.List(context.Background(), catalog.CollectionLeads)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	list := leads.FromDocuments(docs, leads.SortNewestFirst)
	if len(list) != 3 {
		t.Fatalf("expected 3 leads got %d", len(list))
	}
	if list[0].Name != "Third" || list[2].Name != "First" {
		t.Fatalf("unexpected order: %s, %s, %s", list[0].Name, list[1].Name, list[2].Name)
	}
}

func TestFromDocumentsSortsByDataID(t *testing.T) {
	s := store.NewMemoryStore()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedLead(t, s, "7", "Seven", "", base.Add(time.Hour))
	seedLead(t, s, "12", "Twelve", "", base)

	docs, _ := s.List(context.Background(), catalog.CollectionLeads)
	list := leads.FromDocuments(docs, leads.SortByDataID)
	if list[0].Name != "Twelve" {
		t.Fatalf("expected numeric descending order, got %s first", list[0].Name)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	s := store.NewMemoryStore()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := seedLead(t, s, "1", "First", "", base)

	svc := leads.NewService(s)
	lead := leads.FromDocument(doc)
	if lead.Read() {
		t.Fatalf("seeded lead must start unread")
	}

	if err := svc.MarkRead(context.Background(), lead); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	updated, err := s.Get(context.Background(), catalog.CollectionLeads, doc.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if updated.Fields["status"] != leads.StatusRead {
		t.Fatalf("expected status read got %v", updated.Fields["status"])
	}

	// Marking an already read lead issues no write.
	readLead := leads.FromDocument(*updated)
	before := updated.UpdatedAt
	if err := svc.MarkRead(context.Background(), readLead); err != nil {
		t.Fatalf("second mark read: %v", err)
	}
	after, _ := s.Get(context.Background(), catalog.CollectionLeads, doc.ID)
	if !after.UpdatedAt.Equal(before) {
		t.Fatalf("already read lead must not be rewritten")
	}
}

func TestExportWorkbook(t *testing.T) {
	svc := leads.NewService(store.NewMemoryStore(),
		leads.WithClock(func() time.Time { return time.Unix(1700000000, 0) }),
	)

	created := time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC)
	workbook, err := svc.Export([]leads.Lead{
		{DataID: "1", Name: "Asha", Age: "29", Contact: "9876543210", Status: leads.StatusRead, CreatedAt: created},
		{DataID: "2", CreatedAt: created},
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(leads.ExportSheet)
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus two rows got %d", len(rows))
	}
	header := strings.Join(rows[0], ",")
	if header != "ID,Name,Age,Contact,Date,Status" {
		t.Fatalf("unexpected header %q", header)
	}
	if rows[1][1] != "Asha" || rows[1][5] != "Read" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
	if rows[2][1] != "N/A" || rows[2][5] != "Unread" {
		t.Fatalf("blank fields must export as N/A, got %v", rows[2])
	}
}

func TestExportFileName(t *testing.T) {
	svc := leads.NewService(store.NewMemoryStore(),
		leads.WithClock(func() time.Time { return time.UnixMilli(1700000000123) }),
	)
	if got := svc.ExportFileName(); got != "user_data_1700000000123.xlsx" {
		t.Fatalf("unexpected file name %s", got)
	}
}

func TestDialURL(t *testing.T) {
	if got := leads.DialURL(" 9876543210 "); got != "tel:9876543210" {
		t.Fatalf("unexpected dial url %s", got)
	}
}
