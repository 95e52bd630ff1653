package main

import (
	"context"
	"fmt"
	"log"
	"os"

	admin "github.com/arya-5990/RoarFitnessAdmin"
	"github.com/arya-5990/RoarFitnessAdmin/internal/catalog"
	"github.com/arya-5990/RoarFitnessAdmin/internal/commands/entrycmd"
	"github.com/arya-5990/RoarFitnessAdmin/internal/leads"
)

func main() {
	ctx := context.Background()

	cfg := admin.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"

	module, err := admin.New(cfg)
	if err != nil {
		log.Fatalf("assemble module: %v", err)
	}
	if err := module.Start(ctx); err != nil {
		log.Fatalf("start module: %v", err)
	}
	defer module.Close()

	// Fill in the gym details singleton.
	details := module.BasicDetails()
	session := details.NewSession()
	session.Set("phone", "9876543210")
	session.Set("email", "frontdesk@roarfitness.example")
	session.Set("address", "14 Market Road, Pune")
	if notice, err := details.Submit(ctx, session); err != nil {
		log.Fatalf("save details: %v", err)
	} else {
		fmt.Printf("%s: %s\n", notice.Title, notice.Message)
	}

	// Add an FAQ and watch the live mirror pick it up.
	faqs := module.FAQs()
	faq := faqs.NewSession()
	faq.Set("question", "What are your opening hours?")
	faq.Set("answer", "We are open 6am to 10pm every day of the week.")
	if notice, err := faqs.Submit(ctx, faq); err != nil {
		log.Fatalf("save faq: %v", err)
	} else {
		fmt.Printf("%s: %s\n", notice.Title, notice.Message)
	}

	<-faqs.Updates()
	for _, doc := range faqs.Records() {
		fmt.Printf("faq %s: %v\n", doc.ID, doc.Fields["question"])
	}

	// Hosts with a message bus dispatch the same operations as commands.
	cmds := module.Commands()
	if err := cmds.SubmitEntry.Execute(ctx, entrycmd.SubmitEntryCommand{
		Collection: catalog.CollectionPrograms,
		Fields: map[string]any{
			"programType": "Strength Basics",
			"planType":    "Monthly",
			"duration":    "8 weeks",
			"description": "Beginner program covering the main lifts.",
			"price":       "1999",
		},
	}); err != nil {
		log.Fatalf("submit program: %v", err)
	}
	programs := module.Programs()
	<-programs.Updates()
	fmt.Printf("programs: %d\n", len(programs.Records()))

	// Export the (empty) lead list to a spreadsheet.
	svc := module.Leads()
	workbook, err := svc.Export(nil)
	if err != nil {
		log.Fatalf("export leads: %v", err)
	}
	name := svc.ExportFileName()
	if err := os.WriteFile(name, workbook, 0o644); err != nil {
		log.Fatalf("write %s: %v", name, err)
	}
	fmt.Printf("exported %s (%d bytes)\n", name, len(workbook))
	fmt.Println("dial:", leads.DialURL("98765 43210"))
}
