package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"leaddesk/internal/config"
	"leaddesk/internal/database"
	"leaddesk/internal/domain/intake"
	"leaddesk/internal/domain/lead"
	"leaddesk/internal/domain/upload"
	"leaddesk/internal/logger"
)

func main() {
	os.Exit(start())
}

// start returns the exit code so deferred cleanup runs before os.Exit.
func start() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProd() {
		log.Error("refusing to seed a production database")
		return 1
	}
	if err := seed(context.Background(), cfg, log); err != nil {
		log.Error("seed failed", zap.Error(err))
		return 1
	}
	return 0
}

func seed(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	log.Info("running migrations")
	if err := database.Migrate(db, &intake.Intake{}, &lead.Lead{}, &upload.Upload{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log.Info("cleaning old data")
	for _, table := range []string{"intakes", "leads", "uploads"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	// ================== CONTACT LEADS ==================
	leads := lead.NewService(lead.NewRepository(db), nil, 0, log)
	for _, req := range demoContacts {
		l, err := leads.SubmitContact(ctx, &req, "127.0.0.1", "seed")
		if err != nil {
			return fmt.Errorf("seed lead %s: %w", req.Email, err)
		}
		log.Info("lead created", zap.Int64("id", l.ID), zap.String("email", l.Email))
	}

	// ================== INTAKES ==================
	intakes := demoIntakes()
	pipeline := intake.NewPipeline(nil, intake.NewRepository(db), nil, 0, log)
	for i, rec := range intakes {
		in, err := pipeline.Submit(ctx, fmt.Sprintf("seed-%d", i+1), rec, nil)
		if err != nil {
			return fmt.Errorf("seed intake %s: %w", rec.LegalName, err)
		}
		log.Info("intake created", zap.Int64("id", in.ID), zap.String("legal_name", in.LegalName))
	}

	log.Info("seed completed", zap.Int("leads", len(demoContacts)), zap.Int("intakes", len(intakes)))
	return nil
}

var demoContacts = []lead.ContactRequest{
	{
		Name:            "Maria Lopez",
		Email:           "maria@lopezdesign.test",
		Phone:           "+1 512 555 0134",
		BusinessName:    "Lopez Design Studio",
		RevenueRange:    "25k-50k",
		BookkeepingTool: "quickbooks",
		Message:         "Our books are about six months behind. Can you help us catch up before tax season?",
	},
	{
		Name:            "Tom Becker",
		Email:           "tom@beckerbuilds.test",
		BusinessName:    "Becker Builds",
		RevenueRange:    "100k-250k",
		BookkeepingTool: "spreadsheets",
		Message:         "Looking for monthly bookkeeping and payroll coordination.",
	},
	{
		Name:         "Priya Natarajan",
		Email:        "priya@natarajan.test",
		BusinessName: "Natarajan Tutoring",
		Message:      "Just starting out. What does a free consultation cover?",
	},
}

func demoIntakes() []intake.Record {
	a := intake.NewRecord()
	a.LegalName = "Green Leaf Cafe LLC"
	a.DBA = "Green Leaf"
	a.Industry = "restaurant"
	a.EntityType = "llc"
	a.StateProvince = "OR"
	a.ContactName = "Alex Kim"
	a.ContactEmail = "alex@greenleaf.test"
	a.AccountingPlatform = "xero"
	a.BankAccounts = "1 checking, 1 savings"
	a.CreditCards = "Amex business"
	a.MerchantAccounts = "Square"
	a.TransactionVolume = "300-500"
	a.ServicesNeeded = []string{"monthly", "payroll"}

	b := intake.NewRecord()
	b.LegalName = "Northwind Consulting Inc."
	b.Industry = "services"
	b.EntityType = "s-corp"
	b.StateProvince = "ON"
	b.Country = "Canada"
	b.ContactName = "Jordan Lee"
	b.ContactEmail = "jordan@northwind.test"
	b.ContactPhone = "+1 416 555 0199"
	b.AccountingPlatform = "none"
	b.BankAccounts = "RBC operating"
	b.TransactionVolume = "under-50"
	b.ServicesNeeded = []string{"cleanup", "reports"}
	b.Notes = "Switching from a shoebox of receipts."

	return []intake.Record{a, b}
}
