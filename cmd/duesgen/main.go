package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"clubmanager/internal/config"
	"clubmanager/internal/database"
	"clubmanager/internal/models"
	"clubmanager/internal/notify"
	"clubmanager/internal/repository"
	"clubmanager/internal/service"
)

// duesgen issues the monthly dues batch. Individuals and family heads
// each get one due per period; re-running a period is a no-op for
// members already billed.
func main() {
	now := time.Now()
	month := flag.Int("month", int(now.Month()), "Billing month (1-12)")
	year := flag.Int("year", now.Year(), "Billing year")
	dueDay := flag.Int("due-day", 10, "Day of the month the due falls on")
	notifyMembers := flag.Bool("notify", false, "Send a notice to each billed member")
	flag.Parse()

	if *month < 1 || *month > 12 {
		log.Fatalf("Invalid month: %d", *month)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	memberRepo := repository.NewMemberRepository(db)
	dueRepo := repository.NewDueRepository(db)
	feeService := service.NewFeeService(memberRepo, cfg.MonthlyBasePrice)

	ctx := context.Background()
	var notifier *notify.SESNotifier
	if *notifyMembers {
		notifier, err = notify.NewSESNotifier(ctx, cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, memberRepo)
		if err != nil {
			log.Fatalf("Failed to initialize notifier: %v", err)
		}
	}

	members, err := memberRepo.GetResponsibleMembers()
	if err != nil {
		log.Fatalf("Failed to load responsible members: %v", err)
	}

	dueDate := time.Date(*year, time.Month(*month), *dueDay, 0, 0, 0, 0, time.UTC)
	issued, skipped, failed := 0, 0, 0

	for _, member := range members {
		billed, err := dueRepo.HasDueForPeriod(member.ID, *month, *year)
		if err != nil {
			log.Printf("Failed to check period for member %d: %v", member.ID, err)
			failed++
			continue
		}
		if billed {
			skipped++
			continue
		}

		computation, err := feeService.ComputeDue(member.ID)
		if err != nil {
			log.Printf("Failed to compute due for member %d: %v", member.ID, err)
			failed++
			continue
		}

		due, err := dueRepo.CreateDue(&models.Due{
			MemberID: computation.BilledMemberID,
			Month:    *month,
			Year:     *year,
			Amount:   computation.Amount,
			DueDate:  dueDate,
		})
		if err != nil {
			log.Printf("Failed to create due for member %d: %v", member.ID, err)
			failed++
			continue
		}

		log.Printf("Issued due %d: member=%d amount=%d period=%d/%d",
			due.ID, due.MemberID, due.Amount, *month, *year)
		issued++

		if notifier != nil {
			payload := map[string]string{
				"month":  strconv.Itoa(*month),
				"year":   strconv.Itoa(*year),
				"amount": strconv.FormatInt(due.Amount, 10),
			}
			if err := notifier.Notify(ctx, due.MemberID, notify.KindDueIssued, payload); err != nil {
				log.Printf("Failed to notify member %d: %v", due.MemberID, err)
			}
		}
	}

	log.Printf("Dues batch finished: issued=%d skipped=%d failed=%d", issued, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
