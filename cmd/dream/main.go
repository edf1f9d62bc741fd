package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"ai-companion-be/internal/bootstrap"
	"ai-companion-be/internal/config"
	"ai-companion-be/internal/repository/unitofwork"
	"ai-companion-be/pkg/database"
)

// Nightly scheduler entry point. Intended to be invoked once per cycle
// (cron or a supervisor loop); the staleness check makes repeat
// invocations cheap.
func main() {
	userFlag := flag.String("user", "", "run for a single user id")
	force := flag.Bool("force", false, "run even inside the staleness window")
	tail := flag.Int("tail", 0, "print the last N log entries after the run")
	flag.Parse()

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	ctx := context.Background()

	// 4. Start Background Services
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 5. Resolve target users
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	userIds, err := resolveUsers(ctx, uowFactory, *userFlag)
	if err != nil {
		log.Fatalf("Error: failed to resolve users: %v", err)
	}

	// 6. Run
	for _, userId := range userIds {
		runOne(ctx, container, userId, *force)
	}

	if *tail > 0 {
		entries, err := container.Logger.GetLogs("", *tail)
		if err != nil {
			log.Printf("Warn: failed to read logs: %v", err)
		}
		for _, e := range entries {
			fmt.Printf("%s %-5s [%s] %s\n", e.Timestamp, e.Level, e.Module, e.Message)
		}
	}

	if err := container.Logger.Sync(); err != nil {
		log.Printf("Warn: logger sync: %v", err)
	}
}

func resolveUsers(ctx context.Context, uowFactory unitofwork.RepositoryFactory, userFlag string) ([]uuid.UUID, error) {
	if userFlag != "" {
		id, err := uuid.Parse(userFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", userFlag, err)
		}
		return []uuid.UUID{id}, nil
	}

	// Soft-deleted users are excluded by the model's DeletedAt index.
	uow := uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.Id)
	}
	return ids, nil
}

func runOne(ctx context.Context, container *bootstrap.Container, userId uuid.UUID, force bool) {
	if force {
		result := container.DreamService.Run(ctx, userId, nil)
		log.Printf("[INFO] run %s completed for %s (%d errors)", result.RunId, userId, len(result.Errors))
		return
	}

	result, err := container.DreamService.RunIfNeeded(ctx, userId)
	if err != nil {
		log.Printf("[ERROR] run failed for %s: %v", userId, err)
		return
	}
	if result == nil {
		log.Printf("[INFO] skipping %s, recent run exists", userId)
		return
	}
	log.Printf("[INFO] run %s completed for %s (%d errors)", result.RunId, userId, len(result.Errors))
}
