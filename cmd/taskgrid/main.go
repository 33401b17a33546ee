package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskgrid/internal/clock"
	"taskgrid/internal/config"
	"taskgrid/internal/repository"
	"taskgrid/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zone, err := clock.In(cfg.Timezone)
	if err != nil {
		log.Fatalf("clock: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	statsSvc := service.NewStatsService(summaryRepo, zone)
	sweeperSvc := service.NewSweeperService(taskRepo, zone)

	scheduler := service.NewMaintenanceScheduler(zone.Location())
	if _, err := scheduler.ScheduleDaily(cfg.SweepTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		runMaintenance(jobCtx, userRepo, sweeperSvc, statsSvc)
	}); err != nil {
		log.Fatalf("schedule maintenance: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("taskgrid maintenance daemon started (sweep daily at %s %s).", cfg.SweepTime, cfg.Timezone)
	<-ctx.Done()
	log.Println("Shutdown complete.")
}

// runMaintenance sweeps expired work and refreshes the summary for every
// user. A failure for one user is logged and does not stop the pass.
func runMaintenance(ctx context.Context, users *repository.UserRepository, sweeper *service.SweeperService, stats *service.StatsService) {
	all, err := users.ListAll(ctx)
	if err != nil {
		log.Printf("maintenance: list users: %v", err)
		return
	}
	for _, user := range all {
		res, err := sweeper.Sweep(ctx, user.ID)
		if err != nil {
			log.Printf("maintenance: sweep user %d: %v", user.ID, err)
			continue
		}
		if res.SubTasks > 0 || res.MasterTasks > 0 {
			log.Printf("maintenance: user %d swept %d subtasks, %d masters", user.ID, res.SubTasks, res.MasterTasks)
		}
		if _, err := stats.Refresh(ctx, user.ID); err != nil {
			log.Printf("maintenance: refresh summary user %d: %v", user.ID, err)
		}
	}
}
