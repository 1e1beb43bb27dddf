package services

import (
	"context"
	"log"
	"time"

	"eksporyuk-api/internal/config"

	"github.com/robfig/cron/v3"
)

// AccessLocker is the slice of the access lock service the scheduler needs
type AccessLocker interface {
	LockExpired(ctx context.Context) (*LockResult, error)
}

// CronService runs the scheduled access lock sweep. The same sweep is
// also exposed over HTTP for external schedulers; both paths share the
// AccessLocker so behavior is identical.
type CronService struct {
	cron   *cron.Cron
	locker AccessLocker
	cfg    *config.Config
}

// NewCronService creates a new cron service
func NewCronService(locker AccessLocker, cfg *config.Config) *CronService {
	return &CronService{
		cron:   cron.New(),
		locker: locker,
		cfg:    cfg,
	}
}

// Start registers the lock-expired sweep and launches the scheduler
func (s *CronService) Start() error {
	if !s.cfg.Cron.Enabled {
		log.Println("⏸️ CronService disabled by config")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Cron.LockSpec, s.runLockExpired); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("🚀 CronService started (lock sweep: %s)", s.cfg.Cron.LockSpec)
	return nil
}

// Stop gracefully stops the scheduler, waiting for a running sweep
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runLockExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.locker.LockExpired(ctx)
	if err != nil {
		log.Printf("❌ Scheduled lock sweep error: %v", err)
		return
	}

	log.Printf("⏰ Scheduled lock sweep done: %d grants, %d enrollments locked, %d failed",
		result.LockedMembershipCount, result.LockedCourseCount, result.FailedCount)
}
