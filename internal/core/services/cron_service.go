package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
)

// Alert titles
const (
	AlertLowStock = "Low stock"
	AlertExpiring = "Expiring soon"
)

// CronConfig holds the job schedules
type CronConfig struct {
	RefreshSpec string
	AlertSpec   string
	ExpiryDays  int
}

// SessionCleaner purges sessions that can no longer be used
type SessionCleaner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// CronService runs the periodic store refresh and stock alert jobs
type CronService struct {
	cron          *cron.Cron
	cfg           CronConfig
	sessions      *SessionManager
	initializer   *StoreInitializer
	inventory     *stores.InventoryStore
	notifications *stores.NotificationStore
	settings      *stores.SettingsStore
	now           func() time.Time
}

// NewCronService registers the jobs. An empty spec disables that job.
func NewCronService(
	cfg CronConfig,
	sessions *SessionManager,
	initializer *StoreInitializer,
	inventory *stores.InventoryStore,
	notifications *stores.NotificationStore,
	settings *stores.SettingsStore,
) (*CronService, error) {
	if cfg.ExpiryDays <= 0 {
		cfg.ExpiryDays = 30
	}
	s := &CronService{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		cfg:           cfg,
		sessions:      sessions,
		initializer:   initializer,
		inventory:     inventory,
		notifications: notifications,
		settings:      settings,
		now:           time.Now,
	}

	if cfg.RefreshSpec != "" {
		if _, err := s.cron.AddFunc(cfg.RefreshSpec, s.RefreshStores); err != nil {
			return nil, fmt.Errorf("schedule refresh %q: %w", cfg.RefreshSpec, err)
		}
	}
	if cfg.AlertSpec != "" {
		if _, err := s.cron.AddFunc(cfg.AlertSpec, func() { s.CheckStockAlerts() }); err != nil {
			return nil, fmt.Errorf("schedule alerts %q: %w", cfg.AlertSpec, err)
		}
	}
	return s, nil
}

// ScheduleSessionCleanup registers the expired session purge
func (s *CronService) ScheduleSessionCleanup(spec string, cleaner SessionCleaner) error {
	if spec == "" {
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() { s.CleanupSessions(cleaner) })
	if err != nil {
		return fmt.Errorf("schedule session cleanup %q: %w", spec, err)
	}
	return nil
}

// Start starts the scheduler in its own goroutine
func (s *CronService) Start() {
	s.cron.Start()
	log.Printf("🚀 CronService started (refresh=%q alerts=%q)", s.cfg.RefreshSpec, s.cfg.AlertSpec)
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// RefreshStores reloads every store while someone is signed in
func (s *CronService) RefreshStores() {
	if !s.sessions.IsAuthenticated() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	s.initializer.Refresh(ctx)
}

// CleanupSessions deletes expired and revoked sessions
func (s *CronService) CleanupSessions(cleaner SessionCleaner) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := cleaner.DeleteExpired(ctx)
	if err != nil {
		log.Printf("❌ Session cleanup failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("✅ Removed %d expired session(s)", n)
	}
}

// CheckStockAlerts adds a notification for every low-stock item and every
// item expiring within the configured window, skipping alerts that are
// already waiting unread. It returns the number of notifications added.
func (s *CronService) CheckStockAlerts() int {
	toggles := s.settings.Get().Notifications
	added := 0

	if toggles.LowStock {
		for _, item := range s.inventory.LowStock() {
			msg := fmt.Sprintf("%s has %d left (reorder level %d)", item.Name, item.Stock, item.ReorderLevel)
			priority := stores.PriorityMedium
			if item.Stock == 0 {
				priority = stores.PriorityHigh
			}
			if s.alert(AlertLowStock, msg, priority) {
				added++
			}
		}
	}

	if toggles.Expiry {
		for _, item := range s.inventory.ExpiringWithin(s.cfg.ExpiryDays, s.now()) {
			msg := fmt.Sprintf("%s expires in %d day(s) on %s", item.Name, item.DaysRemaining, item.ExpiryDate)
			priority := stores.PriorityMedium
			if item.DaysRemaining <= 7 {
				priority = stores.PriorityHigh
			}
			if s.alert(AlertExpiring, msg, priority) {
				added++
			}
		}
	}

	if added > 0 {
		log.Printf("⚠️ %d stock alert(s) raised", added)
	}
	return added
}

func (s *CronService) alert(title, msg, priority string) bool {
	if s.notifications.HasUnread(title, msg) {
		return false
	}
	s.notifications.Add(domain.Notification{
		Type:     stores.NotificationWarning,
		Title:    title,
		Message:  msg,
		Priority: priority,
	})
	return true
}
