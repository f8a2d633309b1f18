package sync

import (
	"WooWithERPNext/internal/config"
	"WooWithERPNext/internal/erpstore"
	"WooWithERPNext/internal/telegram"
	"WooWithERPNext/internal/wooapi"
	"WooWithERPNext/pkg/logging"
	"fmt"
	"time"
)

// Service runs the fetch → validate → upsert pipeline against the record
// store. All collaborators are injected; the service holds no global state.
type Service struct {
	cfg   *config.Config
	woo   wooapi.WOOAPI
	store *erpstore.Store
}

func NewService(cfg *config.Config, woo wooapi.WOOAPI, store *erpstore.Store) *Service {
	return &Service{
		cfg:   cfg,
		woo:   woo,
		store: store,
	}
}

// SyncOrderServiceWithRecovered is the scheduled entry point. It runs the
// same SyncOrders the manual trigger calls, forever, one run per configured
// interval, surviving panics inside a run.
func (s *Service) SyncOrderServiceWithRecovered() {
	logger := logging.GetLogger()
	logger.Println("Start Service SyncOrderServiceWithRecovered")
	defer logger.Println("End Service SyncOrderServiceWithRecovered")

	for {
		s.syncOrdersRecovered()

		sleep := IntervalDuration(s.cfg.SYNC.Interval)
		logger.Infof("time sleep until next sync: %s", sleep)
		time.Sleep(sleep)
	}
}

func (s *Service) syncOrdersRecovered() {
	logger := logging.GetLogger()

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("order sync crashed, will be restarted on next interval, error: %v", r)
			logger.Error(msg)
			telegram.SendMessageToTelegramWithLogError(s.cfg, msg)
		}
	}()

	timeStart := time.Now()
	report, err := s.SyncOrders()
	if err != nil {
		msg := fmt.Sprintf("order sync failed: %v", err)
		logger.Error(msg)
		telegram.SendMessageToTelegramWithLogError(s.cfg, msg)
		return
	}
	logger.Infof("order sync finished in %s: %s", time.Since(timeStart), report.Summary())
}

// IntervalDuration maps the configured sync interval onto a sleep duration.
func IntervalDuration(interval string) time.Duration {
	switch interval {
	case config.IntervalWeekly:
		return 7 * 24 * time.Hour
	case config.IntervalMonthly:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}
