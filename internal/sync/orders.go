package sync

import (
	"WooWithERPNext/internal/status"
	"WooWithERPNext/internal/telegram"
	"WooWithERPNext/internal/wooapi/options"
	"WooWithERPNext/pkg/logging"
	"fmt"
	"strings"
	"time"
)

const (
	RunStatusSuccess        = "Success"
	RunStatusPartialSuccess = "Partial Success"
	RunStatusDisabled       = "Disabled"
)

type OrderFailure struct {
	OrderID int    `json:"order_id"`
	Error   string `json:"error"`
}

// RunReport is the operator-visible outcome of one sync run: counts plus the
// per-order failure reasons, never a raw stack trace.
type RunReport struct {
	Status     string         `json:"status"`
	Successful int            `json:"successful_syncs"`
	Failed     int            `json:"failed_syncs"`
	Skipped    []OrderFailure `json:"skipped_orders,omitempty"`
}

func (r *RunReport) Summary() string {
	return fmt.Sprintf("successful: %d, failed: %d, status: %s", r.Successful, r.Failed, r.Status)
}

// SyncOrders is the run controller: one fetch, then every order validated
// and upserted independently, so one bad order never blocks the rest. Only a
// failed fetch aborts the run; its reason lands in the persisted run status.
func (s *Service) SyncOrders() (*RunReport, error) {
	logger := logging.GetLogger()
	logger.Println("SyncOrders:>Start")
	defer logger.Println("SyncOrders:>End")

	if !s.cfg.SYNC.EnableSync {
		logger.Info("WooCommerce sync is disabled")
		return &RunReport{Status: RunStatusDisabled}, nil
	}

	orderList, err := s.woo.OrderList(
		options.Status(strings.Join(status.RecognizedWooStatuses(), ",")))
	if err != nil {
		runStatus := fmt.Sprintf("Failed: %v", err)
		if saveErr := s.store.SaveSyncStatus(runStatus); saveErr != nil {
			logger.Errorf("failed to save sync status, error: %v", saveErr)
		}
		return nil, err
	}
	logger.Infof("Found %d orders to sync", len(orderList))

	report := &RunReport{}
	for _, wcOrder := range orderList {
		err := ValidateOrder(wcOrder)
		if err == nil {
			err = s.UpsertOrder(wcOrder)
		}
		if err != nil {
			report.Failed++
			report.Skipped = append(report.Skipped, OrderFailure{OrderID: wcOrder.ID, Error: err.Error()})
			logger.Infof("Failed to sync order %d: %v", wcOrder.ID, err)
			continue
		}
		report.Successful++
	}

	report.Status = RunStatusSuccess
	if report.Failed > 0 {
		report.Status = RunStatusPartialSuccess
	}

	lastSync := time.Now().Format("2006-01-02 15:04:05")
	if err := s.store.SaveSyncState(lastSync, report.Status); err != nil {
		logger.Errorf("failed to save sync status, error: %v", err)
	}

	logger.Infof("Sync completed. Successful: %d, Failed: %d", report.Successful, report.Failed)
	telegram.SendMessageToTelegramWithLogError(s.cfg,
		fmt.Sprintf("WooCommerce sync completed. %s", report.Summary()))

	return report, nil
}

// SyncStatus is what the status endpoint returns.
type SyncStatus struct {
	LastSync   string `json:"last_sync"`
	SyncStatus string `json:"sync_status"`
	EnableSync bool   `json:"enable_sync"`
	Interval   string `json:"sync_interval"`
}

func (s *Service) GetSyncStatus() (*SyncStatus, error) {
	state, err := s.store.GetSyncState()
	if err != nil {
		return nil, err
	}
	return &SyncStatus{
		LastSync:   state.LastSync,
		SyncStatus: state.LastStatus,
		EnableSync: s.cfg.SYNC.EnableSync,
		Interval:   s.cfg.SYNC.Interval,
	}, nil
}
