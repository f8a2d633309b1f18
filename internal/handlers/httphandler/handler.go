package httphandler

import (
	"WooWithERPNext/internal/sync"
	"WooWithERPNext/internal/version"
	"WooWithERPNext/pkg/logging"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handler wires the run-trigger surface. Both the manual endpoints here and
// the scheduled loop call the identical sync service.
type Handler struct {
	svc *sync.Service
}

func NewHandler(svc *sync.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Router() *httprouter.Router {
	router := httprouter.New()
	router.GET("/", h.HandlerRoot)
	router.POST("/api/sync/orders", h.HandlerSyncOrders)
	router.GET("/api/sync/status", h.HandlerSyncStatus)
	router.POST("/api/sync/invoice/:invoice", h.HandlerSyncInvoice)
	router.GET("/api/sync/invoice/:invoice/status", h.HandlerInvoiceSyncStatus)
	return router
}

type response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, resp *response) {
	logger := logging.GetLogger()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Errorf("failed to send response, error: %v", err)
	}
}

func (h *Handler) HandlerRoot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := logging.GetLogger()
	v := version.GetVersion()
	_, err := fmt.Fprintf(w, "WooWithERPNext version %s", v.String())
	if err != nil {
		logger.Errorf("failed to send response, error: %v", err)
	}
}

// HandlerSyncOrders is the operator-facing "run now" trigger.
func (h *Handler) HandlerSyncOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := logging.GetLogger()
	logger.Info("Start HandlerSyncOrders")
	defer logger.Info("End HandlerSyncOrders")

	report, err := h.svc.SyncOrders()
	if err != nil {
		writeJSON(w, http.StatusBadGateway, &response{Status: "Failed", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, &response{
		Status:  "success",
		Message: "Orders synced from WooCommerce. Check the logs for details.",
		Data:    report,
	})
}

func (h *Handler) HandlerSyncStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	logger := logging.GetLogger()
	logger.Info("Start HandlerSyncStatus")
	defer logger.Info("End HandlerSyncStatus")

	syncStatus, err := h.svc.GetSyncStatus()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, &response{Status: "Failed", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, &response{Status: "success", Data: syncStatus})
}

func (h *Handler) HandlerSyncInvoice(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	logger := logging.GetLogger()
	logger.Info("Start HandlerSyncInvoice")
	defer logger.Info("End HandlerSyncInvoice")

	invoiceName := params.ByName("invoice")
	wooOrderID, err := h.svc.SyncInvoiceToWoo(invoiceName)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, &response{Status: "Failed", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, &response{
		Status:  "success",
		Message: fmt.Sprintf("Invoice %s synced to WooCommerce order %s", invoiceName, wooOrderID),
	})
}

func (h *Handler) HandlerInvoiceSyncStatus(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	logger := logging.GetLogger()
	logger.Info("Start HandlerInvoiceSyncStatus")
	defer logger.Info("End HandlerInvoiceSyncStatus")

	invoiceName := params.ByName("invoice")
	invoiceStatus, err := h.svc.GetInvoiceSyncStatus(invoiceName)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, &response{Status: "Failed", Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, &response{Status: "success", Data: invoiceStatus})
}
