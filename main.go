package main

import (
	"WooWithERPNext/internal/config"
	"WooWithERPNext/internal/erpstore"
	"WooWithERPNext/internal/handlers/httphandler"
	"WooWithERPNext/internal/sync"
	"WooWithERPNext/internal/version"
	"WooWithERPNext/internal/wooapi"
	"WooWithERPNext/pkg/logging"
	"fmt"
	"log"
	"net/http"
)

func main() {
	logger := logging.GetLogger()
	logger.Info("Start Main")
	v := version.GetVersion()
	logger.Infof("Version %s", v.String())
	defer logger.Info("End Main")

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		logger.Fatalf("failed config.Load; %v", err)
	}
	logging.SetDebug(cfg.LOG.Debug)

	if err := cfg.Validate(); err != nil {
		logger.Fatalf("failed config.Validate; %v", err)
	}

	if !erpstore.Exists(cfg.DBSQLITE.DB) {
		logger.Info(cfg.DBSQLITE.DB, " not exist")
		if err := erpstore.CreateDB(cfg.DBSQLITE.DB); err != nil {
			logger.Fatalf("%s, %v", cfg.DBSQLITE.DB, err)
		}
	} else {
		logger.Info(cfg.DBSQLITE.DB, " exist")
	}

	store, err := erpstore.NewStore(cfg.DBSQLITE.DB)
	if err != nil {
		logger.Fatalf("failed erpstore.NewStore; %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Errorf("failed store.Close, error: %v", err)
		}
	}()

	WOOAPI := wooapi.NewAPI(
		cfg.WOOCOMMERCE.URL,
		cfg.WOOCOMMERCE.Key,
		cfg.WOOCOMMERCE.Secret,
		cfg.WOOCOMMERCE.Timeout,
		cfg.WOOCOMMERCE.RPS)

	service := sync.NewService(cfg, WOOAPI, store)

	go service.SyncOrderServiceWithRecovered()

	router := httphandler.NewHandler(service).Router()

	logger.Infof("Listening on :%d", cfg.SERVICE.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.SERVICE.Port), router))
}
