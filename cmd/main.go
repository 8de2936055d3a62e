package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ray-remotestate/resto-pos/config"
	"github.com/ray-remotestate/resto-pos/database"
	"github.com/ray-remotestate/resto-pos/database/dbhelper"
	"github.com/ray-remotestate/resto-pos/handlers"
	"github.com/ray-remotestate/resto-pos/server"
	"github.com/sirupsen/logrus"
)

const shutdownTimeOut = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Panicf("failed to load config, error: %v", err)
	}

	db, err := database.ConnectAndMigrate(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPassword, database.SSLMode(cfg.DBSSLMode))
	if err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	svr := server.SetupRoutes(
		&handlers.MenuHandler{Catalog: &dbhelper.MenuStore{DB: db}},
		&handlers.TransactionHandler{Orders: &dbhelper.OrderStore{DB: db}},
		&handlers.ReportHandler{Reports: &dbhelper.ReportStore{DB: db}},
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := svr.Run(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Panic("failed to run server")
		}
	}()
	logrus.Printf("server listening on :%s", cfg.ServerPort)

	<-done

	logrus.Info("shutting down...")
	if err := svr.Shutdown(shutdownTimeOut); err != nil {
		logrus.WithError(err).Error("failed to shutdown server gracefully")
	}
	if err := database.ShutdownDatabase(db); err != nil {
		logrus.WithError(err).Error("failed to close database connection!")
	}

	logrus.Info("system is shut ..zzz")
}
