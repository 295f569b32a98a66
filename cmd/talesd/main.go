package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitcoin-tales/talesd/internal/config"
	"github.com/bitcoin-tales/talesd/internal/core/application"
	"github.com/bitcoin-tales/talesd/internal/core/ports"
	dbbadger "github.com/bitcoin-tales/talesd/internal/infrastructure/storage/db/badger"
	"github.com/bitcoin-tales/talesd/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/bitcoin-tales/talesd/internal/interfaces/http"
	"github.com/bitcoin-tales/talesd/pkg/stats"
	"github.com/bitcoin-tales/talesd/pkg/walletservice"
	"github.com/bitcoin-tales/talesd/pkg/watcher"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := createRepoManager()
	if err != nil {
		log.WithError(err).Fatal("error while opening ledger store")
	}
	defer repoManager.Close()

	walletSvc := walletservice.NewService(
		config.GetString(config.WalletAddrKey),
	)

	watcherSvc := watcher.NewService(watcher.Opts{
		WalletSvc:              walletSvc,
		IntervalInMilliseconds: config.GetInt(config.PollIntervalKey),
		RequestsPerSecond:      config.GetFloat(config.PollRequestsPerSecondKey),
		ErrorHandler: func(err error) {
			stats.PollsTotal.WithLabelValues("transient_error").Inc()
			log.WithError(err).Debug("transient poll error")
		},
	})

	menuSvc := application.NewMenuService(repoManager)
	reconciler := application.NewBalanceReconciler(repoManager, walletSvc)
	trackerSvc := application.NewTrackerService(
		repoManager, walletSvc, watcherSvc, reconciler, menuSvc,
		config.GetInt(config.PollMaxAttemptsKey),
	)
	operatorSvc := application.NewOperatorService(repoManager, walletSvc)

	go trackerSvc.Start()
	defer trackerSvc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) *
			time.Second
		stats.EnableMemoryStatistics(ctx, interval, config.GetDatadir())
	}

	addr := fmt.Sprintf(":%d", config.GetInt(config.ListeningPortKey))
	server := &http.Server{
		Addr:    addr,
		Handler: httpinterface.NewRouter(operatorSvc, trackerSvc, menuSvc),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.WithError(err).Fatal("error listening on http interface")
		}
	}()
	log.Infof("http interface is listening on %s", addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), 5*time.Second,
	)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("error while shutting down http interface")
	}

	log.Debug("exiting")
}

func createRepoManager() (ports.RepoManager, error) {
	if config.GetBool(config.NoPersistenceKey) {
		log.Warn("persistence disabled, the ledger lives in memory only")
		return inmemory.NewRepoManager(), nil
	}

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	return dbbadger.NewRepoManager(dbDir, nil)
}
