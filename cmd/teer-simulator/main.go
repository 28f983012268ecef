package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/teerhub/teer-core/internal/shared/config"
	"github.com/teerhub/teer-core/internal/shared/db"
	"github.com/teerhub/teer-core/internal/shared/kafka"
	"github.com/teerhub/teer-core/internal/shared/logger"
	"github.com/teerhub/teer-core/internal/shared/metrics"
	"github.com/teerhub/teer-core/internal/simulator"
	simrepo "github.com/teerhub/teer-core/internal/simulator/repo"
)

func main() {
	cfg := config.Load()

	log, err := logger.New("teer-simulator", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("starting service", zap.String("service", "teer-simulator"), zap.String("env", cfg.Env))

	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	ledger := simrepo.NewPostgres(pg)
	if err := ledger.EnsureSchema(context.Background()); err != nil {
		log.Fatal("schema init", zap.Error(err))
	}

	publ := simulator.NewPublisher(
		kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicTicketPlaced),
		kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicWalletTx),
	)

	hub := simulator.NewHub(log)
	srv := simulator.NewServer(log, ledger, publ, hub)

	// Countdown ticks for connected round-update clients
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			srv.BroadcastRoundUpdates()
		}
	}()

	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))

	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: srv.Router(),
	}
	log.Info("api listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api srv", zap.Error(err))
	}
}
