package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/teerhub/teer-core/internal/api"
	"github.com/teerhub/teer-core/internal/betslip"
	"github.com/teerhub/teer-core/internal/catalog"
	"github.com/teerhub/teer-core/internal/shared/cache"
	"github.com/teerhub/teer-core/internal/shared/config"
	"github.com/teerhub/teer-core/internal/shared/kafka"
	"github.com/teerhub/teer-core/internal/shared/logger"
	"github.com/teerhub/teer-core/internal/wallet"
	"github.com/teerhub/teer-core/pkg/contracts/events"
)

// teer-agent is a terminal consumer of the client library: it refreshes the
// wallet, lists the open houses and prints the current payout exposure rules.
// With TEER_WATCH=1 it then follows the wallet-transaction topic and refreshes
// the cache on every event.
func main() {
	cfg := config.Load()

	log, err := logger.New("teer-agent", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	token := os.Getenv("TEER_TOKEN")
	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, func() string { return token })
	sync := wallet.NewSynchronizer(client, cfg.WalletDebounce, log)

	// Snapshot cache is best effort: without redis the catalog hits the API
	rdb, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		rdb = nil
	}
	houses := catalog.New(client, rdb, cfg.CatalogTTL, log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sync.FetchWalletInfo(ctx); err != nil {
		log.Fatal("wallet refresh", zap.String("detail", api.Detail(err, "failed to fetch wallet info")))
	}
	st := sync.Snapshot()
	log.Info("wallet", zap.Float64("balance", st.Balance), zap.Int("transactions", len(st.Transactions)))

	list, err := houses.HousesWithRounds(ctx)
	if err != nil {
		log.Fatal("catalog fetch", zap.Error(err))
	}
	now := time.Now()
	for _, h := range list {
		v := catalog.NewHouseView(h)
		closesIn, open := v.TimeUntilClose(betslip.Direct, betslip.RoundFR, now)
		log.Info("house",
			zap.Int("id", v.HouseID()),
			zap.String("name", v.Name()),
			zap.Float64("fr_direct_rate", v.PayoutRate(betslip.Direct, betslip.RoundFR)),
			zap.Bool("fr_open", open && closesIn > 0),
			zap.Duration("fr_closes_in", closesIn))
	}

	if os.Getenv("TEER_WATCH") == "1" {
		watchWalletEvents(context.Background(), log, cfg, sync)
	}
}

// watchWalletEvents follows the wallet-transaction topic and refreshes the
// cache on every event. The synchronizer's debounce coalesces bursts into a
// single refresh.
func watchWalletEvents(ctx context.Context, log *zap.Logger, cfg config.Config, sync *wallet.Synchronizer) {
	r := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicWalletTx, "teer-agent")
	defer r.Close()
	log.Info("watching wallet events", zap.String("topic", cfg.TopicWalletTx))

	for {
		_, value, err := kafka.ReadNext(ctx, r)
		if err != nil {
			log.Error("wallet event read", zap.Error(err))
			return
		}
		var e events.WalletTransaction
		if err := json.Unmarshal(value, &e); err != nil {
			log.Warn("malformed wallet event", zap.Error(err))
			continue
		}
		log.Info("wallet event",
			zap.String("type", e.Type),
			zap.String("status", e.Status),
			zap.Float64("amount", e.Amount))
		if err := sync.FetchWalletInfo(ctx); err != nil {
			log.Warn("refresh after event failed", zap.Error(err))
		}
	}
}
