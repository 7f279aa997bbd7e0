package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/internal/receipt"
	"Storefront/internal/web"
	"Storefront/pkg/config"
	"Storefront/pkg/db"
	"Storefront/pkg/kit"
)

func main() {
	service := "storefront"

	log, _ := kit.NewLogger(service, "info")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config failed", zap.Error(err))
	}

	if lvl := cfg.App.LogLevel; lvl != "info" {
		l, err := kit.NewLogger(service, lvl)
		if err != nil {
			log.Fatal("init logger failed", zap.Error(err))
		}
		log = l
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, receipts, conn := openStores(ctx, cfg, log)
	if conn != nil {
		defer conn.Close()
	}
	if cfg.Redis.URL != "" {
		rdb, err := receipt.DialRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal("connect redis failed", zap.Error(err))
		}
		defer rdb.Close()
		receipts = receipt.NewRedisStore(rdb)
		log.Info("receipts archived in redis")
	}

	cat, err := catalog.LoadFrom(ctx, src)
	if err != nil {
		log.Fatal("load catalog failed", zap.Error(err))
	}
	log.Info("catalog loaded",
		zap.String("driver", cfg.DB.Driver),
		zap.Int("products", cat.Len()),
		zap.Strings("categories", cat.Categories()),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h, err := web.NewHandler(web.Deps{
		Catalog:            cat,
		Source:             src,
		Receipts:           receipts,
		TaxRate:            cfg.Shop.TaxRate,
		SessionLimitPerMin: cfg.Shop.SessionLimitPerMin,
		SessionTTL:         cfg.Shop.SessionTTL,
	}, web.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
	})
	if err != nil {
		log.Fatal("init handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(ctx, ":"+cfg.App.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// openStores picks the catalog source and receipt archive for the configured
// driver. conn is nil for the in-memory backend.
func openStores(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalog.Source, receipt.Store, *sql.DB) {
	if !cfg.DB.UsesSQL() {
		return catalog.NewSeedSource(), receipt.NewMemStore(), nil
	}

	conn, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatal("open database failed", zap.Error(err))
	}

	if cfg.DB.AutoMigrate {
		if err := db.Migrate(ctx, conn, cfg.DB.Driver, log); err != nil {
			log.Fatal("migrate failed", zap.Error(err))
		}
	}

	products := catalog.NewSQLStore(conn, cfg.DB.Driver)
	if cfg.DB.Seed {
		n, err := products.SeedIfEmpty(ctx, catalog.SeedProducts())
		if err != nil {
			log.Fatal("seed failed", zap.Error(err))
		}
		log.Info("seed checked", zap.Int("inserted", n))
	}

	return products, receipt.NewSQLStore(conn), conn
}
