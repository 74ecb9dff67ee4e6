package main

import (
	"fmt"
	"os"
	"time"

	"laptop-etl/config"
	"laptop-etl/scraper/viraindo"
	"laptop-etl/services"
	"laptop-etl/storage"
	"laptop-etl/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Laptop ETL starting ===")
	logger.Info("Config — mode: %s | source: %s | retries: %d | timeout: %ds",
		cfg.RunMode, cfg.SourceURL, cfg.MaxRetries, cfg.FetchTimeoutSec)

	rawStore, err := storage.OpenRawStore(cfg.RawDBPath)
	if err != nil {
		logger.Error("Failed to open raw store: %v", err)
		os.Exit(1)
	}
	defer rawStore.Close()

	currentStore, err := storage.OpenCurrentStore(cfg.CurrentDBPath)
	if err != nil {
		logger.Error("Failed to open current store: %v", err)
		os.Exit(1)
	}
	defer currentStore.Close()

	historyStore, err := storage.OpenHistoryStore(cfg.HistoryDBPath)
	if err != nil {
		logger.Error("Failed to open history store: %v", err)
		os.Exit(1)
	}
	defer historyStore.Close()

	metaStore, err := storage.OpenMetaStore(cfg.MetaDBPath)
	if err != nil {
		logger.Error("Failed to open meta store: %v", err)
		os.Exit(1)
	}
	defer metaStore.Close()

	runAt := time.Now().UTC()
	inputSource := cfg.RunMode

	switch cfg.RunMode {
	case config.ModeScrape:
		products, err := viraindo.New(cfg, logger).Scrape()
		if err != nil {
			logger.Error("Scrape failed: %v", err)
			os.Exit(1)
		}
		if len(products) == 0 {
			logger.Error("Scrape returned no products. Exiting.")
			os.Exit(1)
		}
		if err := rawStore.InsertRaw(products); err != nil {
			logger.Error("Failed to buffer scraped products: %v", err)
			os.Exit(1)
		}
		logger.Info("Buffered %d scraped products", len(products))
		inputSource = cfg.SourceURL

	case config.ModeSeed:
		n, err := storage.SeedRaw(rawStore, runAt)
		if err != nil {
			logger.Error("Seeding failed: %v", err)
			os.Exit(1)
		}
		logger.Info("Seeded %d sample products", n)

	case config.ModeETL:
		// Run against whatever the raw store already holds.

	default:
		logger.Error("Unknown RUN_MODE %q (want scrape, seed or etl)", cfg.RunMode)
		os.Exit(1)
	}

	raw, err := rawStore.LoadRaw()
	if err != nil {
		logger.Error("Failed to load raw products: %v", err)
		os.Exit(1)
	}
	if len(raw) == 0 {
		logger.Error("Raw store is empty. Nothing to process.")
		os.Exit(1)
	}
	logger.Info("Loaded %d raw rows", len(raw))

	snapshot := services.NewSnapshotBuilder(logger).Build(raw, runAt)
	if len(snapshot.Products) == 0 {
		logger.Error("Snapshot is empty after cleaning. Exiting.")
		os.Exit(1)
	}

	reconciler := services.NewReconciler(currentStore, historyStore, metaStore, logger)
	stats, err := reconciler.Reconcile(snapshot, runAt)
	if err != nil {
		logger.Error("Reconciliation failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Reconciled — new: %d | price: %d | attr: %d | discontinued: %d | unchanged: %d",
		stats.NewProducts, stats.PriceUpdates, stats.AttributeUpdates,
		stats.Discontinued, stats.Unchanged)

	guard := services.NewGuard(currentStore, logger)
	if closed, err := guard.Repair(runAt); err != nil {
		logger.Error("Invariant repair failed: %v", err)
	} else if closed > 0 {
		logger.Warn("Repaired %d duplicate active rows", closed)
	}

	ledger := services.NewLedger(metaStore, logger)
	if _, err := ledger.Record(inputSource, len(raw), stats, runAt); err != nil {
		logger.Error("Failed to record run: %v", err)
		os.Exit(1)
	}

	active, err := currentStore.ActiveVersions()
	if err != nil {
		logger.Error("Failed to load active versions: %v", err)
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	if err := csvWriter.WriteProducts(active); err != nil {
		logger.Error("CSV export failed: %v", err)
	} else {
		logger.Info("Exported %d active products to %s", len(active), cfg.CSVOutputPath)
	}
	csvWriter.Close()

	if cfg.PublishToPostgres {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			logger.Error("Make sure Docker is running: docker compose up -d")
			os.Exit(1)
		}
		if err := pgWriter.Publish(active); err != nil {
			logger.Error("PostgreSQL publish failed: %v", err)
		} else {
			logger.Info("Published %d active products to PostgreSQL (table: laptops_current)", len(active))
		}
		pgWriter.Close()
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(active))

	fmt.Printf("  Done. Active slice → %s | state → SQLite (%s)\n\n",
		cfg.CSVOutputPath, cfg.CurrentDBPath)
}
