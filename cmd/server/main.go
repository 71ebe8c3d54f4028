package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/api-sage/aoa-funds-processor/internal/adapter/external"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/controller"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/middleware"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/http/router"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/graph"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/memory"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/postgres"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/rediscache"
	"github.com/api-sage/aoa-funds-processor/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/aoa-funds-processor/internal/config"
	"github.com/api-sage/aoa-funds-processor/internal/domain"
	"github.com/api-sage/aoa-funds-processor/internal/usecase/services"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on system env vars")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var fundsRepo repo_interfaces.FundsRepository
	var referralRepo repo_interfaces.ReferralRepository

	if cfg.DatabaseDSN != "" {
		if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
			log.Fatalf("run migrations: %v", err)
		}

		db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer db.Close()

		fundsRepo = postgres.NewFundsRepository(db)
		referralRepo = postgres.NewReferralRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory stores")
		fundsRepo = memory.NewFundsRepository()
		referralRepo = memory.NewReferralRepository()
	}

	if cfg.GraphURI != "" {
		client, err := graph.NewNeo4jClient(ctx, graph.Options{
			URI:      cfg.GraphURI,
			Database: cfg.GraphDatabase,
			Username: cfg.GraphUsername,
			Password: cfg.GraphPassword,
		})
		if err != nil {
			log.Fatalf("connect graph store: %v", err)
		}
		defer client.Close(context.Background())

		referralRepo = graph.NewReferralRepository(client)
	}

	var draftCache repo_interfaces.DraftCache
	if cfg.RedisAddr != "" {
		cache := rediscache.NewDraftCache(cfg.RedisAddr, cfg.RedisPassword, cfg.DraftTTL)
		defer cache.Close()
		draftCache = cache
	} else {
		log.Println("REDIS_ADDR not set, using in-memory draft cache")
		draftCache = memory.NewDraftCache()
	}

	bankRepo := memory.NewBankRepository()
	accountService := external.NewAccountClient(cfg.AccountServiceURL)
	notifier := external.NewChatNotifier(cfg.ChatBaseURL)

	var schedule domain.CommissionSchedule
	copy(schedule.Rates[:], cfg.CommissionRates)

	statusService := services.NewStatusService(cfg.PendingSLAWindow)
	fundsService := services.NewFundsService(fundsRepo, draftCache, bankRepo, statusService, accountService, cfg.WithdrawalFeeRate)
	submissionService := services.NewSubmissionService(fundsRepo, draftCache, statusService, accountService, notifier, cfg.CurrencySuffix)
	referralService := services.NewReferralService(referralRepo, fundsRepo, schedule)

	fundsController := controller.NewFundsController(fundsService, submissionService)
	referralController := controller.NewReferralController(referralService, accountService)

	mux := router.New(fundsController, referralController, middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey))

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
