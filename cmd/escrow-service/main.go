package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/wund3run/arena-escrow-service/internal/client"
	"github.com/wund3run/arena-escrow-service/internal/config"
	"github.com/wund3run/arena-escrow-service/internal/delivery/httpapi"
	"github.com/wund3run/arena-escrow-service/internal/delivery/httpapi/middleware"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/kafka"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/metrics"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/migrate"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres"
	"github.com/wund3run/arena-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/wund3run/arena-escrow-service/internal/usecase"
	contractusecase "github.com/wund3run/arena-escrow-service/internal/usecase/contract"
	disputeusecase "github.com/wund3run/arena-escrow-service/internal/usecase/dispute"
	transactionusecase "github.com/wund3run/arena-escrow-service/internal/usecase/transaction"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.EscrowDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.EscrowDB.MigrationsPath); err != nil {
			log.Fatalf("failed to apply migrations: %v", err)
		}
	}

	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	pub := kafka.NewKafkaPublisher(brokers)

	// Init repositories
	contractRepo := repository.NewDefaultContractRepository(db)
	milestoneRepo := repository.NewDefaultMilestoneRepository(db)
	transactionRepo := repository.NewDefaultTransactionRepository(db)
	disputeRepo := repository.NewDefaultDisputeRepository(db)

	// Init identity client
	identityClient, err := client.NewHTTPIdentityClient(fmt.Sprintf("http://%s:%s", cfg.IdentityService.Host, cfg.IdentityService.Port))
	if err != nil {
		log.Fatalf("failed to init identity client: %v", err)
	}

	escrowMetrics := metrics.NewEscrowMetrics()

	// Init usecases
	contractUc := contractusecase.NewDefaultContractUsecase(contractRepo, milestoneRepo, disputeRepo, pub, escrowMetrics)
	milestoneUc := usecase.NewDefaultMilestoneUsecase(milestoneRepo, contractRepo)
	transactionUc := transactionusecase.NewDefaultTransactionUsecase(transactionRepo, contractRepo, milestoneRepo, pub, escrowMetrics)
	disputeUc := disputeusecase.NewDefaultDisputeUsecase(disputeRepo, contractRepo, milestoneRepo, transactionRepo, identityClient, pub, escrowMetrics)

	// HTTP delivery
	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret)
	router := httpapi.NewRouter(
		auth,
		escrowMetrics,
		httpapi.NewContractHandler(contractUc),
		httpapi.NewMilestoneHandler(milestoneUc),
		httpapi.NewTransactionHandler(transactionUc),
		httpapi.NewDisputeHandler(disputeUc),
	)

	apiServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler: router,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.MetricsServer.Host, cfg.MetricsServer.Port),
		Handler: metricsMux,
	}

	g, _ := errgroup.WithContext(context.Background())
	g.Go(func() error {
		log.Printf("escrow API listening on %s\n", apiServer.Addr)
		return apiServer.ListenAndServe()
	})
	g.Go(func() error {
		log.Printf("metrics listening on %s\n", metricsServer.Addr)
		return metricsServer.ListenAndServe()
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server exited: %v\n", err)
	}
}
