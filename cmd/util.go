package cmd

import (
	"database/sql"
	"fmt"
	"log"

	"convictiontrader/api"
	"convictiontrader/internal"
	"convictiontrader/internal/app"
	"convictiontrader/internal/repository"
	l1_service "convictiontrader/internal/service/l1"
	l2_service "convictiontrader/internal/service/l2"
	l3_service "convictiontrader/internal/service/l3"

	_ "github.com/lib/pq"
)

// HoldingsCsvPath, when set, swaps the postgres holdings source for a
// local csv export. Useful for dry runs against a filings snapshot.
var HoldingsCsvPath string

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		log.Fatalf("failed to close db: %v", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	gptRepository, err := repository.NewGptRepository(secrets.ChatGPTApiKey)
	if err != nil {
		return nil, err
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	holdingsRepository := repository.NewHoldingsRepository(dbConn)
	if HoldingsCsvPath != "" {
		holdingsRepository = repository.NewCsvHoldingsRepository(HoldingsCsvPath)
	}
	sectorRepository := repository.NewSectorRepository(dbConn)
	alpacaRepository := repository.NewAlpacaRepository(secrets.Alpaca.ApiKey, secrets.Alpaca.ApiSecret, secrets.Alpaca.Endpoint)

	priceService := l1_service.NewPriceService(alpacaRepository)
	executionService := l1_service.NewExecutionService(alpacaRepository, l1_service.DefaultExecutionConfig())
	convictionService := l2_service.NewConvictionService(holdingsRepository, l2_service.DefaultConvictionServiceConfig())
	planningService := l3_service.NewPlanningService(
		convictionService,
		priceService,
		sectorRepository,
		alpacaRepository,
		internal.DefaultRiskConstraints(),
		internal.DefaultConverterConfig(),
		l3_service.DefaultTradePlannerConfig(),
	)

	rebalancerHandler := app.RebalancerHandler{
		PlanningService:  planningService,
		ExecutionService: executionService,
		GptRepository:    gptRepository,
	}

	apiHandler := &api.ApiHandler{
		Db:                   dbConn,
		RebalancerHandler:    rebalancerHandler,
		PlanningService:      planningService,
		ConvictionService:    convictionService,
		GptRepository:        gptRepository,
		ApiRequestRepository: repository.ApiRequestRepositoryHandler{},
		JwtSecret:            secrets.Jwt,
	}

	return apiHandler, nil
}
