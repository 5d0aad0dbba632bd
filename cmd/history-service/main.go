package main

import (
	"fmt"
	"os"

	"history-service/internal/auth"
	"history-service/internal/config"
	"history-service/internal/db"
	httphandler "history-service/internal/http"
	"history-service/internal/http/middleware"
	"history-service/internal/logger"
	"history-service/internal/repository"
	"history-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg.DB.DSN, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.ConnMaxLifetime, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	maintenanceRepo := repository.NewMaintenanceRepository(database)
	fuelRepo := repository.NewFuelRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)

	historyService := service.NewHistoryService(maintenanceRepo, fuelRepo, vehicleRepo,
		cfg.History.DefaultPageSize, cfg.History.MaxPageSize)
	statsService := service.NewStatsService(maintenanceRepo, fuelRepo, vehicleRepo,
		cfg.History.MaxPlausibleConsumption)
	comparisonService := service.NewComparisonService(statsService, vehicleRepo,
		cfg.History.MaxCompareVehicles)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(historyService, statsService, comparisonService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting history service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
