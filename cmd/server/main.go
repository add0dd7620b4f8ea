package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"StockKeeper/internal/config"
	"StockKeeper/internal/handlers"
	"StockKeeper/internal/middleware"
	"StockKeeper/internal/repo"
	"StockKeeper/internal/service"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)

	userService := service.NewUserService(userRepo)
	itemService := service.NewItemService(itemRepo, sugar)

	if cfg.SeedDemo {
		if err := service.SeedDemo(ctx, userService, itemService, sugar); err != nil {
			sugar.Fatalw("failed to seed demo data", "error", err)
		}
	}

	h := handlers.NewHandler(userService, itemService, sugar, cfg)

	addr := cfg.RunAddress

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"RunAddress", cfg.RunAddress,
		"DatabaseDSN", cfg.DatabaseDSN,
		"SeedDemo", cfg.SeedDemo,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
