package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"fleet-dispatch/cmd"
	"fleet-dispatch/internal/data/repository"
	"fleet-dispatch/internal/wire"
	"fleet-dispatch/pkg/cache"
	"fleet-dispatch/pkg/database"
	"fleet-dispatch/pkg/mailer"
	"fleet-dispatch/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Database connected successfully")

	rdb, err := cache.New(ctx, config.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()
	logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))

	sender := mailer.NewSMTPSender(
		config.Email.Host,
		config.Email.Port,
		config.Email.User,
		config.Email.Password,
		config.Email.From,
		config.Email.FromName,
	)

	repos := repository.NewRepository(db, logger)
	app := wire.Wiring(repos, rdb, sender, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
