package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/PedroUbine06s/ajuda-ja-app/internal/config"
	"github.com/PedroUbine06s/ajuda-ja-app/internal/stubapi"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables:", err)
	}

	path := "config.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()

	srv := stubapi.New(sugar)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Stub.Port)
		sugar.Infof("Stub backend listening on %s", addr)
		if err := srv.Listen(addr); err != nil {
			sugar.Fatalf("stub backend failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down stub backend...")
	if err := srv.Shutdown(); err != nil {
		sugar.Errorf("stub backend shutdown error: %v", err)
	}
}
