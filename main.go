package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pos_gateway/api"
	"pos_gateway/internal/config"
	"pos_gateway/internal/notify"
	"pos_gateway/internal/posapi"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	client := posapi.NewClient(cfg.API, logger)
	defer client.Close()

	r := gin.Default()
	api.InitRoutes(r, client, notify.NewLocalHistory(), logger)

	if err := r.Run(cfg.Addr); err != nil {
		panic(fmt.Errorf("error trying to start server: %v", err))
	}
}
