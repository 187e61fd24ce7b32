package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos_gateway/internal/notify"
	"pos_gateway/internal/posapi"
	"pos_gateway/internal/sale"
)

// InitRoutes wires the aggregator, sale service, and handlers onto the
// given Gin engine. The POS API client and history store are injected so
// tests can point everything at doubles.
func InitRoutes(e *gin.Engine, client *posapi.Client, history notify.HistoryStore, logger *zap.Logger) {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	aggregator := notify.NewAggregator(client, history, logger)
	salesService := sale.NewService(client, logger)
	handler := NewGatewayHandler(aggregator, salesService, logger)

	e.GET("/notifications", handler.handleListNotifications)
	e.GET("/notifications/counts", handler.handleNotificationCounts)
	e.POST("/sales", handler.handleCreateSale)
	e.GET("/sales", handler.handleSalesHistory)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
