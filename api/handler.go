package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos_gateway/internal/notify"
	"pos_gateway/internal/posapi"
	"pos_gateway/internal/sale"
)

// gatewayHandler holds the aggregator and sale service and implements the
// HTTP surface consumed by the admin UI.
type gatewayHandler struct {
	notifications *notify.Aggregator
	sales         *sale.Service
	logger        *zap.Logger
}

// NewGatewayHandler creates a new gateway handler.
func NewGatewayHandler(notifications *notify.Aggregator, sales *sale.Service, logger *zap.Logger) *gatewayHandler {
	return &gatewayHandler{
		notifications: notifications,
		sales:         sales,
		logger:        logger,
	}
}

// handleListNotifications handles GET /notifications. Aggregation never
// fails as a whole, so this always answers 200.
func (h *gatewayHandler) handleListNotifications(ctx *gin.Context) {
	items := h.notifications.FetchAll(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"notifications": items, "total": len(items)})
}

// handleNotificationCounts handles GET /notifications/counts, the badge
// variant.
func (h *gatewayHandler) handleNotificationCounts(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.notifications.CountAll(ctx.Request.Context()))
}

// handleCreateSale handles POST /sales. The error taxonomy maps onto
// distinct statuses so the UI can tell "fix input" from "retry" from
// "contact support".
func (h *gatewayHandler) handleCreateSale(ctx *gin.Context) {
	var in sale.SaleInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("failed to bind sale request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	receipt, err := h.sales.Submit(ctx.Request.Context(), in)
	if err != nil {
		h.writeSaleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}

func (h *gatewayHandler) writeSaleError(ctx *gin.Context, err error) {
	var srvErr *posapi.ServerError

	switch {
	case sale.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, sale.ErrSubmissionInFlight):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, posapi.ErrTransport):
		ctx.JSON(http.StatusGatewayTimeout, gin.H{"error": "POS API unreachable, try again"})
	case errors.As(err, &srvErr):
		if srvErr.Kind == posapi.KindBadPayload {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": srvErr.Message})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": srvErr.Error()})
	default:
		h.logger.Error("unhandled sale submission error", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// handleSalesHistory handles GET /sales with optional customer_id, status,
// from and to (YYYY-MM-DD) query filters.
func (h *gatewayHandler) handleSalesHistory(ctx *gin.Context) {
	filter := sale.HistoryFilter{Status: ctx.Query("status")}

	if raw := ctx.Query("customer_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer_id"})
			return
		}
		filter.CustomerID = id
	}
	if raw := ctx.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			return
		}
		filter.From = t
	}
	if raw := ctx.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			return
		}
		filter.To = t
	}

	results, metadata, err := h.sales.History(ctx.Request.Context(), filter)
	if err != nil {
		h.logger.Error("sales history failed", zap.Error(err))
		if errors.Is(err, posapi.ErrTransport) {
			ctx.JSON(http.StatusGatewayTimeout, gin.H{"error": "POS API unreachable, try again"})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch sales history"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": results, "metadata": metadata})
}
