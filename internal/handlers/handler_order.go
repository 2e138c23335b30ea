package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
	portssvc "github.com/tradeledger/trade_ledger_app/internal/core/ports/services"
	"github.com/tradeledger/trade_ledger_app/internal/dto"
	"github.com/tradeledger/trade_ledger_app/internal/middleware"
)

// orderHandler handles HTTP requests related to orders and order reports.
type orderHandler struct {
	orderService     portssvc.OrderSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade, rs portssvc.ReportingSvcFacade) *orderHandler {
	return &orderHandler{orderService: os, reportingService: rs}
}

// registerOrderRoutes registers all order-related routes. The static report
// paths are declared before the :id routes.
func registerOrderRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, orderService portssvc.OrderSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newOrderHandler(orderService, reportingService)

	orders := rg.Group("/orders")
	{
		orders.GET("", middleware.RequirePermission(userService, domain.PermGetSelf), h.listOrders)
		orders.GET("/report", middleware.RequirePermission(userService, domain.PermGetSelf), h.reportByPerson)
		orders.GET("/grouped", middleware.RequirePermission(userService, domain.PermGetSelf), h.groupedByDate)
		orders.GET("/:id", middleware.RequirePermission(userService, domain.PermGetSelf), h.getOrder)
		orders.POST("", middleware.RequirePermission(userService, domain.PermManageSelf), h.createOrder)
		orders.PATCH("/:id", middleware.RequirePermission(userService, domain.PermManageSelf), h.updateOrder)
		orders.DELETE("/:id", middleware.RequirePermission(userService, domain.PermManageSelf), h.deleteOrder)
	}
}

// createOrder godoc
// @Summary Create an order
// @Description Creates a sale or purchase order; totals and status are derived server-side
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Type mismatch or amountPaid exceeds total"
// @Failure 404 {object} map[string]string "Person or item not found"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// getOrder godoc
// @Summary Get an order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Order not found"
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List orders
// @Description Retrieves a filtered, sorted page of the user's orders
// @Tags orders
// @Produce json
// @Param status query string false "pending or completed"
// @Param type query string false "sale or purchase"
// @Param person query string false "Person ID filter"
// @Param startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param minAmount query number false "Minimum total amount"
// @Param maxAmount query number false "Maximum total amount"
// @Param sortBy query string false "field:asc|desc" default(createdAt:desc)
// @Param limit query int false "Page size" default(10)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.ListOrdersResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), user.UserID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListOrdersResponse{
		Orders:   dto.ToOrderResponses(orders),
		PageMeta: dto.NewPageMeta(params.Page, params.Limit, total),
	})
}

// reportByPerson godoc
// @Summary Per-person order report
// @Description Groups the user's filtered orders per person with paid sums and a global total
// @Tags orders
// @Produce json
// @Param personId query string false "Person ID filter"
// @Param status query string false "pending or completed"
// @Param type query string false "sale or purchase"
// @Param startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param minAmount query number false "Minimum total amount"
// @Param maxAmount query number false "Maximum total amount"
// @Param limit query int false "Page size" default(10)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.ReportResponse
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /orders/report [get]
func (h *orderHandler) reportByPerson(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.ReportByPerson(c.Request.Context(), user.UserID, params)
	if err != nil {
		logger.Error("Failed to generate per-person report", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate the report. Please try again."})
		return
	}
	c.JSON(http.StatusOK, report)
}

// groupedByDate godoc
// @Summary Grouped-by-date order report
// @Description Buckets the user's orders per calendar day and person with pending subtotals
// @Tags orders
// @Produce json
// @Param personId query string false "Person ID filter"
// @Param type query string false "customer or supplier (counterparty type)"
// @Param startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(10)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} dto.GroupedReportResponse
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /orders/grouped [get]
func (h *orderHandler) groupedByDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.GroupedReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.GroupedByDate(c.Request.Context(), user.UserID, params)
	if err != nil {
		logger.Error("Failed to generate grouped report", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate the report. Please try again."})
		return
	}
	c.JSON(http.StatusOK, report)
}

// updateOrder godoc
// @Summary Update an order
// @Description Recomputes totals and reapplies pending amounts to the affected aggregates
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param order body dto.UpdateOrderRequest true "Order details"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Type mismatch or amountPaid exceeds total"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Order not found"
// @Security BearerAuth
// @Router /orders/{id} [patch]
func (h *orderHandler) updateOrder(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// deleteOrder godoc
// @Summary Delete an order
// @Description Detaches the order from its person and user aggregates and removes it
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Order not found"
// @Security BearerAuth
// @Router /orders/{id} [delete]
func (h *orderHandler) deleteOrder(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderService.DeleteOrder(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
