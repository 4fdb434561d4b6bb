// internal/handlers/order.go
package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mercadocesar/storefront/internal/services"
	"github.com/mercadocesar/storefront/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GET /recentes?limit=10
func (h *OrderHandler) Recent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	pedidos, err := h.orderService.Recent(userID, limit)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, pedidos)
}

// GET /pedidos/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	pedidoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	pedido, err := h.orderService.Get(userID, pedidoID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"pedido":   pedido,
		"subtotal": pedido.Subtotal(),
		"total":    pedido.Total(),
	})
}

// GET /pedidos?tipo_entrega=DOMICILIO&data_inicio=2026-01-01 (staff)
func (h *OrderHandler) ListAll(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filters := services.OrderFilters{
		TipoEntrega: c.Query("tipo_entrega"),
	}
	if inicio := c.Query("data_inicio"); inicio != "" {
		if t, err := time.Parse("2006-01-02", inicio); err == nil {
			filters.DataInicio = &t
		}
	}
	if fim := c.Query("data_fim"); fim != "" {
		if t, err := time.Parse("2006-01-02", fim); err == nil {
			// Inclusive end of day
			t = t.Add(24*time.Hour - time.Second)
			filters.DataFim = &t
		}
	}

	result, err := h.orderService.ListAll(filters, params)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.PaginatedResponse(c, *result)
}
