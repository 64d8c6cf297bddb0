package handler

import (
	"vending-machine/internal/adapter/http/dto"
	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"
	"vending-machine/pkg/apperror"
	"vending-machine/pkg/response"

	"github.com/gin-gonic/gin"
)

// ItemHandler serves read-only inventory views.
type ItemHandler struct {
	inventory ports.InventoryReader
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(inventory ports.InventoryReader) *ItemHandler {
	return &ItemHandler{inventory: inventory}
}

// List handles GET /api/v1/items. Totals always cover the whole inventory;
// in_stock and limit only filter the listed items.
func (h *ItemHandler) List(c *gin.Context) {
	var q dto.ItemListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.ErrInvalidRequest("Invalid query: "+err.Error()))
		return
	}

	items := h.inventory.Snapshot().Items()
	resp := dto.ItemListResponse{
		Path:  h.inventory.Path(),
		Items: make([]dto.ItemResponse, 0, len(items)),
	}

	var total domain.Money
	for _, item := range items {
		resp.TotalUnits += item.Quantity
		total += item.StockValue()

		if q.InStock != nil && item.InStock() != *q.InStock {
			continue
		}
		if q.Limit > 0 && len(resp.Items) >= q.Limit {
			continue
		}
		resp.Items = append(resp.Items, dto.NewItemResponse(item))
	}
	resp.TotalValue = total.String()

	response.OK(c, resp)
}

// Get handles GET /api/v1/items/:name.
func (h *ItemHandler) Get(c *gin.Context) {
	var uri dto.ItemURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.ErrInvalidRequest("Invalid item name"))
		return
	}

	item, err := h.inventory.Get(uri.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewItemResponse(item))
}
