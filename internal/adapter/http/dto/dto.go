package dto

import (
	"vending-machine/internal/core/domain"
)

// ItemURI binds the :name path parameter.
type ItemURI struct {
	Name string `uri:"name" binding:"required,item_name"`
}

// ItemListQuery is the query string of GET /api/v1/items.
type ItemListQuery struct {
	InStock *bool `form:"in_stock"`
	Limit   int   `form:"limit" binding:"omitempty,min=1,max=500"`
}

// ItemResponse is one inventory entry. Amounts are pounds with two decimals.
type ItemResponse struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	InStock  bool   `json:"in_stock"`
	Value    string `json:"value"`
}

// ItemListResponse is the body of GET /api/v1/items.
type ItemListResponse struct {
	Path       string         `json:"path"`
	Items      []ItemResponse `json:"items"`
	TotalUnits int            `json:"total_units"`
	TotalValue string         `json:"total_value"`
}

// CoinResponse is one accepted denomination.
type CoinResponse struct {
	Code       int    `json:"code"`
	Name       string `json:"name"`
	Value      string `json:"value"`
	Terminator bool   `json:"terminator"`
}

// NewItemResponse converts a domain item.
func NewItemResponse(item domain.Item) ItemResponse {
	return ItemResponse{
		Name:     item.Name,
		Price:    item.Price.String(),
		Quantity: item.Quantity,
		InStock:  item.InStock(),
		Value:    item.StockValue().String(),
	}
}

// NewCoinResponse converts a domain denomination.
func NewCoinResponse(d domain.Denomination) CoinResponse {
	return CoinResponse{
		Code:       d.Code,
		Name:       d.Name,
		Value:      d.Value.String(),
		Terminator: d.Terminator,
	}
}
