package handler

import (
	"vending-machine/internal/adapter/http/dto"
	"vending-machine/internal/core/domain"
	"vending-machine/pkg/response"

	"github.com/gin-gonic/gin"
)

// CoinHandler serves the accepted denominations.
type CoinHandler struct {
	coins []dto.CoinResponse
}

// NewCoinHandler creates a new CoinHandler over a fixed coin set.
func NewCoinHandler(coins []domain.Denomination) *CoinHandler {
	out := make([]dto.CoinResponse, 0, len(coins))
	for _, d := range coins {
		out = append(out, dto.NewCoinResponse(d))
	}
	return &CoinHandler{coins: out}
}

// List handles GET /api/v1/coins.
func (h *CoinHandler) List(c *gin.Context) {
	response.OK(c, h.coins)
}
