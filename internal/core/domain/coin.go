package domain

import (
	"vending-machine/pkg/apperror"
)

// Denomination is a coin the machine accepts, or the FINISH terminator.
type Denomination struct {
	Code       int    `json:"code"`
	Name       string `json:"name"`
	Value      Money  `json:"value"`
	Terminator bool   `json:"terminator"`
}

// FinishCode is the selection that ends coin insertion.
const FinishCode = 9

var standardDenominations = []Denomination{
	{Code: 1, Name: "TWO_POUNDS", Value: 200},
	{Code: 2, Name: "ONE_POUND", Value: 100},
	{Code: 3, Name: "FIFTY_P", Value: 50},
	{Code: 4, Name: "TWENTY_P", Value: 20},
	{Code: 5, Name: "TEN_P", Value: 10},
	{Code: 6, Name: "FIVE_P", Value: 5},
	{Code: 7, Name: "TWO_P", Value: 2},
	{Code: 8, Name: "ONE_P", Value: 1},
	{Code: FinishCode, Name: "FINISH", Value: 0, Terminator: true},
}

// CoinCatalog maps selection codes to denominations. It is immutable after construction.
type CoinCatalog struct {
	ordered []Denomination
	byCode  map[int]Denomination
}

// NewCoinCatalog builds the catalog of sterling coins plus FINISH.
func NewCoinCatalog() *CoinCatalog {
	c := &CoinCatalog{
		ordered: make([]Denomination, len(standardDenominations)),
		byCode:  make(map[int]Denomination, len(standardDenominations)),
	}
	copy(c.ordered, standardDenominations)
	for _, d := range c.ordered {
		c.byCode[d.Code] = d
	}
	return c
}

// Decode returns the denomination for a selection code.
func (c *CoinCatalog) Decode(code int) (Denomination, error) {
	d, ok := c.byCode[code]
	if !ok {
		return Denomination{}, apperror.ErrUnknownDenomination(code)
	}
	return d, nil
}

// IsTerminator reports whether d is the FINISH entry rather than a real coin.
func (c *CoinCatalog) IsTerminator(d Denomination) bool {
	return d.Terminator
}

// All returns every denomination in code order.
func (c *CoinCatalog) All() []Denomination {
	out := make([]Denomination, len(c.ordered))
	copy(out, c.ordered)
	return out
}
