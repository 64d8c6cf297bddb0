package dto

import (
	"vending-machine/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MaxItemNameLen bounds item names accepted on the status server.
const MaxItemNameLen = domain.MaxItemNameLen

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("item_name", validateItemName)
	}
}

func validateItemName(fl validator.FieldLevel) bool {
	return ValidItemName(fl.Field().String())
}

// ValidItemName reports whether name could be a record in the inventory file.
// The codec applies the same rule when loading.
func ValidItemName(name string) bool {
	return domain.ValidateItemName(name) == nil
}
