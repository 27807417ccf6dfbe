package service

import (
	"go-store-inventory/internal/model"
	"go-store-inventory/pkg/validator"
)

// NormalizeItem trims the candidate, checks it field by field (sku, name,
// description, category, unit, quantity, price) and builds the record owned by
// storeID. On failure the earliest field's failure is returned, a wrong JSON type
// before any rule on the same field. It never touches storage.
func NormalizeItem(storeID string, req model.CreateItemRequest) (*model.Item, *validator.ValidationError) {
	req.Trim()
	if verr := validator.FirstInOrder(&req, req.TypeErrors(), validator.ValidateStruct(&req)); verr != nil {
		return nil, verr
	}
	return req.ToItem(storeID), nil
}
