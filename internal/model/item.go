package model

import (
	"strings"
	"time"

	"go-store-inventory/pkg/validator"
)

// Item is one inventory record owned by exactly one store.
// StoreID and the embedded storage id are internal and never serialized to clients.
type Item struct {
	BaseModel   `bson:"-"`
	StoreID     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_items_store_sku,priority:1;index:idx_items_store_updated,priority:1" bson:"storeId,omitempty" json:"-"`
	SKU         string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_items_store_sku,priority:2" bson:"sku" json:"sku"`
	Name        string    `gorm:"type:varchar(255);not null" bson:"name" json:"name"`
	Description string    `gorm:"type:text" bson:"description,omitempty" json:"description,omitempty"`
	Category    string    `gorm:"type:varchar(100)" bson:"category,omitempty" json:"category,omitempty"`
	Unit        string    `gorm:"type:varchar(20)" bson:"unit,omitempty" json:"unit,omitempty"`
	Quantity    int       `gorm:"not null;default:0" bson:"quantity" json:"quantity"`
	Price       float64   `gorm:"not null;default:0" bson:"price" json:"price"`
	LastUpdated time.Time `gorm:"not null;index:idx_items_store_updated,priority:2,sort:desc" bson:"lastUpdated" json:"lastUpdated"`
}

func (Item) TableName() string {
	return "items"
}

// CreateItemRequest is the client payload for a new item. It has no storeId or
// lastUpdated field: both are owned by the server, and unknown keys are dropped on decode.
type CreateItemRequest struct {
	SKU         string  `json:"sku" validate:"required,max=64"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description" validate:"max=1000"`
	Category    string  `json:"category" validate:"max=100"`
	Unit        string  `json:"unit" validate:"max=20"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	Price       float64 `json:"price" validate:"gte=0"`

	typeErrors []*validator.ErrorResponse
}

// DecodeCreateItemRequest reads a JSON object into a request. Keys must match
// exactly and unknown keys are dropped. Wrong-typed values are kept as
// TypeErrors for validation; err is set only when data is not a JSON object.
func DecodeCreateItemRequest(data []byte, unmarshal func([]byte, interface{}) error) (*CreateItemRequest, error) {
	req := &CreateItemRequest{}
	errs, err := validator.DecodeFields(data, req, unmarshal)
	if err != nil {
		return nil, err
	}
	req.typeErrors = errs
	return req, nil
}

// TypeErrors lists the fields whose JSON value had the wrong type.
func (r *CreateItemRequest) TypeErrors() []*validator.ErrorResponse {
	return r.typeErrors
}

// Trim strips surrounding whitespace from every text field.
func (r *CreateItemRequest) Trim() {
	r.SKU = strings.TrimSpace(r.SKU)
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	r.Unit = strings.TrimSpace(r.Unit)
}

// ToItem builds the record owned by storeID. The caller's storeID always wins.
func (r *CreateItemRequest) ToItem(storeID string) *Item {
	return &Item{
		StoreID:     storeID,
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Unit:        r.Unit,
		Quantity:    r.Quantity,
		Price:       r.Price,
	}
}

// Public returns a copy with the internal fields cleared.
func (i Item) Public() Item {
	i.BaseModel = BaseModel{}
	i.StoreID = ""
	return i
}
