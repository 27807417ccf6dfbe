package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles the storage identifier. None of its fields ever reach a client
// or a document store (mongo assigns its own _id).
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" bson:"-" json:"-"`
	CreatedAt time.Time `bson:"-" json:"-"`
}

// BeforeCreate generates the UUID before insert.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}
