package domain

import (
	"time"

	"github.com/lib/pq"
)

// Product represents a catalog entry for a sellable part
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ItemNumber  *int64         `gorm:"index" json:"itemNumber"` // external business identifier, not unique
	Description string         `gorm:"index" json:"description"`
	Brand       *string        `json:"brand"`
	Model       *string        `json:"model"`
	Code        *string        `json:"code"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	ImageURL    *string        `gorm:"size:1024" json:"imageUrl"` // URL into the image host, null means placeholder
	IsAvailable bool           `gorm:"default:true" json:"isAvailable"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}
