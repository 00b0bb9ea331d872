package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service represents an offered service with its default price. The
// actual value of a consultation may override the base price.
type Service struct {
	ID        int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	BasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}
