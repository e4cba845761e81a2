package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID       int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Category string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`

	//在庫はInventoryRepository経由でのみ増減する
	Stock    int64 `gorm:"not null" json:"stock"`
	IsActive bool  `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
