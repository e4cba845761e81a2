package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64 `gorm:"not null;index" json:"order_id"`

	//商品参照はIDのみ。相互参照は持たない
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	//注文時点のスナップショット。後からの商品変更に影響されない
	ProductName  string          `gorm:"type:varchar(255);not null" json:"product_name"`
	PriceAtOrder decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_at_order"`

	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// LineTotal は数量×注文時単価
func (it OrderItem) LineTotal() decimal.Decimal {
	return it.PriceAtOrder.Mul(decimal.NewFromInt(it.Quantity))
}
