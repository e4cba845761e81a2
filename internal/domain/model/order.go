package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
	OrderStatusReturned   OrderStatus = "RETURNED"
)

// ParseOrderStatus は文字列をOrderStatusへ。未知の値はfalse
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCanceled, OrderStatusReturned:
		return OrderStatus(s), true
	}
	return "", false
}

// CanUpdateTo は管理者によるステータス変更を許可するか。
// DELIVERED/CANCELEDは終端。例外としてDELIVERED→RETURNEDだけ許可する
func (s OrderStatus) CanUpdateTo(next OrderStatus) bool {
	switch s {
	case OrderStatusCanceled:
		return false
	case OrderStatusDelivered:
		return next == OrderStatusReturned
	}
	return true
}

// CanCancel は購入者によるキャンセルを許可するか。
// 発送済み・配達済み・キャンセル済みは不可
func (s OrderStatus) CanCancel() bool {
	switch s {
	case OrderStatusShipped, OrderStatusDelivered, OrderStatusCanceled:
		return false
	}
	return true
}

type Order struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64           `gorm:"not null;index" json:"user_id"`
	AddressID  int64           `gorm:"column:shipping_address_id;not null" json:"shipping_address_id"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_price"`
	OrderedAt  time.Time       `gorm:"not null;index" json:"ordered_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
