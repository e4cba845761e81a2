package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventOrderCanceled      = "OrderCanceled"
)

// Envelope は注文イベントの共通外装
type Envelope struct {
	EventID      string          `json:"event_id"` // uuid
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"` // 1
	OccurredAt   time.Time       `json:"occurred_at"`   // RFC3339
	Producer     string          `json:"producer"`      // "shop-api"
	Payload      json.RawMessage `json:"payload"`
}

type ItemLine struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

type OrderPlacedPayload struct {
	OrderID    int64           `json:"order_id"`
	UserID     int64           `json:"user_id"`
	Items      []ItemLine      `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderStatusChangedPayload struct {
	OrderID int64  `json:"order_id"`
	From    string `json:"from"`
	To      string `json:"to"`
}

type OrderCanceledPayload struct {
	OrderID int64 `json:"order_id"`
	UserID  int64 `json:"user_id"`

	//戻した在庫
	Restocked []ItemLine `json:"restocked"`
}

// Publisher はcommit後のイベント通知。失敗しても業務処理は巻き戻さない
type Publisher interface {
	Publish(ctx context.Context, eventType string, orderID int64, payload any)
	Close()
}
