package repository

import (
	"context"

	"shop/internal/domain/model"
)

type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

type OrderPageRequest struct {
	Page  int
	Limit int

	//ordered_at / total_price / status / id のみ許可。空ならordered_at
	SortField string
	SortDir   SortDir
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//所有者込みで1件取得。他人の注文はErrNotFound
	FindByIDAndUserID(ctx context.Context, orderID, userID int64) (model.Order, error)

	ListByUserID(ctx context.Context, userID int64, page OrderPageRequest) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//物理削除。明細も一緒に消す
	Delete(ctx context.Context, orderID int64) error
}
