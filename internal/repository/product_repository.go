package repository

import (
	"context"
	"errors"

	"shop/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type ProductListFilter struct {
	Page     int
	Limit    int
	Category string

	//trueなら非アクティブ商品も含める（管理者用）
	IncludeInactive bool
}

type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (model.Product, error)
	FindByID(ctx context.Context, productID int64) (model.Product, error)

	//名前の完全一致で1件取得（重複チェック用）
	FindByName(ctx context.Context, name string) (model.Product, error)

	List(ctx context.Context, f ProductListFilter) ([]model.Product, int64, error)

	//在庫以外の属性を更新する。在庫はInventoryRepositoryが持つ
	Update(ctx context.Context, product model.Product) error

	Delete(ctx context.Context, productID int64) error
}
