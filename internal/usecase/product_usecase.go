package usecase

import (
	"context"
	"errors"
	"strings"

	"shop/internal/apperr"
	"shop/internal/domain/model"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, inventoryRepo repo.InventoryRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
	}
}

type CreateProductInput struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Stock    int64           `json:"stock"`
}

type UpdateProductInput struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	IsActive bool            `json:"is_active"`
}

type ListProductsInput struct {
	Page     int
	Limit    int
	Category string

	//管理者一覧だけtrue
	IncludeInactive bool
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// Create は商品登録。名前は重複不可
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 255 {
		return model.Product{}, apperr.New(apperr.KindInvalidInput, "invalid name")
	}
	if strings.TrimSpace(in.Category) == "" {
		return model.Product{}, apperr.New(apperr.KindInvalidInput, "invalid category")
	}
	if in.Price.IsNegative() {
		return model.Product{}, apperr.New(apperr.KindInvalidInput, "price cannot be negative")
	}
	if in.Stock < 0 {
		return model.Product{}, apperr.New(apperr.KindInvalidInput, "stock cannot be negative")
	}

	//名前の重複チェック
	_, err := u.productRepo.FindByName(ctx, name)
	if err == nil {
		return model.Product{}, apperr.Newf(apperr.KindAlreadyExists, "product with name %s already exists", name)
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, apperr.Internal(err)
	}

	//新規商品はアクティブで始まる
	created, err := u.productRepo.Create(ctx, model.Product{
		Name:     name,
		Category: in.Category,
		Price:    in.Price,
		Stock:    in.Stock,
		IsActive: true,
	})
	if err != nil {
		return model.Product{}, apperr.Internal(err)
	}
	return created, nil
}

func (u *ProductUsecase) GetByID(ctx context.Context, productID int64) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, apperr.Newf(apperr.KindProductNotFound, "product not found with id: %d", productID)
	}
	if err != nil {
		return model.Product{}, apperr.Internal(err)
	}
	return p, nil
}

// List は商品一覧。公開側はアクティブ商品だけ返す
func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, apperr.New(apperr.KindInvalidInput, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, apperr.New(apperr.KindInvalidInput, "invalid limit")
	}

	items, total, err := u.productRepo.List(ctx, repo.ProductListFilter{
		Page:            in.Page,
		Limit:           in.Limit,
		Category:        in.Category,
		IncludeInactive: in.IncludeInactive,
	})
	if err != nil {
		return ProductListOutput{}, apperr.Internal(err)
	}

	return ProductListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

// Update は商品属性の更新。在庫はSetStockで別管理
func (u *ProductUsecase) Update(ctx context.Context, productID int64, in UpdateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 255 {
		return model.Product{}, apperr.New(apperr.KindInvalidInput, "invalid name")
	}
	if in.Price.IsNegative() {
		return model.Product{}, apperr.New(apperr.KindInvalidInput, "price cannot be negative")
	}

	p, err := u.GetByID(ctx, productID)
	if err != nil {
		return model.Product{}, err
	}

	//改名時は他商品との衝突チェック
	if !strings.EqualFold(p.Name, name) {
		if _, err := u.productRepo.FindByName(ctx, name); err == nil {
			return model.Product{}, apperr.Newf(apperr.KindAlreadyExists, "product with name %s already exists", name)
		} else if !errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, apperr.Internal(err)
		}
	}

	p.Name = name
	p.Category = in.Category
	p.Price = in.Price
	p.IsActive = in.IsActive

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, apperr.Newf(apperr.KindProductNotFound, "product not found with id: %d", productID)
		}
		return model.Product{}, apperr.Internal(err)
	}
	return p, nil
}

func (u *ProductUsecase) Delete(ctx context.Context, productID int64) error {
	err := u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.Newf(apperr.KindProductNotFound, "product not found with id: %d", productID)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// SetStock は在庫の現在値を直接設定する（棚卸しなど）
func (u *ProductUsecase) SetStock(ctx context.Context, productID int64, quantity int64) (model.Product, error) {
	if quantity < 0 {
		return model.Product{}, apperr.New(apperr.KindInvalidInput, "stock quantity cannot be negative")
	}

	if err := u.inventoryRepo.SetStock(ctx, productID, quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, apperr.Newf(apperr.KindProductNotFound, "product not found with id: %d", productID)
		}
		return model.Product{}, apperr.Internal(err)
	}

	return u.GetByID(ctx, productID)
}
