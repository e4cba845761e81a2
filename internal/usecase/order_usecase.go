package usecase

import (
	"context"
	"errors"
	"time"

	"shop/internal/apperr"
	"shop/internal/domain/model"
	"shop/internal/events"
	repo "shop/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx        repo.TransactionManager
	users     repo.UserRepository
	addresses repo.AddressRepository
	pub       events.Publisher
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	addresses repo.AddressRepository,
	pub events.Publisher,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, users: users, addresses: addresses, pub: pub}
}

type CreateOrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderInput struct {
	ShippingAddressID int64                  `json:"shipping_address_id"`
	Items             []CreateOrderItemInput `json:"items"`
}

type OrderItemOutput struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	Quantity     int64           `json:"quantity"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

type OrderOutput struct {
	ID                int64             `json:"id"`
	UserID            int64             `json:"user_id"`
	ShippingAddressID int64             `json:"shipping_address_id"`
	Status            string            `json:"status"`
	TotalPrice        decimal.Decimal   `json:"total_price"`
	OrderedAt         time.Time         `json:"ordered_at"`
	Items             []OrderItemOutput `json:"items"`
}

type OrderPageOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type ListOrdersInput struct {
	Page      int
	Limit     int
	SortField string
	SortDir   string
}

// CreateOrder は在庫予約・明細スナップショット・注文作成を
// 1トランザクションで行う。途中で失敗したら予約も全部巻き戻る
func (u *OrderUsecase) CreateOrder(ctx context.Context, username string, in CreateOrderInput) (OrderOutput, error) {
	user, err := u.findUser(ctx, username)
	if err != nil {
		return OrderOutput{}, err
	}

	if len(in.Items) == 0 {
		return OrderOutput{}, apperr.New(apperr.KindEmptyOrder, "order must contain at least one item")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 {
			return OrderOutput{}, apperr.New(apperr.KindInvalidInput, "invalid product_id or quantity")
		}
	}

	//配送先の存在＋所有チェック。他人の住所は見つからない扱い
	addr, err := u.addresses.FindByIDAndUserID(ctx, in.ShippingAddressID, user.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, apperr.Newf(apperr.KindAddressNotFound,
				"shipping address not found with id: %d", in.ShippingAddressID)
		}
		return OrderOutput{}, apperr.Internal(err)
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero
		now := time.Now()

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.Newf(apperr.KindProductNotFound, "product not found with id: %d", it.ProductID)
			}
			if err != nil {
				return apperr.Internal(err)
			}

			//在庫予約。条件付きUPDATEなので同時注文でも売り越さない。
			//足りなければtxごとロールバックされ、先に減らした分も戻る
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return apperr.Internal(err)
			}
			if !ok {
				return apperr.OutOfStock(p.Name, it.Quantity, p.Stock)
			}

			//注文時点の価格スナップショット
			item := model.OrderItem{
				ProductID:    p.ID,
				ProductName:  p.Name,
				PriceAtOrder: p.Price,
				Quantity:     it.Quantity,
				CreatedAt:    now,
			}
			orderItems = append(orderItems, item)
			total = total.Add(item.LineTotal())
		}

		order := model.Order{
			UserID:     user.ID,
			AddressID:  addr.ID,
			Status:     model.OrderStatusPending,
			TotalPrice: total,
			OrderedAt:  now,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return apperr.Internal(err)
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return apperr.Internal(err)
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	//commit後にイベント通知
	u.pub.Publish(ctx, events.EventOrderPlaced, out.ID, events.OrderPlacedPayload{
		OrderID:    out.ID,
		UserID:     out.UserID,
		Items:      toItemLines(out.Items),
		TotalPrice: out.TotalPrice,
	})

	return out, nil
}

// GetOrder は自分の注文だけ返す。他人の注文はOrderNotFound
func (u *OrderUsecase) GetOrder(ctx context.Context, username string, orderID int64) (OrderOutput, error) {
	user, err := u.findUser(ctx, username)
	if err != nil {
		return OrderOutput{}, err
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDAndUserID(ctx, orderID, user.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return orderNotFound(orderID, username)
		}
		if err != nil {
			return apperr.Internal(err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return apperr.Internal(err)
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListOrders は自分の注文一覧。デフォルトは注文日の降順
func (u *OrderUsecase) ListOrders(ctx context.Context, username string, in ListOrdersInput) (OrderPageOutput, error) {
	user, err := u.findUser(ctx, username)
	if err != nil {
		return OrderPageOutput{}, err
	}

	if in.Page < 1 {
		return OrderPageOutput{}, apperr.New(apperr.KindInvalidInput, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return OrderPageOutput{}, apperr.New(apperr.KindInvalidInput, "invalid limit")
	}

	page := repo.OrderPageRequest{
		Page:      in.Page,
		Limit:     in.Limit,
		SortField: "ordered_at",
		SortDir:   repo.SortDesc,
	}
	if in.SortField != "" {
		switch in.SortField {
		case "ordered_at", "total_price", "status", "id":
			page.SortField = in.SortField
		default:
			return OrderPageOutput{}, apperr.New(apperr.KindInvalidInput, "invalid sort field")
		}
	}
	if in.SortDir != "" {
		switch in.SortDir {
		case "asc":
			page.SortDir = repo.SortAsc
		case "desc":
			page.SortDir = repo.SortDesc
		default:
			return OrderPageOutput{}, apperr.New(apperr.KindInvalidInput, "invalid sort dir")
		}
	}

	var outs OrderPageOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, user.ID, page)
		if err != nil {
			return apperr.Internal(err)
		}

		items := make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return apperr.Internal(err)
			}
			items = append(items, toOrderOutput(o, lines))
		}

		outs = OrderPageOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}
		return nil
	})
	if err != nil {
		return OrderPageOutput{}, err
	}
	return outs, nil
}

// CancelOrder は所有者本人のキャンセル。
// ステータス変更と在庫戻しは同じトランザクションで行う。
// 終端ガードが1回しか通さないので、在庫が二重に戻ることはない
func (u *OrderUsecase) CancelOrder(ctx context.Context, username string, orderID int64) error {
	user, err := u.findUser(ctx, username)
	if err != nil {
		return err
	}

	var restocked []events.ItemLine

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDAndUserID(ctx, orderID, user.ID)
		if errors.Is(err, repo.ErrNotFound) {
			return orderNotFound(orderID, username)
		}
		if err != nil {
			return apperr.Internal(err)
		}

		//発送済み・終端の注文はキャンセル不可
		if !o.Status.CanCancel() {
			return apperr.Newf(apperr.KindInvalidTransition,
				"order cannot be canceled in %s status", o.Status)
		}

		if err := r.Orders().UpdateStatus(ctx, o.ID, model.OrderStatusCanceled); err != nil {
			return apperr.Internal(err)
		}

		//明細に記録した数量をそのまま戻す
		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return apperr.Internal(err)
		}
		restocked = restocked[:0]
		for _, it := range items {
			if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
				return apperr.Internal(err)
			}
			restocked = append(restocked, events.ItemLine{
				ProductID:    it.ProductID,
				Quantity:     it.Quantity,
				PriceAtOrder: it.PriceAtOrder,
			})
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.pub.Publish(ctx, events.EventOrderCanceled, orderID, events.OrderCanceledPayload{
		OrderID:   orderID,
		UserID:    user.ID,
		Restocked: restocked,
	})

	return nil
}

func (u *OrderUsecase) findUser(ctx context.Context, username string) (*model.User, error) {
	user, err := u.users.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.Newf(apperr.KindUserNotFound, "user not found with username: %s", username)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return user, nil
}

func orderNotFound(orderID int64, username string) error {
	return apperr.Newf(apperr.KindOrderNotFound,
		"order not found with id: %d for user %s", orderID, username)
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			PriceAtOrder: it.PriceAtOrder,
			Quantity:     it.Quantity,
			LineTotal:    it.LineTotal(),
		})
	}

	return OrderOutput{
		ID:                o.ID,
		UserID:            o.UserID,
		ShippingAddressID: o.AddressID,
		Status:            string(o.Status),
		TotalPrice:        o.TotalPrice,
		OrderedAt:         o.OrderedAt,
		Items:             outItems,
	}
}

func toItemLines(items []OrderItemOutput) []events.ItemLine {
	lines := make([]events.ItemLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, events.ItemLine{
			ProductID:    it.ProductID,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}
	return lines
}
