package usecase

import (
	"context"
	"errors"

	"shop/internal/apperr"
	"shop/internal/domain/model"
	"shop/internal/events"
	repo "shop/internal/repository"
)

// 管理者向けの注文操作。
// ステータス変更は在庫に触らない。キャンセルとは別物
type AdminOrderUsecase struct {
	tx    repo.TransactionManager
	users repo.UserRepository
	pub   events.Publisher
}

func NewAdminOrderUsecase(tx repo.TransactionManager, users repo.UserRepository, pub events.Publisher) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, users: users, pub: pub}
}

type UpdateOrderStatusInput struct {
	NewStatus string `json:"new_status"`
}

// UpdateStatus は注文ステータスを変更する。
// DELIVERED/CANCELEDは終端。DELIVERED→RETURNEDだけ例外で許可
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorUsername string, orderID int64, in UpdateOrderStatusInput) (OrderOutput, error) {
	actor, err := u.findActor(ctx, actorUsername)
	if err != nil {
		return OrderOutput{}, err
	}
	if err := RequireAdmin(actor); err != nil {
		return OrderOutput{}, err
	}

	newStatus, ok := model.ParseOrderStatus(in.NewStatus)
	if !ok {
		return OrderOutput{}, apperr.Newf(apperr.KindInvalidInput, "invalid status: %s", in.NewStatus)
	}

	var out OrderOutput
	var before model.OrderStatus

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return apperr.Newf(apperr.KindOrderNotFound, "order not found with id: %d", orderID)
		}
		if err != nil {
			return apperr.Internal(err)
		}

		//終端ガード
		if !o.Status.CanUpdateTo(newStatus) {
			return apperr.Newf(apperr.KindInvalidTransition,
				"cannot change status of a %s order", o.Status)
		}

		before = o.Status
		if err := r.Orders().UpdateStatus(ctx, o.ID, newStatus); err != nil {
			return apperr.Internal(err)
		}

		items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
		if err != nil {
			return apperr.Internal(err)
		}

		o.Status = newStatus
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.pub.Publish(ctx, events.EventOrderStatusChanged, orderID, events.OrderStatusChangedPayload{
		OrderID: orderID,
		From:    string(before),
		To:      string(newStatus),
	})

	return out, nil
}

// Delete は注文の物理削除。管理用の後始末で、在庫は戻さない
func (u *AdminOrderUsecase) Delete(ctx context.Context, actorUsername string, orderID int64) error {
	actor, err := u.findActor(ctx, actorUsername)
	if err != nil {
		return err
	}
	if err := RequireAdmin(actor); err != nil {
		return err
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return apperr.Newf(apperr.KindOrderNotFound, "order not found with id: %d", orderID)
			}
			return apperr.Internal(err)
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

func (u *AdminOrderUsecase) findActor(ctx context.Context, username string) (*model.User, error) {
	actor, err := u.users.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.Newf(apperr.KindUserNotFound, "user not found with username: %s", username)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return actor, nil
}
