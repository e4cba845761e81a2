package repository

import "context"

// 在庫の増減はここだけが行う
type InventoryRepository interface {
	// 在庫が足りるときだけ減算。減らせたらtrue。
	// 1回のUPDATEで条件チェックと減算を行い、同時実行でも売り越さない
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセル）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error

	// 在庫の現在値を設定（管理者用）
	SetStock(ctx context.Context, productID int64, newStock int64) error
}
