package usecase

import (
	"shop/internal/apperr"
	"shop/internal/domain/model"
)

// 認可チェック。状態は持たない。
// 所有チェックは原則FindByIDAndUserIDで行い、他人の注文は
// 「存在しない」扱いにする（存在を漏らさない）。
// ここのIsOwnerはすでに取得済みの注文の再確認用

func IsOwner(order model.Order, user *model.User) bool {
	return user != nil && order.UserID == user.ID
}

func IsAdmin(user *model.User) bool {
	return user != nil && user.IsAdmin()
}

// RequireAdmin はADMIN以外を型付きエラーで弾く
func RequireAdmin(user *model.User) error {
	if !IsAdmin(user) {
		return apperr.New(apperr.KindForbidden, "admin only")
	}
	return nil
}
