package apperr

import (
	"errors"
	"fmt"
)

// Kind はドメインエラーの分類。ここにある値で閉じている
type Kind string

const (
	KindUserNotFound      Kind = "USER_NOT_FOUND"
	KindAddressNotFound   Kind = "ADDRESS_NOT_FOUND"
	KindProductNotFound   Kind = "PRODUCT_NOT_FOUND"
	KindOrderNotFound     Kind = "ORDER_NOT_FOUND"
	KindEmptyOrder        Kind = "EMPTY_ORDER"
	KindOutOfStock        Kind = "OUT_OF_STOCK"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindForbidden         Kind = "FORBIDDEN"
	KindAlreadyExists     Kind = "ALREADY_EXISTS"
	KindInvalidInput      Kind = "INVALID_INPUT"

	// 想定外（DB障害など）。ドメイン分類には入らない
	KindInternal Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string

	// OUT_OF_STOCKのときだけ入る
	Product   string
	Requested int64
	Available int64
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// OutOfStock は商品名・要求数・在庫数を持つエラーを作る
func OutOfStock(productName string, requested, available int64) error {
	return &Error{
		Kind: KindOutOfStock,
		Message: fmt.Sprintf("requested quantity (%d) exceeds available stock (%d) for product: %s",
			requested, available, productName),
		Product:   productName,
		Requested: requested,
		Available: available,
	}
}

// Internal はDB障害などをドメイン外エラーとして包む
func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "internal error: " + err.Error()}
}

// KindOf はエラーの分類を返す。*Errorでなければ KindInternal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
