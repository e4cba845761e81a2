package handler

import (
	"errors"
	"net/http"

	"shop/internal/apperr"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`

	//在庫不足のときだけ入る
	Product   string `json:"product,omitempty"`
	Requested int64  `json:"requested,omitempty"`
	Available int64  `json:"available,omitempty"`
}

// Kindは閉じているので、ここで網羅的にHTTPステータスへ落とす
func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindUserNotFound, apperr.KindAddressNotFound,
		apperr.KindProductNotFound, apperr.KindOrderNotFound:
		return http.StatusNotFound
	case apperr.KindEmptyOrder, apperr.KindInvalidInput:
		return http.StatusBadRequest
	case apperr.KindOutOfStock, apperr.KindInvalidTransition, apperr.KindAlreadyExists:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, err error) error {
	var e *apperr.Error
	if !errors.As(err, &e) {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	body := ErrorResponse{Error: e.Message, Kind: string(e.Kind)}
	if e.Kind == apperr.KindInternal {
		//内部詳細は外に出さない
		body.Error = "internal error"
	}
	if e.Kind == apperr.KindOutOfStock {
		body.Product = e.Product
		body.Requested = e.Requested
		body.Available = e.Available
	}
	return c.JSON(statusOf(e.Kind), body)
}
