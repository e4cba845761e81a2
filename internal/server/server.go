package server

import (
	"shop/internal/config"
	"shop/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// New はechoを組み立てて全ルートを登録する
func New(cfg config.Config, log *zap.Logger, bl middleware.TokenBlacklist, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLog(log))

	RegisterRoutes(e, cfg, bl, h)
	return e
}
