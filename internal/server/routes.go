package server

import (
	"shop/internal/config"
	"shop/internal/handler"
	"shop/internal/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserHandler
	Addresses     *handler.AddressHandler
	Products      *handler.ProductHandler
	AdminProducts *handler.AdminProductHandler
	Orders        *handler.OrderHandler
	AdminOrders   *handler.AdminOrderHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, bl middleware.TokenBlacklist, h Handlers) {
	authJWT := middleware.AuthJWT(cfg, bl)

	//認証
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)
	e.POST("/auth/logout", h.Auth.Logout, authJWT)

	//公開の商品カタログ
	e.GET("/products", h.Products.List)
	e.GET("/products/:id", h.Products.Detail)

	//自分のプロフィールと住所
	me := e.Group("/users/me", authJWT)
	me.GET("", h.Users.Me)
	me.PUT("", h.Users.UpdateMe)
	me.POST("/addresses", h.Addresses.Create)
	me.GET("/addresses", h.Addresses.List)
	me.PUT("/addresses/:id", h.Addresses.Update)
	me.DELETE("/addresses/:id", h.Addresses.Delete)
	me.PUT("/addresses/:id/default", h.Addresses.SetDefault)

	//注文
	orders := e.Group("/orders", authJWT)
	orders.POST("", h.Orders.Create)
	orders.GET("", h.Orders.List)
	orders.GET("/:id", h.Orders.Detail)
	orders.DELETE("/:id", h.Orders.Cancel)

	//管理者
	admin := e.Group("/admin", authJWT, middleware.AdminRoleGuard())
	admin.POST("/products", h.AdminProducts.Create)
	admin.GET("/products", h.AdminProducts.List)
	admin.PUT("/products/:id", h.AdminProducts.Update)
	admin.DELETE("/products/:id", h.AdminProducts.Delete)
	admin.PATCH("/products/:id/stock", h.AdminProducts.SetStock)
	admin.PUT("/orders/:id/status", h.AdminOrders.UpdateStatus)
	admin.DELETE("/orders/:id", h.AdminOrders.Delete)
}
