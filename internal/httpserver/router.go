package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/marketplace/internal/db"
	"github.com/Skotchmaster/marketplace/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	SearchHandler  *SearchHTTP
	DB             *gorm.DB
	JWTSecret      []byte
	RequireToken   bool
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)

	authMW := auth.NewPrincipalMiddleware(d.JWTSecret, d.RequireToken)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", d.AuthHandler.Signup)
	authGroup.POST("/login", d.AuthHandler.Login)

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/seller/:sellerId", d.CatalogHandler.GetSellerProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("/add", d.CatalogHandler.CreateProduct, authMW.Authenticate)
	products.DELETE("/delete", d.CatalogHandler.DeleteProduct, authMW.Authenticate)

	api.GET("/search", d.SearchHandler.Search)
}

func (d *Deps) ready(c echo.Context) error {
	if d.DB == nil {
		return c.NoContent(http.StatusServiceUnavailable)
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := db.Ping(ctx, d.DB); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.NoContent(http.StatusOK)
}
