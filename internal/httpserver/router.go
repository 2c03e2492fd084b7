package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/ecommerce_api/internal/middleware/auth"
	"github.com/Skotchmaster/ecommerce_api/internal/service"
)

type Deps struct {
	AuthService    *service.AuthService
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	SearchHandler  *SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, "Hello World") })
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.Logout)

	products := e.Group("/api/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)

	protected := products.Group("", authmw.RequireSession(d.AuthService))
	protected.POST("/add", d.ProductHandler.AddProduct)
	protected.PUT("/update/:id", d.ProductHandler.UpdateProduct)
	protected.DELETE("/delete/:id", d.ProductHandler.DeleteProduct)
}
