package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_api/internal/logging"
	"github.com/Skotchmaster/ecommerce_api/internal/service"
	"github.com/Skotchmaster/ecommerce_api/internal/transport"
)

type ProductHandler struct {
	Svc *service.CatalogService
}

func message(c echo.Context, code int, msg string) error {
	return c.JSON(code, transport.MessageResponse{Message: msg})
}

func (h *ProductHandler) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.add")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return message(c, http.StatusBadRequest, "Invalid product data!")
	}

	if _, err := h.Svc.AddProduct(ctx, req); err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			l.Warn("add_product_failed", "status", 400, "reason", "missing required field")
			return message(c, http.StatusBadRequest, "Invalid product data!")
		}
		l.Error("add_product_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "Could not add product")
	}

	l.Info("add_product_success")
	return message(c, http.StatusOK, "Product added successfully!")
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("get_product_failed", "status", 404, "reason", "id is not an integer")
		return message(c, http.StatusNotFound, "Product not found!")
	}

	prod, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			l.Warn("get_product_failed", "status", 404, "id", id)
			return message(c, http.StatusNotFound, "Product not found!")
		}
		l.Error("get_product_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "Could not get product")
	}

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	list, err := h.Svc.ListProducts(ctx)
	if err != nil {
		l.Error("list_products_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "Could not list products")
	}

	return c.JSON(http.StatusOK, list)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.update")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("update_product_failed", "status", 404, "reason", "id is not an integer")
		return message(c, http.StatusNotFound, "Product not found!")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return message(c, http.StatusBadRequest, "Invalid product data!")
	}

	if _, err := h.Svc.UpdateProduct(ctx, id, req); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			l.Warn("update_product_failed", "status", 404, "id", id)
			return message(c, http.StatusNotFound, "Product not found!")
		}
		l.Error("update_product_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "Could not update product")
	}

	l.Info("update_product_success", "id", id)
	return message(c, http.StatusOK, "Product updated successfully!")
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_failed", "status", 404, "reason", "id is not an integer")
		return message(c, http.StatusNotFound, "Product not found!")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			l.Warn("delete_product_failed", "status", 404, "id", id)
			return message(c, http.StatusNotFound, "Product not found!")
		}
		l.Error("delete_product_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "Could not delete product")
	}

	l.Info("delete_product_success", "id", id)
	return message(c, http.StatusOK, "Product deleted successfully!")
}
