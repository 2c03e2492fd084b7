package httpserver

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_api/internal/logging"
	"github.com/Skotchmaster/ecommerce_api/internal/search"
	"github.com/Skotchmaster/ecommerce_api/internal/util"
)

type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	if h.ES == nil {
		return message(c, http.StatusServiceUnavailable, "Search is not available")
	}

	q := c.QueryParam("q")
	if q == "" {
		return message(c, http.StatusBadRequest, "Missing query")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := search.Search(ctx, h.ES, h.Index, q, from, size)
	if err != nil {
		l.Error("search_failed", "status", 500, "error", err)
		return message(c, http.StatusInternalServerError, "Search failed")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
