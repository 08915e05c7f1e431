package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/marketplace/internal/es"
	"github.com/Skotchmaster/marketplace/internal/logging"
	"github.com/Skotchmaster/marketplace/internal/service"
	"github.com/Skotchmaster/marketplace/internal/transport"
)

type SearchHTTP struct {
	Svc *service.SearchService
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search")

	q := c.QueryParam("q")
	total, docs, err := h.Svc.Search(ctx, q)
	if err != nil {
		switch {
		case errors.Is(err, es.ErrEmptyQuery):
			l.Warn("search_failed", "status", 400, "reason", "empty query")
			return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
		case errors.Is(err, service.ErrSearchUnavailable):
			l.Warn("search_failed", "status", 503, "reason", "search index not configured")
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search is unavailable")
		default:
			l.Error("search_failed", "status", 502, "reason", "elasticsearch error", "error", err)
			return echo.NewHTTPError(http.StatusBadGateway, "search failed")
		}
	}

	l.Info("search_success", "total", total)
	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Products: docs})
}
